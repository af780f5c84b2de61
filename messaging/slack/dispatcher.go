package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/slack-go/slack"
)

/* Dispatcher posts approval messages with the Slack Web API
 * and replaces them through interaction response URLs
 * The bot token is resolved on every call, the SecretSource is expected to cache it
 */
type Dispatcher struct {
	Secrets    approval.SecretSource
	HTTPClient *http.Client

	// APIURL overrides the Web API base URL, it must end with a slash
	APIURL string
}

// NewDispatcher creates a Dispatcher
func NewDispatcher(secrets approval.SecretSource, client *http.Client, apiURL string) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Dispatcher{
		Secrets:    secrets,
		HTTPClient: client,
		APIURL:     apiURL,
	}
}

// PostNotification sends n to its channel with chat.postMessage
func (d *Dispatcher) PostNotification(ctx context.Context, n approval.Notification) error {
	token, err := d.Secrets.Get(ctx, approval.SecretSlackToken)
	if err != nil {
		return fmt.Errorf("resolving slack token: %w", err)
	}

	opts := []slack.Option{slack.OptionHTTPClient(d.HTTPClient)}
	if d.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(d.APIURL))
	}
	client := slack.New(token, opts...)

	_, _, err = client.PostMessageContext(ctx, n.Channel,
		slack.MsgOptionText(n.Title, false),
		slack.MsgOptionBlocks(Blocks(n)...),
	)
	if err != nil {
		return fmt.Errorf("posting slack message: %w", err)
	}
	return nil
}

// Replace overwrites the message behind responseURL with n
func (d *Dispatcher) Replace(ctx context.Context, responseURL string, n approval.Notification) error {
	if responseURL == "" {
		return errors.New("missing response url")
	}

	msg := &slack.WebhookMessage{
		Text:            n.Title,
		Blocks:          &slack.Blocks{BlockSet: Blocks(n)},
		ReplaceOriginal: true,
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, responseURL, d.HTTPClient, msg); err != nil {
		return fmt.Errorf("replacing slack message: %w", err)
	}
	return nil
}
