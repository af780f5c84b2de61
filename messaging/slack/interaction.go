package slack

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/slack-go/slack"
)

// PayloadFormKey is the form field carrying the interaction JSON
const PayloadFormKey = "payload"

var ErrMissingPayload = errors.New("form has no payload field")

// Decoder reads Slack interaction callbacks
type Decoder struct{}

// Decode parses a form encoded body holding payload=<json>
// Only the first block action is considered
func (Decoder) Decode(body []byte) (approval.Interaction, error) {
	form, err := url.ParseQuery(string(body))
	if err != nil {
		return approval.Interaction{}, fmt.Errorf("parsing form body: %w", err)
	}

	raw := form.Get(PayloadFormKey)
	if raw == "" {
		return approval.Interaction{}, ErrMissingPayload
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(raw), &callback); err != nil {
		return approval.Interaction{}, fmt.Errorf("decoding interaction payload: %w", err)
	}

	// slack.User has no username field, block_actions payloads carry it
	var extra struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return approval.Interaction{}, fmt.Errorf("decoding interaction user: %w", err)
	}

	interaction := approval.Interaction{
		Type:        string(callback.Type),
		Actor:       actor(extra.User.Username, callback.User),
		ResponseURL: callback.ResponseURL,
	}
	if actions := callback.ActionCallback.BlockActions; len(actions) > 0 {
		interaction.ActionID = actions[0].ActionID
		interaction.Token = actions[0].Value
	}

	return interaction, nil
}

func actor(username string, user slack.User) string {
	switch {
	case username != "":
		return username
	case user.Name != "":
		return user.Name
	default:
		return user.ID
	}
}
