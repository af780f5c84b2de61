package approval

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/approval-bridge/approval/payload"
	"github.com/rs/zerolog"
)

// MinAPIKeyLength is the shortest notification key that passes without a warning
const MinAPIKeyLength = 10

// IssueUseCase defines the operations behind the notify endpoint
type IssueUseCase interface {
	Issue(ctx context.Context, apiKey string, body []byte) (Request, error)
	Lookup(ctx context.Context, apiKey, id string) (Request, error)
}

/* Issuer creates approval requests and posts them to Slack
 * Uses pointer semantics as it's an API, not data
 */
type Issuer struct {
	Store      Store
	Dispatcher Dispatcher
	Secrets    SecretSource
	Logger     zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewIssuer creates a new Issuer with dependency injection
func NewIssuer(store Store, dispatcher Dispatcher, secrets SecretSource, logger zerolog.Logger) *Issuer {
	return &Issuer{
		Store:      store,
		Dispatcher: dispatcher,
		Secrets:    secrets,
		Logger:     logger,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// Issue authenticates the caller, persists a pending request and posts the message
// A failed post leaves the pending request in place
func (s *Issuer) Issue(ctx context.Context, apiKey string, body []byte) (Request, error) {
	if err := s.authenticate(ctx, apiKey); err != nil {
		return Request{}, err
	}

	in, err := payload.Parse(body)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	request := Request{
		ID:        s.newID(),
		Type:      in.Type,
		Title:     in.Title,
		Channel:   in.Channel,
		Fields:    in.MsgFields,
		Payload:   in.Data,
		Status:    Pending,
		CreatedAt: s.now().UTC(),
	}

	if err := s.Store.Create(ctx, request); err != nil {
		return Request{}, fmt.Errorf("storing approval request: %w", err)
	}

	notification, skipped := NewNotification(request)
	for _, name := range skipped {
		s.Logger.Debug().
			Str("approval_id", request.ID).
			Str("field", name).
			Msg("message field not present in data, skipping")
	}

	if err := s.Dispatcher.PostNotification(ctx, notification); err != nil {
		s.Logger.Error().Err(err).
			Str("approval_id", request.ID).
			Str("channel", request.Channel).
			Msg("approval message not delivered, request stays pending")
		return request, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.Logger.Info().
		Str("approval_id", request.ID).
		Str("approval_type", request.Type).
		Str("channel", request.Channel).
		Msg("approval request issued")

	return request, nil
}

// Lookup returns a request that is still pending
func (s *Issuer) Lookup(ctx context.Context, apiKey, id string) (Request, error) {
	if err := s.authenticate(ctx, apiKey); err != nil {
		return Request{}, err
	}

	request, err := s.Store.Get(ctx, id)
	if err != nil {
		return Request{}, fmt.Errorf("getting approval request: %w", err)
	}
	return request, nil
}

func (s *Issuer) authenticate(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("%w: missing api key", ErrUnauthorized)
	}

	expected, err := s.Secrets.Get(ctx, SecretNotificationKey)
	if err != nil {
		return fmt.Errorf("resolving notification key: %w", err)
	}
	if expected == "" {
		return errors.New("notification key is empty")
	}

	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
		return fmt.Errorf("%w: api key mismatch", ErrUnauthorized)
	}

	if len(apiKey) < MinAPIKeyLength {
		s.Logger.Warn().
			Int("length", len(apiKey)).
			Int("min_length", MinAPIKeyLength).
			Msg("notification api key is shorter than the minimum length policy")
	}

	return nil
}
