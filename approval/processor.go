package approval

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"mime"
	"time"

	"github.com/marcelsud/approval-bridge/approval/signature"
	"github.com/rs/zerolog"
)

const (
	// FormContentType is the only content type accepted on the callback endpoint
	FormContentType = "application/x-www-form-urlencoded"

	// InteractionBlockActions is the interaction type produced by message buttons
	InteractionBlockActions = "block_actions"
)

// Keys added to the request payload before it is forwarded
const (
	PayloadActionKey = "action"
	PayloadUserKey   = "user"
)

// DecisionUseCase defines the operation behind the callback endpoint
type DecisionUseCase interface {
	Process(ctx context.Context, callback Callback) (Result, error)
}

/* Processor turns a verified button click into a downstream callback
 * The state machine is: received -> verifying -> parsed -> consuming -> notifying -> acknowledging
 */
type Processor struct {
	Store      Store
	Decoder    InteractionDecoder
	Workflow   WorkflowCallback
	Dispatcher Dispatcher
	Secrets    SecretSource
	Logger     zerolog.Logger

	now func() time.Time
}

// NewProcessor creates a new Processor with dependency injection
func NewProcessor(store Store, decoder InteractionDecoder, workflow WorkflowCallback, dispatcher Dispatcher, secrets SecretSource, logger zerolog.Logger) *Processor {
	return &Processor{
		Store:      store,
		Decoder:    decoder,
		Workflow:   workflow,
		Dispatcher: dispatcher,
		Secrets:    secrets,
		Logger:     logger,
		now:        time.Now,
	}
}

// Process handles one callback
// Nothing is read from the store before the signature is verified
func (p *Processor) Process(ctx context.Context, callback Callback) (Result, error) {
	mediaType, _, err := mime.ParseMediaType(callback.ContentType)
	if err != nil || mediaType != FormContentType {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedContentType, callback.ContentType)
	}

	secret, err := p.Secrets.Get(ctx, SecretSigningKey)
	if err != nil {
		return Result{}, fmt.Errorf("resolving signing secret: %w", err)
	}
	if err := signature.Check(callback.Body, callback.Signature, callback.Timestamp, []byte(secret), p.now()); err != nil {
		p.Logger.Warn().Err(err).Msg("callback signature rejected")
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	interaction, err := p.Decoder.Decode(callback.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	decision := NewDecision(interaction.ActionID)
	if interaction.Type != InteractionBlockActions || decision.Validate() != nil || interaction.Token == "" {
		p.Logger.Debug().
			Str("type", interaction.Type).
			Str("action_id", interaction.ActionID).
			Msg("interaction is not an approval decision")
		return Result{Outcome: NoActionTaken}, nil
	}

	request, err := p.Store.Consume(ctx, interaction.Token)
	if errors.Is(err, ErrNotFound) {
		p.Logger.Warn().
			Str("approval_id", interaction.Token).
			Str("user", interaction.Actor).
			Msg("decision for unknown or already consumed approval request")
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownOrAlreadyConsumed, interaction.Token)
	}
	if err != nil {
		return Result{}, fmt.Errorf("consuming approval request: %w", err)
	}

	result := Result{
		Outcome:  ActionTaken,
		Decision: decision,
		Request:  request,
		Actor:    interaction.Actor,
	}

	forward := maps.Clone(request.Payload)
	if forward == nil {
		forward = map[string]any{}
	}
	forward[PayloadActionKey] = decision.String()
	forward[PayloadUserKey] = interaction.Actor

	if err := p.Workflow.Notify(ctx, forward); err != nil {
		// The request is gone from the store at this point, someone has to act on this log line
		p.Logger.Error().Err(err).
			Str("approval_id", request.ID).
			Str("approval_type", request.Type).
			Str("decision", decision.String()).
			Str("user", interaction.Actor).
			Interface("payload", request.Payload).
			Msg("downstream callback failed after the approval request was consumed")
		return result, fmt.Errorf("%w: %w", ErrDownstreamCallbackFailed, err)
	}

	ack := NewAcknowledgement(request, decision, interaction.Actor)
	if err := p.Dispatcher.Replace(ctx, interaction.ResponseURL, ack); err != nil {
		p.Logger.Warn().Err(err).
			Str("approval_id", request.ID).
			Msg("acknowledgement not delivered")
	}

	p.Logger.Info().
		Str("approval_id", request.ID).
		Str("decision", decision.String()).
		Str("user", interaction.Actor).
		Msg("approval decision forwarded")

	return result, nil
}
