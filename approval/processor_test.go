package approval_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/approval/memory"
	"github.com/marcelsud/approval-bridge/approval/mocks"
	"github.com/marcelsud/approval-bridge/approval/signature"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const signingSecret = "8f742231b10e8888abcd99yyyzzz85a5"

var callbackBody = []byte("payload=%7B%22type%22%3A%22block_actions%22%7D")

func signedCallback(body []byte) approval.Callback {
	ts := signature.Timestamp(time.Now())
	return approval.Callback{
		ContentType: approval.FormContentType,
		Body:        body,
		Signature:   signature.Sign(body, ts, []byte(signingSecret)),
		Timestamp:   ts,
	}
}

func decision(action, token string) approval.Interaction {
	return approval.Interaction{
		Type:        approval.InteractionBlockActions,
		ActionID:    action,
		Token:       token,
		Actor:       "jdoe",
		ResponseURL: "https://hooks.slack.test/actions/1",
	}
}

type processorDeps struct {
	store      *mocks.Store
	decoder    *mocks.InteractionDecoder
	workflow   *mocks.WorkflowCallback
	dispatcher *mocks.Dispatcher
	secrets    *mocks.SecretSource
}

func newProcessor(t *testing.T) (*approval.Processor, processorDeps) {
	t.Helper()
	deps := processorDeps{
		store:      mocks.NewStore(t),
		decoder:    mocks.NewInteractionDecoder(t),
		workflow:   mocks.NewWorkflowCallback(t),
		dispatcher: mocks.NewDispatcher(t),
		secrets:    mocks.NewSecretSource(t),
	}
	p := approval.NewProcessor(deps.store, deps.decoder, deps.workflow, deps.dispatcher, deps.secrets, zerolog.Nop())
	return p, deps
}

func pendingRequest() approval.Request {
	return approval.Request{
		ID:      "r-1",
		Type:    "grant",
		Title:   "Access",
		Channel: "C1",
		Fields:  []string{"name"},
		Payload: map[string]any{"name": "J. Smith", "days": float64(3)},
		Status:  approval.Pending,
	}
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("success - approve forwards payload and acknowledges", func(t *testing.T) {
		p, deps := newProcessor(t)
		stored := pendingRequest()
		consumed := stored
		consumed.Status = approval.Consumed

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(decision("approve", "r-1"), nil)
		deps.store.On("Consume", mock.Anything, "r-1").Return(consumed, nil)
		deps.workflow.On("Notify", mock.Anything, approval.MatchPayload(func(m map[string]any) bool {
			return m["name"] == "J. Smith" &&
				m["days"] == float64(3) &&
				m["action"] == "approve" &&
				m["user"] == "jdoe" &&
				len(m) == 4
		})).Return(nil)
		deps.dispatcher.On("Replace", mock.Anything, "https://hooks.slack.test/actions/1", approval.MatchNotification(func(n approval.Notification) bool {
			return n.Footer == "Approved by @jdoe" &&
				len(n.Actions) == 0 &&
				n.Title == "Access" &&
				len(n.Fields) == 1
		})).Return(nil)

		result, err := p.Process(ctx, signedCallback(callbackBody))

		require.NoError(t, err)
		assert.Equal(t, approval.ActionTaken, result.Outcome)
		assert.Equal(t, approval.Approve, result.Decision)
		assert.Equal(t, "jdoe", result.Actor)
		assert.Equal(t, "r-1", result.Request.ID)
	})

	t.Run("success - stored payload is not mutated", func(t *testing.T) {
		p, deps := newProcessor(t)
		stored := pendingRequest()

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(decision("reject", "r-1"), nil)
		deps.store.On("Consume", mock.Anything, "r-1").Return(stored, nil)
		deps.workflow.On("Notify", mock.Anything, approval.MatchPayload(func(m map[string]any) bool {
			return m["action"] == "reject"
		})).Return(nil)
		deps.dispatcher.On("Replace", mock.Anything, mock.Anything, approval.MatchNotification(func(n approval.Notification) bool {
			return n.Footer == "Rejected by @jdoe"
		})).Return(nil)

		_, err := p.Process(ctx, signedCallback(callbackBody))

		require.NoError(t, err)
		assert.NotContains(t, stored.Payload, "action")
		assert.NotContains(t, stored.Payload, "user")
	})

	t.Run("success - non button interaction takes no action", func(t *testing.T) {
		p, deps := newProcessor(t)

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(approval.Interaction{Type: "view_submission"}, nil)

		result, err := p.Process(ctx, signedCallback(callbackBody))

		require.NoError(t, err)
		assert.Equal(t, approval.NoActionTaken, result.Outcome)
	})

	t.Run("success - unknown action takes no action", func(t *testing.T) {
		p, deps := newProcessor(t)

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(decision("snooze", "r-1"), nil)

		result, err := p.Process(ctx, signedCallback(callbackBody))

		require.NoError(t, err)
		assert.Equal(t, approval.NoActionTaken, result.Outcome)
	})

	t.Run("success - acknowledgement failure is not fatal", func(t *testing.T) {
		p, deps := newProcessor(t)

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(decision("approve", "r-1"), nil)
		deps.store.On("Consume", mock.Anything, "r-1").Return(pendingRequest(), nil)
		deps.workflow.On("Notify", mock.Anything, mock.Anything).Return(nil)
		deps.dispatcher.On("Replace", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("expired_url"))

		result, err := p.Process(ctx, signedCallback(callbackBody))

		require.NoError(t, err)
		assert.Equal(t, approval.ActionTaken, result.Outcome)
	})

	t.Run("error - wrong content type", func(t *testing.T) {
		p, _ := newProcessor(t)
		callback := signedCallback(callbackBody)
		callback.ContentType = "application/json"

		_, err := p.Process(ctx, callback)

		assert.True(t, errors.Is(err, approval.ErrUnsupportedContentType))
	})

	t.Run("success - content type with charset", func(t *testing.T) {
		p, deps := newProcessor(t)
		callback := signedCallback(callbackBody)
		callback.ContentType = approval.FormContentType + "; charset=utf-8"

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(approval.Interaction{}, nil)

		result, err := p.Process(ctx, callback)

		require.NoError(t, err)
		assert.Equal(t, approval.NoActionTaken, result.Outcome)
	})

	t.Run("error - bad signature never touches the store", func(t *testing.T) {
		p, deps := newProcessor(t)
		callback := signedCallback(callbackBody)
		callback.Body = []byte("payload=%7B%22type%22%3A%22tampered%22%7D")

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)

		_, err := p.Process(ctx, callback)

		assert.True(t, errors.Is(err, approval.ErrInvalidSignature))
	})

	t.Run("error - stale timestamp", func(t *testing.T) {
		p, deps := newProcessor(t)
		ts := signature.Timestamp(time.Now().Add(-10 * time.Minute))
		callback := approval.Callback{
			ContentType: approval.FormContentType,
			Body:        callbackBody,
			Signature:   signature.Sign(callbackBody, ts, []byte(signingSecret)),
			Timestamp:   ts,
		}

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)

		_, err := p.Process(ctx, callback)

		assert.True(t, errors.Is(err, approval.ErrInvalidSignature))
		assert.True(t, errors.Is(err, signature.ErrStaleTimestamp))
	})

	t.Run("error - undecodable body", func(t *testing.T) {
		p, deps := newProcessor(t)

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(approval.Interaction{}, errors.New("missing payload"))

		_, err := p.Process(ctx, signedCallback(callbackBody))

		assert.True(t, errors.Is(err, approval.ErrMalformedPayload))
	})

	t.Run("error - unknown token", func(t *testing.T) {
		p, deps := newProcessor(t)

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(decision("approve", "ghost"), nil)
		deps.store.On("Consume", mock.Anything, "ghost").Return(approval.Request{}, approval.ErrNotFound)

		_, err := p.Process(ctx, signedCallback(callbackBody))

		assert.True(t, errors.Is(err, approval.ErrUnknownOrAlreadyConsumed))
	})

	t.Run("error - downstream failure skips acknowledgement", func(t *testing.T) {
		p, deps := newProcessor(t)

		deps.secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
		deps.decoder.On("Decode", callbackBody).Return(decision("approve", "r-1"), nil)
		deps.store.On("Consume", mock.Anything, "r-1").Return(pendingRequest(), nil)
		deps.workflow.On("Notify", mock.Anything, mock.Anything).Return(errors.New("status 503"))

		result, err := p.Process(ctx, signedCallback(callbackBody))

		assert.True(t, errors.Is(err, approval.ErrDownstreamCallbackFailed))
		assert.Equal(t, "r-1", result.Request.ID)
	})
}

func TestProcess_Replay(t *testing.T) {
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.Create(ctx, pendingRequest()))

	decoder := mocks.NewInteractionDecoder(t)
	workflow := mocks.NewWorkflowCallback(t)
	dispatcher := mocks.NewDispatcher(t)
	secrets := mocks.NewSecretSource(t)
	p := approval.NewProcessor(store, decoder, workflow, dispatcher, secrets, zerolog.Nop())

	secrets.On("Get", mock.Anything, approval.SecretSigningKey).Return(signingSecret, nil)
	decoder.On("Decode", callbackBody).Return(decision("approve", "r-1"), nil)
	workflow.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()
	dispatcher.On("Replace", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	callback := signedCallback(callbackBody)

	first, err := p.Process(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, approval.ActionTaken, first.Outcome)

	_, err = p.Process(ctx, callback)
	assert.True(t, errors.Is(err, approval.ErrUnknownOrAlreadyConsumed))

	workflow.AssertNumberOfCalls(t, "Notify", 1)
}
