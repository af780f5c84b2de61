package approval

import "context"

// Secret names resolved through a SecretSource
const (
	SecretSigningKey            = "slack-signing-secret"
	SecretNotificationKey       = "notification-api-key"
	SecretSlackToken            = "slack-token"
	SecretWorkflowCallbackURL   = "workflow-callback-url"
	SecretWorkflowCallbackToken = "workflow-callback-token"
)

// SecretSource resolves named secrets
type SecretSource interface {
	Get(ctx context.Context, name string) (string, error)
}

// Dispatcher sends messages to the chat platform
type Dispatcher interface {
	PostNotification(ctx context.Context, n Notification) error
	/* Replace overwrites the message a response URL belongs to */
	Replace(ctx context.Context, responseURL string, n Notification) error
}

// WorkflowCallback notifies the downstream workflow engine of a decision
type WorkflowCallback interface {
	Notify(ctx context.Context, payload map[string]any) error
}

// InteractionDecoder turns a raw callback body into an Interaction
type InteractionDecoder interface {
	Decode(body []byte) (Interaction, error)
}
