package approval

import "time"

/* Request is a pending approval waiting for a decision in Slack
 * ID doubles as the correlation token carried by the message buttons
 * Uses value semantics as it represents data, not behavior
 */
type Request struct {
	ID        string
	Type      string
	Title     string
	Channel   string
	Fields    []string
	Payload   map[string]any
	Status    Status
	CreatedAt time.Time
}

// Callback is an inbound interaction request as received from Slack
type Callback struct {
	ContentType string
	Body        []byte
	Signature   string
	Timestamp   string
}

// Interaction is the decoded interaction envelope of a Callback
type Interaction struct {
	Type        string
	ActionID    string
	Token       string
	Actor       string
	ResponseURL string
}
