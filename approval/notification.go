package approval

import (
	"fmt"
	"strings"
)

// Notification is a chat message about an approval request
type Notification struct {
	Channel string
	Title   string
	Fields  []Field
	Actions []Action
	Footer  string
}

// Field is a labelled value shown in the message
type Field struct {
	Name  string
	Value string
}

// Action is a button; Value carries the correlation token
type Action struct {
	Decision Decision
	Value    string
}

// NewNotification renders a request as an actionable message
// Fields absent from the payload are returned in skipped
func NewNotification(r Request) (n Notification, skipped []string) {
	n = Notification{
		Channel: r.Channel,
		Title:   r.Title,
	}
	for _, name := range r.Fields {
		value, ok := r.Payload[name]
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		n.Fields = append(n.Fields, Field{Name: name, Value: formatValue(value)})
	}
	n.Actions = []Action{
		{Decision: Approve, Value: r.ID},
		{Decision: Reject, Value: r.ID},
	}
	return n, skipped
}

// NewAcknowledgement renders a consumed request with the decision that was taken
func NewAcknowledgement(r Request, d Decision, actor string) Notification {
	n, _ := NewNotification(r)
	n.Actions = nil
	n.Footer = fmt.Sprintf("%s by @%s", d.Past(), actor)
	return n
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
