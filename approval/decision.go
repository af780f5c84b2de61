package approval

import "fmt"

// Decision is the choice a user makes on an approval message
type Decision int

const (
	Approve Decision = iota + 1
	Reject
)

// String returns the action id used for the decision
func (d Decision) String() string {
	switch d {
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Label is the human readable button text
func (d Decision) Label() string {
	switch d {
	case Approve:
		return "Approve"
	case Reject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// Past returns the decision in past tense, used in acknowledgements
func (d Decision) Past() string {
	switch d {
	case Approve:
		return "Approved"
	case Reject:
		return "Rejected"
	default:
		return "Decided"
	}
}

// NewDecision creates a Decision from an action id
// Unknown action ids map to the zero value, which fails Validate
func NewDecision(s string) Decision {
	switch s {
	case "approve":
		return Approve
	case "reject":
		return Reject
	default:
		return 0
	}
}

// Validate checks if the decision is valid
func (d Decision) Validate() error {
	if d != Approve && d != Reject {
		return fmt.Errorf("invalid decision: %d", d)
	}
	return nil
}
