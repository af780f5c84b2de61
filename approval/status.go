package approval

import "fmt"

/* Status represents the state of an approval request
 * Follows the lifecycle: Pending -> Consumed
 * Consumed records are deleted from the store, the value only travels in memory
 */
type Status int

const (
	Pending Status = iota + 1
	Consumed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Consumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// NewStatus creates a Status from a string
func NewStatus(str string) Status {
	switch str {
	case "consumed":
		return Consumed
	default:
		return Pending
	}
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	if s < Pending || s > Consumed {
		return fmt.Errorf("invalid status: %d", s)
	}
	return nil
}
