package approval

// Outcome is the result of a callback that passed verification
type Outcome int

const (
	ActionTaken Outcome = iota + 1
	NoActionTaken
)

// String returns the response text for the outcome
func (o Outcome) String() string {
	switch o {
	case ActionTaken:
		return "action taken"
	case NoActionTaken:
		return "no action taken"
	default:
		return "unknown"
	}
}

// Result describes a processed callback
type Result struct {
	Outcome  Outcome
	Decision Decision
	Request  Request
	Actor    string
}
