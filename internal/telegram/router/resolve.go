// Package router maps inbound text updates to at most one handler.
package router

// Decision identifies which kind of handler an inbound text is routed to.
type Decision int

const (
	// DecisionDrop means no handler matches; the update is silently ignored.
	DecisionDrop Decision = iota
	// DecisionCommand routes to an explicit command handler.
	DecisionCommand
	// DecisionLabel routes to an exact literal-text (button label) handler.
	DecisionLabel
	// DecisionState routes to the handler bound to the user's current
	// conversation state.
	DecisionState
)

// Resolve picks the single handler kind for an inbound text. Precedence is
// fixed: explicit command, then exact label, then state-bound input. A command
// typed mid-form is therefore always a command, never form input.
func Resolve(text string, isCommand, isLabel func(string) bool, inProgress bool) Decision {
	switch {
	case isCommand != nil && isCommand(text):
		return DecisionCommand
	case isLabel != nil && isLabel(text):
		return DecisionLabel
	case inProgress:
		return DecisionState
	default:
		return DecisionDrop
	}
}
