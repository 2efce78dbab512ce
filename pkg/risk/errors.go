package risk

import "fmt"

// ErrorKind classifies why an action was rejected. Every rejection leaves the
// input state untouched; there is no partial application.
type ErrorKind string

const (
	ErrPhase       ErrorKind = "phase"       // action type not valid in current phase
	ErrTurn        ErrorKind = "turn"        // actor is not the current player
	ErrOwnership   ErrorKind = "ownership"   // territory not owned/controlled as required
	ErrTopology    ErrorKind = "topology"    // target not adjacent or not connected
	ErrQuantity    ErrorKind = "quantity"    // count/dice/move value out of legal range
	ErrComposition ErrorKind = "composition" // invalid card trade set or unheld card ids
	ErrStructural  ErrorKind = "structural"  // referenced map entity does not exist
)

// RuleError describes why an action was rejected.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s violation: %s", e.Kind, e.Message)
}

func ruleErrf(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
