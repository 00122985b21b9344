package evaluate

import "fmt"

// Error represents a heuristic evaluation failure: the model call errored
// or timed out, or the response could not be mapped onto the expected
// finding structure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluation failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
