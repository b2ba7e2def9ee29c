package roster

import "fmt"

// PhaseError reports an edit-session operation invoked from a phase that
// does not allow it. In correct usage callers gate on Phase() first, so
// these should never reach a user.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e PhaseError) Error() string {
	return fmt.Sprintf("%s: invalid in session phase %s", e.Op, e.Phase)
}

func errPhase(op string, p Phase) error {
	return PhaseError{Op: op, Phase: p}
}

// NotFoundError reports an operation addressing an id the cache does not
// hold.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no member with id %s", e.ID)
}
