package primary

import "context"

// UndoService defines the primary port for reversing the most recent
// recorded action. One undo step only ever reverses the top-of-stack,
// not-yet-undone action; repeated calls walk the history downward.
type UndoService interface {
	// Undo reverses the most recent action and reports what it reversed.
	Undo(ctx context.Context) (*UndoResult, error)

	// CanUndo reports whether an action is available to reverse.
	CanUndo() bool

	// History lists the recorded action descriptions, oldest first.
	History() []string
}

// UndoResult names the reversed action.
type UndoResult struct {
	Description string
}

// RefreshListener is notified after a committed transaction changed data,
// so report views can re-query. Registration happens on the session; the
// fan-out is throttled to prevent refresh storms after a burst of edits.
type RefreshListener interface {
	DataChanged()
}
