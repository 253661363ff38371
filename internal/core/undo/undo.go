// Package undo implements the bounded linear action history. The log only
// stores snapshots; reversing an action against persistence is the
// application layer's job.
package undo

import "time"

// ActionType identifies what kind of mutation an action recorded.
type ActionType string

const (
	ActionCreateOrder    ActionType = "create_order"
	ActionEditOrder      ActionType = "edit_order"
	ActionDeleteOrder    ActionType = "delete_order"
	ActionCreateCustomer ActionType = "create_customer"
	ActionEditCustomer   ActionType = "edit_customer"
	ActionDeleteCustomer ActionType = "delete_customer"
	ActionCreateItem     ActionType = "create_item"
	ActionEditItem       ActionType = "edit_item"
	ActionDeleteItem     ActionType = "delete_item"
)

// LineSnapshot captures one line item of an order: the item it references
// and the ordered amount. Derived dates are recomputed on restore.
type LineSnapshot struct {
	ItemName string
	Amount   string
}

// OrderSnapshot is a deep copy of an order and its line items, enough to
// fully reconstruct the row. The Ref is the stable order identifier that
// survives recreate/restore cycles; the storage row id is deliberately not
// captured.
type OrderSnapshot struct {
	Ref          string
	SeriesID     string
	CustomerName string
	DeliveryDate time.Time
	FromDate     *time.Time
	ToDate       *time.Time
	Cadence      int
	HalbeChannel bool
	IsFuture     bool
	// AllowSunday preserves the series Sunday policy so a restore derives
	// the same production dates the deleted rows had.
	AllowSunday bool
	Lines       []LineSnapshot
}

// CustomerSnapshot captures a customer's fields.
type CustomerSnapshot struct {
	Name string
}

// ItemSnapshot captures an item's fields.
type ItemSnapshot struct {
	Name            string
	SeedQuantity    string
	SoakingDays     int
	GerminationDays int
	GrowthDays      int
	Price           string
	Substrate       string
}

// State is the before or after side of an action. Exactly one of the entity
// groups is populated; series-scope order actions carry several snapshots.
type State struct {
	Orders   []OrderSnapshot
	Customer *CustomerSnapshot
	Item     *ItemSnapshot
}

// Action is one reversible step in the history.
type Action struct {
	Type        ActionType
	Before      *State
	After       *State
	Description string
}

// Log is a bounded linear undo history. Recording after an undo discards
// the undone suffix; exceeding the depth drops the oldest action.
type Log struct {
	actions []Action
	pointer int // index of the next action to undo, -1 when exhausted
	depth   int
}

// DefaultDepth matches the original application's undo limit.
const DefaultDepth = 50

// NewLog creates an empty log with the given maximum depth (DefaultDepth
// when depth is not positive).
func NewLog(depth int) *Log {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Log{pointer: -1, depth: depth}
}

// Record appends an action, discarding any previously undone suffix first.
func (l *Log) Record(a Action) {
	if l.pointer < len(l.actions)-1 {
		l.actions = l.actions[:l.pointer+1]
	}
	l.actions = append(l.actions, a)
	if len(l.actions) > l.depth {
		l.actions = l.actions[1:]
	}
	l.pointer = len(l.actions) - 1
}

// CanUndo reports whether an action is available to reverse.
func (l *Log) CanUndo() bool {
	return l.pointer >= 0
}

// Peek returns the most recently recorded, not-yet-undone action without
// moving the pointer. The pointer only moves on MarkUndone, so a failed
// reversal leaves the history intact.
func (l *Log) Peek() (Action, bool) {
	if l.pointer < 0 {
		return Action{}, false
	}
	return l.actions[l.pointer], true
}

// MarkUndone moves the pointer past the action Peek returned, after its
// reversal was applied successfully.
func (l *Log) MarkUndone() {
	if l.pointer >= 0 {
		l.pointer--
	}
}

// Len returns the number of recorded actions, undone or not.
func (l *Log) Len() int {
	return len(l.actions)
}

// Descriptions lists the recorded actions oldest-first, for display.
func (l *Log) Descriptions() []string {
	out := make([]string, 0, len(l.actions))
	for _, a := range l.actions {
		out = append(out, a.Description)
	}
	return out
}
