// Package validate contains the single-pass form validation primitives.
// Every checker returns a field-level error instead of aborting, so a whole
// form can be validated and reported at once before anything is written.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/microfarm/internal/core/schedule"
)

// FieldError is one user-correctable problem with a submitted field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every field error of one validation pass.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, format string, args ...any) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns the collected errors as an error, or nil if the pass was clean.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Date layouts accepted from forms, tried in order.
var dateLayouts = []string{"02.01.2006", "2006-01-02"}

// Date parses a form date in dd.mm.yyyy or yyyy-mm-dd format.
func Date(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return schedule.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use dd.mm.yyyy or yyyy-mm-dd", raw)
}

// Amount parses a quantity field. The European decimal comma is accepted. A
// known failure mode is a cadence label leaking from the UI into the amount
// field; that case is reported with a distinguishing hint rather than a
// generic parse error.
func Amount(raw, itemName string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)

	for _, label := range schedule.Labels() {
		if raw == label {
			return decimal.Zero, fmt.Errorf(
				"invalid amount %q for item %s: looks like a subscription type, not a number", raw, itemName)
		}
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q for item %s: enter a number", raw, itemName)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount for item %s must be greater than 0", itemName)
	}
	return amount, nil
}

// Window checks that a subscription window is ordered.
func Window(from, to time.Time) error {
	if from.After(to) {
		return fmt.Errorf("from date %s must not be after to date %s",
			from.Format("02.01.2006"), to.Format("02.01.2006"))
	}
	return nil
}

// Price parses a non-negative money field, comma tolerated.
func Price(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	price, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: enter a number", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must not be negative")
	}
	return price, nil
}
