// Package schedule contains the pure date-derivation rules for production
// planning. This is part of the Functional Core - no I/O, only pure functions.
package schedule

import (
	"fmt"
	"time"
)

// Cadence is the recurrence interval code of a subscription.
type Cadence int

const (
	// CadenceNone marks a one-off order with no recurrence.
	CadenceNone Cadence = iota
	// CadenceWeekly repeats every 7 days.
	CadenceWeekly
	// CadenceBiweekly repeats every 14 days.
	CadenceBiweekly
	// CadenceThreeWeekly repeats every 21 days.
	CadenceThreeWeekly
	// CadenceFourWeekly repeats every 28 days.
	CadenceFourWeekly
)

// cadenceLabels are the customer-facing labels, kept in the original German
// because they are also the strings that leak into amount fields from the UI.
var cadenceLabels = map[Cadence]string{
	CadenceNone:        "Kein Abonnement",
	CadenceWeekly:      "Wöchentlich",
	CadenceBiweekly:    "Zweiwöchentlich",
	CadenceThreeWeekly: "Alle 3 Wochen",
	CadenceFourWeekly:  "Alle 4 Wochen",
}

// Interval returns the recurrence step in days, 0 for CadenceNone.
func (c Cadence) Interval() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 14
	case CadenceThreeWeekly:
		return 21
	case CadenceFourWeekly:
		return 28
	}
	return 0
}

// Valid reports whether c is a known cadence code.
func (c Cadence) Valid() bool {
	return c >= CadenceNone && c <= CadenceFourWeekly
}

// Label returns the display label for the cadence.
func (c Cadence) Label() string {
	if l, ok := cadenceLabels[c]; ok {
		return l
	}
	return fmt.Sprintf("Cadence(%d)", int(c))
}

// Labels returns all known cadence labels.
func Labels() []string {
	out := make([]string, 0, len(cadenceLabels))
	for c := CadenceNone; c <= CadenceFourWeekly; c++ {
		out = append(out, cadenceLabels[c])
	}
	return out
}

// ParseCadence validates a raw cadence code.
func ParseCadence(code int) (Cadence, error) {
	c := Cadence(code)
	if !c.Valid() {
		return CadenceNone, fmt.Errorf("unknown cadence code %d", code)
	}
	return c, nil
}

// DateOnly normalizes t to midnight UTC so stored dates compare cleanly.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ProductionDate computes the day production of an item must start to be
// ready by the delivery date. With avoidSunday set, a result landing on
// Sunday is pulled one day earlier to Saturday.
func ProductionDate(delivery time.Time, totalDays int, avoidSunday bool) time.Time {
	d := DateOnly(delivery).AddDate(0, 0, -totalDays)
	if avoidSunday && d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// TransferDate computes the day a germinating item moves onto its growth
// substrate.
func TransferDate(production time.Time, germinationDays int) time.Time {
	return DateOnly(production).AddDate(0, 0, germinationDays)
}

// OrderProductionDate returns the earliest per-item production date for a
// shared delivery date, so the longest-growing item is started in time.
// totalDays must be non-empty.
func OrderProductionDate(delivery time.Time, totalDays []int, avoidSunday bool) time.Time {
	var earliest time.Time
	for i, days := range totalDays {
		d := ProductionDate(delivery, days, avoidSunday)
		if i == 0 || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}

// Occurrences materializes the future delivery dates of a subscription:
// starting one interval after the seed delivery date, stepping by the
// interval, up to and including toDate. CadenceNone yields nil.
func Occurrences(seedDelivery, toDate time.Time, c Cadence) []time.Time {
	interval := c.Interval()
	if interval == 0 {
		return nil
	}
	var out []time.Time
	end := DateOnly(toDate)
	for d := DateOnly(seedDelivery).AddDate(0, 0, interval); !d.After(end); d = d.AddDate(0, 0, interval) {
		out = append(out, d)
	}
	return out
}

// FitsCadence reports whether candidate sits on the recurrence pattern
// anchored at anchor. CadenceNone fits nothing but the anchor itself.
func FitsCadence(anchor, candidate time.Time, c Cadence) bool {
	a := DateOnly(anchor)
	b := DateOnly(candidate)
	if a.Equal(b) {
		return true
	}
	interval := c.Interval()
	if interval == 0 {
		return false
	}
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days%interval == 0
}

// AllowSunday derives the sticky Sunday policy of a series from the seed
// order's stored production dates: if any was allowed to fall on Sunday,
// every generated instance must apply the same allowance.
func AllowSunday(seedProductionDates []time.Time) bool {
	for _, d := range seedProductionDates {
		if d.Weekday() == time.Sunday {
			return true
		}
	}
	return false
}
