package primary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleService defines the primary port for the three report views. All
// methods are read-only, re-query committed state on every call, and accept
// an inclusive date window.
type ScheduleService interface {
	// DeliverySchedule lists every order delivered in the window, with its
	// customer and line items, ordered by delivery date.
	DeliverySchedule(ctx context.Context, win Window) ([]*DeliveryRow, error)

	// ProductionPlan lists what to start producing per day and item, amounts
	// summed across customers, ordered by production date then item name.
	ProductionPlan(ctx context.Context, win Window) ([]*PlanRow, error)

	// TransferSchedule lists what to move onto growth substrate per day and
	// item, amounts summed, ordered by transfer date then item name.
	TransferSchedule(ctx context.Context, win Window) ([]*PlanRow, error)
}

// Window is an inclusive [Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the Monday-to-Sunday window containing t.
func WeekOf(t time.Time) Window {
	// time.Weekday has Sunday = 0; fold it onto the previous Monday.
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	return Window{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// DeliveryRow is one order of the delivery view.
type DeliveryRow struct {
	DeliveryDate time.Time
	Customer     string
	OrderRef     string
	Cadence      int
	CadenceLabel string
	IsFuture     bool
	Lines        []OrderLine
	Total        decimal.Decimal
}

// PlanRow is one aggregated row of the production or transfer view.
type PlanRow struct {
	Date         time.Time
	ItemName     string
	TotalAmount  decimal.Decimal
	SeedQuantity decimal.Decimal
	Substrate    string
}
