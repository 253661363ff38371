package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/microfarm/internal/ports/primary"
)

// ScheduleAdapter is a thin adapter that renders the three report views.
type ScheduleAdapter struct {
	service primary.ScheduleService
	out     io.Writer
}

// NewScheduleAdapter creates a new ScheduleAdapter with the given service.
func NewScheduleAdapter(service primary.ScheduleService, out io.Writer) *ScheduleAdapter {
	return &ScheduleAdapter{service: service, out: out}
}

// Deliveries prints the delivery schedule for the window.
func (a *ScheduleAdapter) Deliveries(ctx context.Context, win primary.Window) error {
	rows, err := a.service.DeliverySchedule(ctx, win)
	if err != nil {
		return fmt.Errorf("failed to load delivery schedule: %w", err)
	}
	fmt.Fprintf(a.out, "Deliveries %s - %s\n",
		win.Start.Format("02.01.2006"), win.End.Format("02.01.2006"))
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "Nothing to deliver")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCUSTOMER\tITEMS\tTOTAL")
	for _, row := range rows {
		items := ""
		for i, line := range row.Lines {
			if i > 0 {
				items += ", "
			}
			items += fmt.Sprintf("%s %s", line.Amount, line.ItemName)
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\t%s €\n",
			row.DeliveryDate.Format("02.01.2006"), row.Customer,
			futureMarker(row.IsFuture), items, row.Total.StringFixed(2))
	}
	return w.Flush()
}

// Production prints the production plan for the window.
func (a *ScheduleAdapter) Production(ctx context.Context, win primary.Window) error {
	rows, err := a.service.ProductionPlan(ctx, win)
	if err != nil {
		return fmt.Errorf("failed to load production plan: %w", err)
	}
	return a.printPlan("Production", win, rows)
}

// Transfers prints the transfer schedule for the window.
func (a *ScheduleAdapter) Transfers(ctx context.Context, win primary.Window) error {
	rows, err := a.service.TransferSchedule(ctx, win)
	if err != nil {
		return fmt.Errorf("failed to load transfer schedule: %w", err)
	}
	return a.printPlan("Transfers", win, rows)
}

func (a *ScheduleAdapter) printPlan(title string, win primary.Window, rows []*primary.PlanRow) error {
	fmt.Fprintf(a.out, "%s %s - %s\n", title,
		win.Start.Format("02.01.2006"), win.End.Format("02.01.2006"))
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "Nothing planned")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tITEM\tAMOUNT\tSEED\tSUBSTRATE")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s g\t%s\n",
			row.Date.Format("02.01.2006"), row.ItemName, row.TotalAmount,
			row.SeedQuantity, row.Substrate)
	}
	return w.Flush()
}
