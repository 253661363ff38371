package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/example/microfarm/internal/core/schedule"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/ports/secondary"
)

// ScheduleServiceImpl implements the ScheduleService interface. All three
// views are read-only projections over committed state.
type ScheduleServiceImpl struct {
	orders secondary.OrderRepository
}

// NewScheduleService creates a new ScheduleService with injected dependencies.
func NewScheduleService(orders secondary.OrderRepository) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{orders: orders}
}

// DeliverySchedule lists every order delivered in the window, ordered by
// delivery date.
func (s *ScheduleServiceImpl) DeliverySchedule(ctx context.Context, win primary.Window) ([]*primary.DeliveryRow, error) {
	start, end := schedule.DateOnly(win.Start), schedule.DateOnly(win.End)
	records, err := s.orders.List(ctx, secondary.OrderFilters{
		DeliveredFrom: &start,
		DeliveredTo:   &end,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]*primary.DeliveryRow, 0, len(records))
	for _, record := range records {
		lines, err := s.orders.Lines(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		order := toOrder(record, lines)
		rows = append(rows, &primary.DeliveryRow{
			DeliveryDate: order.DeliveryDate,
			Customer:     order.Customer,
			OrderRef:     order.Ref,
			Cadence:      order.Cadence,
			CadenceLabel: order.CadenceLabel,
			IsFuture:     order.IsFuture,
			Lines:        order.Lines,
			Total:        order.Total,
		})
	}
	return rows, nil
}

// ProductionPlan lists what to start producing per day and item, amounts
// summed across customers.
func (s *ScheduleServiceImpl) ProductionPlan(ctx context.Context, win primary.Window) ([]*primary.PlanRow, error) {
	rows, err := s.orders.ProductionWindow(ctx, schedule.DateOnly(win.Start), schedule.DateOnly(win.End))
	if err != nil {
		return nil, err
	}
	return toPlanRows(rows), nil
}

// TransferSchedule lists what to move onto growth substrate per day and
// item, amounts summed.
func (s *ScheduleServiceImpl) TransferSchedule(ctx context.Context, win primary.Window) ([]*primary.PlanRow, error) {
	rows, err := s.orders.TransferWindow(ctx, schedule.DateOnly(win.Start), schedule.DateOnly(win.End))
	if err != nil {
		return nil, err
	}
	return toPlanRows(rows), nil
}

func toPlanRows(rows []*secondary.PlanRow) []*primary.PlanRow {
	out := make([]*primary.PlanRow, 0, len(rows))
	for _, row := range rows {
		total, _ := decimal.NewFromString(row.TotalAmount)
		seedQuantity, _ := decimal.NewFromString(row.SeedQuantity)
		out = append(out, &primary.PlanRow{
			Date:         row.Date,
			ItemName:     row.ItemName,
			TotalAmount:  total,
			SeedQuantity: seedQuantity,
			Substrate:    row.Substrate,
		})
	}
	return out
}
