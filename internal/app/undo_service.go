package app

import (
	"context"
	"fmt"

	"github.com/example/microfarm/internal/core/schedule"
	"github.com/example/microfarm/internal/core/undo"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/ports/secondary"
)

// UndoServiceImpl implements the UndoService interface. It replays the
// recorded snapshots against persistence; the history itself lives in the
// session and never survives the process.
type UndoServiceImpl struct {
	customers secondary.CustomerRepository
	items     secondary.ItemRepository
	orders    secondary.OrderRepository
	tx        secondary.TxRunner
	anomalies secondary.AnomalyLog
	session   *Session
}

// NewUndoService creates a new UndoService with injected dependencies.
func NewUndoService(
	customers secondary.CustomerRepository,
	items secondary.ItemRepository,
	orders secondary.OrderRepository,
	tx secondary.TxRunner,
	anomalies secondary.AnomalyLog,
	session *Session,
) *UndoServiceImpl {
	return &UndoServiceImpl{
		customers: customers,
		items:     items,
		orders:    orders,
		tx:        tx,
		anomalies: anomalies,
		session:   session,
	}
}

// Undo reverses the most recent action. The pointer only moves after the
// reversal committed, so a failed undo leaves the history intact and
// retryable.
func (s *UndoServiceImpl) Undo(ctx context.Context) (*primary.UndoResult, error) {
	action, ok := s.session.Log().Peek()
	if !ok {
		return nil, fmt.Errorf("nothing to undo")
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.reverse(ctx, action)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to undo %q: %w", action.Description, err)
	}

	s.session.Log().MarkUndone()
	s.session.DataChanged()
	return &primary.UndoResult{Description: action.Description}, nil
}

// CanUndo reports whether an action is available to reverse.
func (s *UndoServiceImpl) CanUndo() bool {
	return s.session.Log().CanUndo()
}

// History lists the recorded action descriptions, oldest first.
func (s *UndoServiceImpl) History() []string {
	return s.session.Log().Descriptions()
}

// reverse puts persistence back into the action's before state. Orders the
// action created are deleted, orders it deleted or changed are rebuilt from
// their snapshots.
func (s *UndoServiceImpl) reverse(ctx context.Context, action undo.Action) error {
	switch action.Type {
	case undo.ActionCreateOrder, undo.ActionEditOrder, undo.ActionDeleteOrder:
		if action.After != nil {
			for _, snap := range action.After.Orders {
				if err := s.deleteOrderByRef(ctx, snap.Ref); err != nil {
					return err
				}
			}
		}
		if action.Before != nil {
			for _, snap := range action.Before.Orders {
				if err := s.restoreOrder(ctx, snap); err != nil {
					return err
				}
			}
		}
		return nil

	case undo.ActionCreateCustomer:
		return s.deleteCustomerByName(ctx, action.After.Customer.Name)
	case undo.ActionEditCustomer:
		record, err := s.customers.GetByName(ctx, action.After.Customer.Name)
		if err != nil {
			return err
		}
		record.Name = action.Before.Customer.Name
		return s.customers.Update(ctx, record)
	case undo.ActionDeleteCustomer:
		return s.customers.Create(ctx, &secondary.CustomerRecord{Name: action.Before.Customer.Name})

	case undo.ActionCreateItem:
		record, err := s.items.GetByName(ctx, action.After.Item.Name)
		if err != nil {
			return err
		}
		return s.items.Delete(ctx, record.ID)
	case undo.ActionEditItem:
		record, err := s.items.GetByName(ctx, action.After.Item.Name)
		if err != nil {
			return err
		}
		applyItemSnapshot(record, action.Before.Item)
		return s.items.Update(ctx, record)
	case undo.ActionDeleteItem:
		record := &secondary.ItemRecord{}
		applyItemSnapshot(record, action.Before.Item)
		return s.items.Create(ctx, record)
	}
	return fmt.Errorf("unknown action type %q", action.Type)
}

func (s *UndoServiceImpl) deleteOrderByRef(ctx context.Context, ref string) error {
	record, err := s.orders.GetByRef(ctx, ref)
	if err != nil {
		// Already gone; the reversal's intent is satisfied.
		s.anomalies.Anomaly("undo: order %s already deleted", ref)
		return nil
	}
	return s.orders.Delete(ctx, record.ID)
}

func (s *UndoServiceImpl) deleteCustomerByName(ctx context.Context, name string) error {
	record, err := s.customers.GetByName(ctx, name)
	if err != nil {
		s.anomalies.Anomaly("undo: customer %s already deleted", name)
		return nil
	}
	return s.customers.Delete(ctx, record.ID)
}

// restoreOrder rebuilds an order row from its snapshot, recomputing the
// derived dates from the current item parameters under the snapshot's
// Sunday policy. An existing row with the same ref is overwritten.
func (s *UndoServiceImpl) restoreOrder(ctx context.Context, snap undo.OrderSnapshot) error {
	customer, err := s.customers.GetByName(ctx, snap.CustomerName)
	if err != nil {
		customer = &secondary.CustomerRecord{Name: snap.CustomerName}
		if err := s.customers.Create(ctx, customer); err != nil {
			return fmt.Errorf("failed to restore customer %s: %w", snap.CustomerName, err)
		}
	}

	avoidSunday := !snap.AllowSunday
	type restoreLine struct {
		item   *secondary.ItemRecord
		amount string
	}
	var lines []restoreLine
	totals := make([]int, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		item, err := s.items.GetByName(ctx, l.ItemName)
		if err != nil {
			// The item was deleted since the snapshot; restore what is left.
			s.anomalies.Anomaly("undo: order %s line %s: %v", snap.Ref, l.ItemName, err)
			continue
		}
		lines = append(lines, restoreLine{item: item, amount: l.Amount})
		totals = append(totals, item.TotalDays())
	}

	record := &secondary.OrderRecord{
		OrderRef:     snap.Ref,
		SeriesID:     snap.SeriesID,
		CustomerID:   customer.ID,
		DeliveryDate: schedule.DateOnly(snap.DeliveryDate),
		FromDate:     snap.FromDate,
		ToDate:       snap.ToDate,
		Cadence:      snap.Cadence,
		HalbeChannel: snap.HalbeChannel,
		IsFuture:     snap.IsFuture,
	}
	if len(totals) > 0 {
		record.ProductionDate = schedule.OrderProductionDate(snap.DeliveryDate, totals, avoidSunday)
	} else {
		record.ProductionDate = schedule.DateOnly(snap.DeliveryDate)
	}

	if existing, err := s.orders.GetByRef(ctx, snap.Ref); err == nil {
		record.ID = existing.ID
		if err := s.orders.Update(ctx, record); err != nil {
			return err
		}
		if err := s.orders.DeleteLines(ctx, record.ID); err != nil {
			return err
		}
	} else {
		if err := s.orders.Create(ctx, record); err != nil {
			return err
		}
	}

	for _, l := range lines {
		prod := schedule.ProductionDate(snap.DeliveryDate, l.item.TotalDays(), avoidSunday)
		line := &secondary.OrderLineRecord{
			OrderID:        record.ID,
			ItemID:         l.item.ID,
			Amount:         l.amount,
			ProductionDate: prod,
			TransferDate:   schedule.TransferDate(prod, l.item.GerminationDays),
		}
		if err := s.orders.CreateLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func applyItemSnapshot(record *secondary.ItemRecord, snap *undo.ItemSnapshot) {
	record.Name = snap.Name
	record.SeedQuantity = snap.SeedQuantity
	record.SoakingDays = snap.SoakingDays
	record.GerminationDays = snap.GerminationDays
	record.GrowthDays = snap.GrowthDays
	record.Price = snap.Price
	record.Substrate = snap.Substrate
}
