package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/microfarm/internal/core/schedule"
	"github.com/example/microfarm/internal/core/subscription"
	"github.com/example/microfarm/internal/core/undo"
	"github.com/example/microfarm/internal/core/validate"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/ports/secondary"
)

// OrderServiceImpl implements the OrderService interface, including the
// scoped edit and delete semantics of recurring series.
type OrderServiceImpl struct {
	customers secondary.CustomerRepository
	items     secondary.ItemRepository
	orders    secondary.OrderRepository
	tx        secondary.TxRunner
	anomalies secondary.AnomalyLog
	session   *Session

	// now and newID are swapped in tests.
	now   func() time.Time
	newID func() string
}

// NewOrderService creates a new OrderService with injected dependencies.
func NewOrderService(
	customers secondary.CustomerRepository,
	items secondary.ItemRepository,
	orders secondary.OrderRepository,
	tx secondary.TxRunner,
	anomalies secondary.AnomalyLog,
	session *Session,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		customers: customers,
		items:     items,
		orders:    orders,
		tx:        tx,
		anomalies: anomalies,
		session:   session,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *OrderServiceImpl) newOrderRef() string {
	return "ORD-" + strings.ToUpper(s.newID()[:8])
}

// formLine is a validated line with its resolved item.
type formLine struct {
	item   *secondary.ItemRecord
	amount decimal.Decimal
}

// orderForm is the validated shape of a create or edit request.
type orderForm struct {
	delivery time.Time
	cadence  schedule.Cadence
	from, to time.Time
	lines    []formLine
}

// validateOrderForm runs the single validation pass over the shared order
// form fields, collecting every field error before returning.
func (s *OrderServiceImpl) validateOrderForm(ctx context.Context, deliveryDate string, cadenceCode int, fromDate, toDate string, lines []primary.LineInput) (*orderForm, error) {
	var errs validate.Errors
	form := &orderForm{}

	delivery, err := validate.Date(deliveryDate)
	if err != nil {
		errs.Add("delivery_date", "%v", err)
	}
	form.delivery = delivery

	cadence, err := schedule.ParseCadence(cadenceCode)
	if err != nil {
		errs.Add("cadence", "%v", err)
	}
	form.cadence = cadence

	if cadence != schedule.CadenceNone {
		from, fErr := validate.Date(fromDate)
		if fErr != nil {
			errs.Add("from_date", "subscription needs a window: %v", fErr)
		}
		to, tErr := validate.Date(toDate)
		if tErr != nil {
			errs.Add("to_date", "subscription needs a window: %v", tErr)
		}
		if fErr == nil && tErr == nil {
			if wErr := validate.Window(from, to); wErr != nil {
				errs.Add("to_date", "%v", wErr)
			}
			form.from, form.to = from, to
		}
	}

	if len(lines) == 0 {
		errs.Add("lines", "order needs at least one item")
	}
	for _, input := range lines {
		amount, aErr := validate.Amount(input.Amount, input.ItemName)
		if aErr != nil {
			errs.Add("amount", "%v", aErr)
		}
		item, iErr := s.items.GetByName(ctx, input.ItemName)
		if iErr != nil {
			errs.Add("item", "unknown item %q", input.ItemName)
			continue
		}
		if aErr == nil {
			form.lines = append(form.lines, formLine{item: item, amount: amount})
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return form, nil
}

// CreateOrder validates and persists a new order; a subscription seed is
// expanded into its future instances in the same transaction. An unknown
// customer name is created on the fly, matching the form's free-text entry.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req primary.CreateOrderRequest) (*primary.CreateOrderResponse, error) {
	if req.CustomerName == "" {
		return nil, validate.Errors{{Field: "customer", Message: "customer name must not be empty"}}
	}
	form, err := s.validateOrderForm(ctx, req.DeliveryDate, req.Cadence, req.FromDate, req.ToDate, req.Lines)
	if err != nil {
		return nil, err
	}

	avoidSunday := !req.AllowSundayProduction
	seriesID := ""
	if form.cadence != schedule.CadenceNone {
		seriesID = s.newID()
	}

	var seed *secondary.OrderRecord
	var futures []*secondary.OrderRecord
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		customer, err := s.customers.GetByName(ctx, req.CustomerName)
		if err != nil {
			customer = &secondary.CustomerRecord{Name: req.CustomerName}
			if err := s.customers.Create(ctx, customer); err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
		}

		seed, err = s.writeOrder(ctx, writeOrderParams{
			customerID:   customer.ID,
			seriesID:     seriesID,
			delivery:     form.delivery,
			from:         form.from,
			to:           form.to,
			cadence:      form.cadence,
			halbeChannel: req.HalbeChannel,
			isFuture:     false,
			avoidSunday:  avoidSunday,
			lines:        form.lines,
		})
		if err != nil {
			return err
		}

		specs, _ := lineSpecs(form.lines)
		drafts := subscription.Expand(subscription.Seed{
			DeliveryDate: form.delivery,
			FromDate:     form.from,
			ToDate:       form.to,
			Cadence:      form.cadence,
			AvoidSunday:  avoidSunday,
		}, specs)
		for _, draft := range drafts {
			future, err := s.writeOrder(ctx, writeOrderParams{
				customerID:   customer.ID,
				seriesID:     seriesID,
				delivery:     draft.DeliveryDate,
				from:         form.from,
				to:           form.to,
				cadence:      form.cadence,
				halbeChannel: req.HalbeChannel,
				isFuture:     true,
				avoidSunday:  avoidSunday,
				lines:        form.lines,
			})
			if err != nil {
				return err
			}
			futures = append(futures, future)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	after := &undo.State{}
	for _, record := range append([]*secondary.OrderRecord{seed}, futures...) {
		record.CustomerName = req.CustomerName
		after.Orders = append(after.Orders, snapshotFromParams(record, form.lines, !avoidSunday))
	}
	s.session.Record(undo.Action{
		Type:        undo.ActionCreateOrder,
		After:       after,
		Description: fmt.Sprintf("create order for %s on %s", req.CustomerName, form.delivery.Format("02.01.2006")),
	})
	s.session.DataChanged()

	order, err := s.GetOrder(ctx, seed.OrderRef)
	if err != nil {
		return nil, err
	}
	return &primary.CreateOrderResponse{Order: order, FutureCount: len(futures)}, nil
}

// writeOrderParams bundles the row-level fields of one order write.
type writeOrderParams struct {
	customerID   int64
	seriesID     string
	ref          string // generated when empty
	delivery     time.Time
	from, to     time.Time
	cadence      schedule.Cadence
	halbeChannel bool
	isFuture     bool
	avoidSunday  bool
	lines        []formLine
}

// writeOrder persists one order row and its line items, deriving every
// production and transfer date from the item growth parameters.
func (s *OrderServiceImpl) writeOrder(ctx context.Context, p writeOrderParams) (*secondary.OrderRecord, error) {
	totals := make([]int, 0, len(p.lines))
	for _, l := range p.lines {
		totals = append(totals, l.item.TotalDays())
	}

	ref := p.ref
	if ref == "" {
		ref = s.newOrderRef()
	}
	record := &secondary.OrderRecord{
		OrderRef:       ref,
		SeriesID:       p.seriesID,
		CustomerID:     p.customerID,
		DeliveryDate:   schedule.DateOnly(p.delivery),
		ProductionDate: schedule.OrderProductionDate(p.delivery, totals, p.avoidSunday),
		Cadence:        int(p.cadence),
		HalbeChannel:   p.halbeChannel,
		IsFuture:       p.isFuture,
	}
	if p.cadence != schedule.CadenceNone {
		from, to := schedule.DateOnly(p.from), schedule.DateOnly(p.to)
		record.FromDate, record.ToDate = &from, &to
	}
	if err := s.orders.Create(ctx, record); err != nil {
		return nil, err
	}

	for _, l := range p.lines {
		prod := schedule.ProductionDate(p.delivery, l.item.TotalDays(), p.avoidSunday)
		line := &secondary.OrderLineRecord{
			OrderID:        record.ID,
			ItemID:         l.item.ID,
			Amount:         l.amount.String(),
			ProductionDate: prod,
			TransferDate:   schedule.TransferDate(prod, l.item.GerminationDays),
		}
		if err := s.orders.CreateLine(ctx, line); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// GetOrder retrieves an order with its line items by stable reference.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderRef string) (*primary.Order, error) {
	record, err := s.orders.GetByRef(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	lines, err := s.orders.Lines(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toOrder(record, lines), nil
}

// ListOrders lists orders with optional filters, ordered by delivery date.
func (s *OrderServiceImpl) ListOrders(ctx context.Context, filters primary.OrderListFilters) ([]*primary.Order, error) {
	repoFilters := secondary.OrderFilters{
		SeriesID:      filters.SeriesID,
		DeliveredFrom: filters.From,
		DeliveredTo:   filters.To,
	}
	if filters.CustomerName != "" {
		customer, err := s.customers.GetByName(ctx, filters.CustomerName)
		if err != nil {
			return nil, err
		}
		repoFilters.CustomerID = customer.ID
	}

	records, err := s.orders.List(ctx, repoFilters)
	if err != nil {
		return nil, err
	}
	out := make([]*primary.Order, 0, len(records))
	for _, record := range records {
		lines, err := s.orders.Lines(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrder(record, lines))
	}
	return out, nil
}

// EditOrder applies new field values and a replacement line-item set to an
// order, scoped to just it or to it and its future siblings.
func (s *OrderServiceImpl) EditOrder(ctx context.Context, req primary.EditOrderRequest) (*primary.EditOrderResponse, error) {
	original, err := s.orders.GetByRef(ctx, req.OrderRef)
	if err != nil {
		return nil, err
	}
	originalLines, err := s.orders.Lines(ctx, original.ID)
	if err != nil {
		return nil, err
	}

	form, err := s.validateOrderForm(ctx, req.DeliveryDate, req.Cadence, req.FromDate, req.ToDate, req.Lines)
	if err != nil {
		return nil, err
	}

	// The Sunday policy is sticky per series, derived from the dates the
	// stored rows actually carry.
	allowSunday := schedule.AllowSunday(lineProductionDates(originalLines))
	avoidSunday := !allowSunday

	switch req.Scope {
	case primary.ScopeOnlyThis:
		return s.editOnlyThis(ctx, original, originalLines, form, req, avoidSunday)
	case primary.ScopeThisAndFuture:
		return s.editThisAndFuture(ctx, original, originalLines, form, req, avoidSunday)
	default:
		return nil, fmt.Errorf("unknown edit scope %q", req.Scope)
	}
}

func (s *OrderServiceImpl) editOnlyThis(ctx context.Context, original *secondary.OrderRecord, originalLines []*secondary.OrderLineRecord, form *orderForm, req primary.EditOrderRequest, avoidSunday bool) (*primary.EditOrderResponse, error) {
	before := snapshotOrder(original, originalLines)

	detached := subscription.ShouldDetach(
		original.DeliveryDate, form.delivery,
		schedule.Cadence(original.Cadence), form.cadence,
	)

	updated := *original
	updated.DeliveryDate = form.delivery
	updated.Cadence = int(form.cadence)
	updated.HalbeChannel = req.HalbeChannel
	if form.cadence != schedule.CadenceNone {
		from, to := form.from, form.to
		updated.FromDate, updated.ToDate = &from, &to
	} else {
		updated.FromDate, updated.ToDate = nil, nil
	}
	if detached {
		// Off the pattern: the order leaves its series entirely.
		updated.SeriesID = ""
		updated.Cadence = int(schedule.CadenceNone)
		updated.FromDate, updated.ToDate = nil, nil
		updated.IsFuture = false
	}
	totals := make([]int, 0, len(form.lines))
	for _, l := range form.lines {
		totals = append(totals, l.item.TotalDays())
	}
	updated.ProductionDate = schedule.OrderProductionDate(form.delivery, totals, avoidSunday)

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Update(ctx, &updated); err != nil {
			return err
		}
		return s.replaceLines(ctx, updated.ID, form.delivery, form.lines, avoidSunday)
	})
	if err != nil {
		return nil, err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionEditOrder,
		Before:      &undo.State{Orders: []undo.OrderSnapshot{before}},
		After:       &undo.State{Orders: []undo.OrderSnapshot{snapshotFromParams(&updated, form.lines, !avoidSunday)}},
		Description: fmt.Sprintf("edit order %s", req.OrderRef),
	})
	s.session.DataChanged()

	order, err := s.GetOrder(ctx, req.OrderRef)
	if err != nil {
		return nil, err
	}
	return &primary.EditOrderResponse{Order: order, Detached: detached}, nil
}

func (s *OrderServiceImpl) editThisAndFuture(ctx context.Context, original *secondary.OrderRecord, originalLines []*secondary.OrderLineRecord, form *orderForm, req primary.EditOrderRequest, avoidSunday bool) (*primary.EditOrderResponse, error) {
	// The resync stays anchored at the pre-edit delivery date, so moving
	// the edited order does not shift which siblings count as future.
	editPoint := original.DeliveryDate

	members, memberLines, err := s.seriesMembers(ctx, original)
	if err != nil {
		return nil, err
	}

	seriesID := original.SeriesID
	if seriesID == "" && form.cadence != schedule.CadenceNone {
		seriesID = s.newID()
	}
	if form.cadence == schedule.CadenceNone {
		seriesID = ""
	}

	updated := *original
	updated.SeriesID = seriesID
	updated.DeliveryDate = form.delivery
	updated.Cadence = int(form.cadence)
	updated.HalbeChannel = req.HalbeChannel
	if form.cadence != schedule.CadenceNone {
		from, to := form.from, form.to
		updated.FromDate, updated.ToDate = &from, &to
	} else {
		updated.FromDate, updated.ToDate = nil, nil
	}
	totals := make([]int, 0, len(form.lines))
	for _, l := range form.lines {
		totals = append(totals, l.item.TotalDays())
	}
	updated.ProductionDate = schedule.OrderProductionDate(form.delivery, totals, avoidSunday)

	specs, target := lineSpecs(form.lines)
	result := subscription.Resync(subscription.Seed{
		DeliveryDate: form.delivery,
		FromDate:     form.from,
		ToDate:       form.to,
		Cadence:      form.cadence,
		AvoidSunday:  avoidSunday,
	}, specs, target, members, original.OrderRef, editPoint)

	before := &undo.State{Orders: []undo.OrderSnapshot{snapshotOrder(original, originalLines)}}
	after := &undo.State{Orders: []undo.OrderSnapshot{snapshotFromParams(&updated, form.lines, !avoidSunday)}}

	var created []*secondary.OrderRecord
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Update(ctx, &updated); err != nil {
			return err
		}
		if err := s.replaceLines(ctx, updated.ID, form.delivery, form.lines, avoidSunday); err != nil {
			return err
		}

		for _, ref := range result.DeleteRefs {
			stale, err := s.orders.GetByRef(ctx, ref)
			if err != nil {
				s.anomalies.Anomaly("resync of %s: sibling %s vanished before delete", original.OrderRef, ref)
				continue
			}
			before.Orders = append(before.Orders, snapshotOrder(stale, memberLines[ref]))
			if err := s.orders.Delete(ctx, stale.ID); err != nil {
				return err
			}
		}

		for _, draft := range result.Create {
			record, err := s.writeOrder(ctx, writeOrderParams{
				customerID:   original.CustomerID,
				seriesID:     seriesID,
				delivery:     draft.DeliveryDate,
				from:         form.from,
				to:           form.to,
				cadence:      form.cadence,
				halbeChannel: req.HalbeChannel,
				isFuture:     true,
				avoidSunday:  avoidSunday,
				lines:        form.lines,
			})
			if err != nil {
				return err
			}
			created = append(created, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, record := range created {
		record.CustomerName = original.CustomerName
		after.Orders = append(after.Orders, snapshotFromParams(record, form.lines, !avoidSunday))
	}
	s.session.Record(undo.Action{
		Type:        undo.ActionEditOrder,
		Before:      before,
		After:       after,
		Description: fmt.Sprintf("edit order %s and future deliveries", req.OrderRef),
	})
	s.session.DataChanged()

	order, err := s.GetOrder(ctx, req.OrderRef)
	if err != nil {
		return nil, err
	}
	return &primary.EditOrderResponse{
		Order:   order,
		Deleted: len(result.DeleteRefs),
		Created: len(created),
	}, nil
}

// replaceLines swaps an order's line-item set wholesale, recomputing the
// derived dates for the new delivery date.
func (s *OrderServiceImpl) replaceLines(ctx context.Context, orderID int64, delivery time.Time, lines []formLine, avoidSunday bool) error {
	if err := s.orders.DeleteLines(ctx, orderID); err != nil {
		return err
	}
	for _, l := range lines {
		prod := schedule.ProductionDate(delivery, l.item.TotalDays(), avoidSunday)
		line := &secondary.OrderLineRecord{
			OrderID:        orderID,
			ItemID:         l.item.ID,
			Amount:         l.amount.String(),
			ProductionDate: prod,
			TransferDate:   schedule.TransferDate(prod, l.item.GerminationDays),
		}
		if err := s.orders.CreateLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// seriesMembers loads the persisted series an order belongs to. Orders with
// an explicit series id use it; legacy rows fall back to the window tuple.
func (s *OrderServiceImpl) seriesMembers(ctx context.Context, order *secondary.OrderRecord) ([]subscription.Member, map[string][]*secondary.OrderLineRecord, error) {
	filters := secondary.OrderFilters{}
	switch {
	case order.SeriesID != "":
		filters.SeriesID = order.SeriesID
	case order.FromDate != nil && order.ToDate != nil:
		filters.CustomerID = order.CustomerID
		filters.FromDate = order.FromDate
		filters.ToDate = order.ToDate
	default:
		return nil, nil, nil
	}

	records, err := s.orders.List(ctx, filters)
	if err != nil {
		return nil, nil, err
	}

	members := make([]subscription.Member, 0, len(records))
	memberLines := make(map[string][]*secondary.OrderLineRecord, len(records))
	for _, record := range records {
		lines, err := s.orders.Lines(ctx, record.ID)
		if err != nil {
			return nil, nil, err
		}
		memberLines[record.OrderRef] = lines
		member := subscription.Member{
			Ref:          record.OrderRef,
			DeliveryDate: record.DeliveryDate,
			Cadence:      schedule.Cadence(record.Cadence),
			Lines:        lineKeys(lines),
		}
		if record.FromDate != nil {
			member.FromDate = *record.FromDate
		}
		if record.ToDate != nil {
			member.ToDate = *record.ToDate
		}
		members = append(members, member)
	}
	return members, memberLines, nil
}

// DeleteOrder removes an order, or it and its matching future siblings.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, req primary.DeleteOrderRequest) (*primary.DeleteOrderResponse, error) {
	target, err := s.orders.GetByRef(ctx, req.OrderRef)
	if err != nil {
		return nil, err
	}
	targetLines, err := s.orders.Lines(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	doomed := []*secondary.OrderRecord{target}
	doomedLines := map[string][]*secondary.OrderLineRecord{target.OrderRef: targetLines}

	if req.Scope == primary.ScopeThisAndFuture {
		siblings, err := s.futureSiblings(ctx, target, targetLines)
		if err != nil {
			return nil, err
		}
		for _, sib := range siblings {
			lines, err := s.orders.Lines(ctx, sib.ID)
			if err != nil {
				return nil, err
			}
			doomed = append(doomed, sib)
			doomedLines[sib.OrderRef] = lines
		}
	}

	before := &undo.State{}
	for _, record := range doomed {
		before.Orders = append(before.Orders, snapshotOrder(record, doomedLines[record.OrderRef]))
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, record := range doomed {
			if err := s.orders.Delete(ctx, record.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionDeleteOrder,
		Before:      before,
		Description: fmt.Sprintf("delete order %s (%d orders)", req.OrderRef, len(doomed)),
	})
	s.session.DataChanged()

	return &primary.DeleteOrderResponse{Deleted: len(doomed)}, nil
}

// futureSiblings finds the not-yet-delivered orders belonging to the same
// series as target. With an explicit series id membership is exact; legacy
// rows use the historical heuristic: same customer, delivery today or
// later, same weekday, identical item set.
func (s *OrderServiceImpl) futureSiblings(ctx context.Context, target *secondary.OrderRecord, targetLines []*secondary.OrderLineRecord) ([]*secondary.OrderRecord, error) {
	today := schedule.DateOnly(s.now())

	if target.SeriesID != "" {
		records, err := s.orders.List(ctx, secondary.OrderFilters{
			SeriesID:      target.SeriesID,
			DeliveredFrom: &today,
		})
		if err != nil {
			return nil, err
		}
		out := records[:0]
		for _, record := range records {
			if record.ID != target.ID {
				out = append(out, record)
			}
		}
		return out, nil
	}

	records, err := s.orders.List(ctx, secondary.OrderFilters{
		CustomerID:    target.CustomerID,
		DeliveredFrom: &today,
	})
	if err != nil {
		return nil, err
	}

	targetKeys := lineKeys(targetLines)
	var out []*secondary.OrderRecord
	for _, record := range records {
		if record.ID == target.ID {
			continue
		}
		if record.DeliveryDate.Weekday() != target.DeliveryDate.Weekday() {
			continue
		}
		lines, err := s.orders.Lines(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		if !sameLineKeys(lineKeys(lines), targetKeys) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func lineSpecs(lines []formLine) ([]subscription.LineSpec, []subscription.LineKey) {
	specs := make([]subscription.LineSpec, 0, len(lines))
	keys := make([]subscription.LineKey, 0, len(lines))
	for _, l := range lines {
		specs = append(specs, subscription.LineSpec{
			ItemName:        l.item.Name,
			GerminationDays: l.item.GerminationDays,
			TotalDays:       l.item.TotalDays(),
		})
		keys = append(keys, subscription.LineKey{ItemName: l.item.Name, Amount: l.amount.String()})
	}
	return specs, keys
}

func lineKeys(lines []*secondary.OrderLineRecord) []subscription.LineKey {
	keys := make([]subscription.LineKey, 0, len(lines))
	for _, l := range lines {
		amount := l.Amount
		if d, err := decimal.NewFromString(l.Amount); err == nil {
			amount = d.String()
		}
		keys = append(keys, subscription.LineKey{ItemName: l.ItemName, Amount: amount})
	}
	return keys
}

func sameLineKeys(a, b []subscription.LineKey) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[subscription.LineKey]int, len(a))
	for _, k := range a {
		set[k]++
	}
	for _, k := range b {
		set[k]--
		if set[k] < 0 {
			return false
		}
	}
	return true
}

func lineProductionDates(lines []*secondary.OrderLineRecord) []time.Time {
	out := make([]time.Time, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ProductionDate)
	}
	return out
}

// snapshotOrder deep-copies a persisted order for the undo history.
func snapshotOrder(record *secondary.OrderRecord, lines []*secondary.OrderLineRecord) undo.OrderSnapshot {
	snap := undo.OrderSnapshot{
		Ref:          record.OrderRef,
		SeriesID:     record.SeriesID,
		CustomerName: record.CustomerName,
		DeliveryDate: record.DeliveryDate,
		FromDate:     copyDate(record.FromDate),
		ToDate:       copyDate(record.ToDate),
		Cadence:      record.Cadence,
		HalbeChannel: record.HalbeChannel,
		IsFuture:     record.IsFuture,
		AllowSunday:  schedule.AllowSunday(lineProductionDates(lines)),
	}
	for _, l := range lines {
		snap.Lines = append(snap.Lines, undo.LineSnapshot{ItemName: l.ItemName, Amount: l.Amount})
	}
	return snap
}

// snapshotFromParams snapshots an order just written from validated form
// lines, before the joined line records exist in memory.
func snapshotFromParams(record *secondary.OrderRecord, lines []formLine, allowSunday bool) undo.OrderSnapshot {
	snap := undo.OrderSnapshot{
		Ref:          record.OrderRef,
		SeriesID:     record.SeriesID,
		CustomerName: record.CustomerName,
		DeliveryDate: record.DeliveryDate,
		FromDate:     copyDate(record.FromDate),
		ToDate:       copyDate(record.ToDate),
		Cadence:      record.Cadence,
		HalbeChannel: record.HalbeChannel,
		IsFuture:     record.IsFuture,
		AllowSunday:  allowSunday,
	}
	for _, l := range lines {
		snap.Lines = append(snap.Lines, undo.LineSnapshot{ItemName: l.item.Name, Amount: l.amount.String()})
	}
	return snap
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}

func toOrder(record *secondary.OrderRecord, lines []*secondary.OrderLineRecord) *primary.Order {
	order := &primary.Order{
		Ref:            record.OrderRef,
		SeriesID:       record.SeriesID,
		Customer:       record.CustomerName,
		DeliveryDate:   record.DeliveryDate,
		ProductionDate: record.ProductionDate,
		FromDate:       copyDate(record.FromDate),
		ToDate:         copyDate(record.ToDate),
		Cadence:        record.Cadence,
		CadenceLabel:   schedule.Cadence(record.Cadence).Label(),
		HalbeChannel:   record.HalbeChannel,
		IsFuture:       record.IsFuture,
	}
	for _, l := range lines {
		amount, _ := decimal.NewFromString(l.Amount)
		price, _ := decimal.NewFromString(l.Price)
		order.Lines = append(order.Lines, primary.OrderLine{
			ItemName:       l.ItemName,
			Amount:         amount,
			Price:          price,
			ProductionDate: l.ProductionDate,
			TransferDate:   l.TransferDate,
		})
		order.Total = order.Total.Add(amount.Mul(price))
	}
	return order
}
