package app

import (
	"context"
	"testing"

	"github.com/example/microfarm/internal/ports/primary"
)

func TestUndo_NothingRecorded(t *testing.T) {
	e := newEnv(t)

	if e.undoSvc.CanUndo() {
		t.Error("CanUndo true on empty history")
	}
	if _, err := e.undoSvc.Undo(context.Background()); err == nil {
		t.Error("expected error undoing empty history")
	}
}

func TestUndo_CreateOrderRemovesWholeSeries(t *testing.T) {
	e := newEnv(t)
	seedStandardItems(t, e)
	weeklyOrder(t, e)

	if !e.undoSvc.CanUndo() {
		t.Fatal("CanUndo false after create")
	}
	result, err := e.undoSvc.Undo(context.Background())
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if result.Description == "" {
		t.Error("undo result has no description")
	}
	if e.countOrders(t) != 0 {
		t.Errorf("persisted %d orders after undo, want 0", e.countOrders(t))
	}
}

func TestUndo_DeleteOrderRestoresIt(t *testing.T) {
	e := newEnv(t)
	seedStandardItems(t, e)
	ctx := context.Background()

	resp, err := e.orders.CreateOrder(ctx, primary.CreateOrderRequest{
		CustomerName: "Hotel Sonne",
		DeliveryDate: "09.03.2026",
		Lines:        []primary.LineInput{{ItemName: "Erbsen", Amount: "2"}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := e.orders.DeleteOrder(ctx, primary.DeleteOrderRequest{
		OrderRef: resp.Order.Ref,
		Scope:    primary.ScopeOnlyThis,
	}); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}

	if _, err := e.undoSvc.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	restored, err := e.orders.GetOrder(ctx, resp.Order.Ref)
	if err != nil {
		t.Fatalf("restored order not found: %v", err)
	}
	if !restored.DeliveryDate.Equal(testDate(2026, 3, 9)) {
		t.Errorf("restored delivery = %v", restored.DeliveryDate)
	}
	if len(restored.Lines) != 1 || restored.Lines[0].ItemName != "Erbsen" {
		t.Errorf("restored lines = %+v", restored.Lines)
	}
	if !restored.ProductionDate.Equal(resp.Order.ProductionDate) {
		t.Errorf("restored production date %v, want %v",
			restored.ProductionDate, resp.Order.ProductionDate)
	}
}

func TestUndo_EditRestoresSeries(t *testing.T) {
	e := newEnv(t)
	seedStandardItems(t, e)
	ctx := context.Background()
	weeklyOrder(t, e)

	day := testDate(2026, 3, 9)
	members, err := e.orderRepo.List(ctx, filtersDeliveredOn(day))
	if err != nil || len(members) != 1 {
		t.Fatalf("lookup of 09.03. instance failed: %v (%d rows)", err, len(members))
	}

	if _, err := e.orders.EditOrder(ctx, primary.EditOrderRequest{
		OrderRef:     members[0].OrderRef,
		Scope:        primary.ScopeThisAndFuture,
		DeliveryDate: "09.03.2026",
		Cadence:      2,
		FromDate:     "02.03.2026",
		ToDate:       "06.04.2026",
		Lines:        []primary.LineInput{{ItemName: "Erbsen", Amount: "2"}},
	}); err != nil {
		t.Fatalf("EditOrder failed: %v", err)
	}
	if e.countOrders(t) != 4 {
		t.Fatalf("after edit: %d orders, want 4", e.countOrders(t))
	}

	if _, err := e.undoSvc.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	// The weekly series is back: seed plus four Mondays.
	if e.countOrders(t) != 5 {
		t.Errorf("after undo: %d orders, want 5", e.countOrders(t))
	}
	edited, err := e.orders.GetOrder(ctx, members[0].OrderRef)
	if err != nil {
		t.Fatalf("edited order not found after undo: %v", err)
	}
	if edited.Cadence != 1 {
		t.Errorf("cadence after undo = %d, want weekly", edited.Cadence)
	}
	if len(edited.Lines) != 2 {
		t.Errorf("line set after undo has %d lines, want 2", len(edited.Lines))
	}
}

func TestUndo_WalksHistoryDownward(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.customers.CreateCustomer(ctx, "Erste"); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if _, err := e.customers.CreateCustomer(ctx, "Zweite"); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	history := e.undoSvc.History()
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}

	first, err := e.undoSvc.Undo(ctx)
	if err != nil {
		t.Fatalf("first Undo failed: %v", err)
	}
	if first.Description != "create customer Zweite" {
		t.Errorf("first undo = %q, want the most recent action", first.Description)
	}
	second, err := e.undoSvc.Undo(ctx)
	if err != nil {
		t.Fatalf("second Undo failed: %v", err)
	}
	if second.Description != "create customer Erste" {
		t.Errorf("second undo = %q", second.Description)
	}
	if e.undoSvc.CanUndo() {
		t.Error("CanUndo true after exhausting history")
	}

	customers, err := e.customers.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("%d customers left after undoing both creates", len(customers))
	}
}

func TestUndo_ItemEditRestoresFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.itemSvc.CreateItem(ctx, primary.ItemRequest{
		Name:            "Senf",
		SeedQuantity:    "100",
		GerminationDays: 2,
		GrowthDays:      6,
		Price:           "4,00",
		Substrate:       "Erde",
	}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if _, err := e.itemSvc.UpdateItem(ctx, "Senf", primary.ItemRequest{
		Name:            "Senf",
		SeedQuantity:    "120",
		GerminationDays: 2,
		GrowthDays:      7,
		Price:           "4,50",
		Substrate:       "Hanfmatte",
	}); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	if _, err := e.undoSvc.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	item, err := e.itemSvc.GetItem(ctx, "Senf")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.GrowthDays != 6 || item.Substrate != "Erde" {
		t.Errorf("item after undo: growth=%d substrate=%q", item.GrowthDays, item.Substrate)
	}
	if !item.Price.Equal(decimalFromString(t, "4")) {
		t.Errorf("price after undo = %s, want 4", item.Price)
	}
}
