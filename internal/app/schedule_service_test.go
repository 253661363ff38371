package app

import (
	"context"
	"testing"

	"github.com/example/microfarm/internal/ports/primary"
)

func TestWeekOf(t *testing.T) {
	// A Thursday folds back to its Monday; a Sunday belongs to the week
	// that started six days earlier.
	thursday := testDate(2026, 3, 5)
	win := primary.WeekOf(thursday)
	if !win.Start.Equal(testDate(2026, 3, 2)) || !win.End.Equal(testDate(2026, 3, 8)) {
		t.Errorf("WeekOf(Thursday) = %v..%v", win.Start, win.End)
	}

	sunday := testDate(2026, 3, 8)
	win = primary.WeekOf(sunday)
	if !win.Start.Equal(testDate(2026, 3, 2)) {
		t.Errorf("WeekOf(Sunday) starts %v, want the preceding Monday", win.Start)
	}
}

func TestDeliverySchedule(t *testing.T) {
	e := newEnv(t)
	seedStandardItems(t, e)
	weeklyOrder(t, e)

	rows, err := e.schedule.DeliverySchedule(context.Background(), primary.Window{
		Start: testDate(2026, 3, 2),
		End:   testDate(2026, 3, 15),
	})
	if err != nil {
		t.Fatalf("DeliverySchedule failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("window holds %d deliveries, want 2 (02.03. and 09.03.)", len(rows))
	}
	if rows[0].Customer != "Hotel Sonne" {
		t.Errorf("Customer = %q", rows[0].Customer)
	}
	if rows[0].CadenceLabel != "Wöchentlich" {
		t.Errorf("CadenceLabel = %q", rows[0].CadenceLabel)
	}
	// 2 Erbsen at 4.50 plus 1.5 Radieschen at 4.50.
	want := decimalFromString(t, "15.75")
	if !rows[0].Total.Equal(want) {
		t.Errorf("Total = %s, want %s", rows[0].Total, want)
	}
}

func TestProductionPlan_SumsAcrossCustomers(t *testing.T) {
	e := newEnv(t)
	seedStandardItems(t, e)
	ctx := context.Background()

	for _, customer := range []string{"Hotel Sonne", "Cafe Blume"} {
		_, err := e.orders.CreateOrder(ctx, primary.CreateOrderRequest{
			CustomerName: customer,
			DeliveryDate: "09.03.2026",
			Lines:        []primary.LineInput{{ItemName: "Erbsen", Amount: "1,5"}},
		})
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
	}

	// Erbsen needs 9 days: both orders produce on Saturday 28.02.2026.
	rows, err := e.schedule.ProductionPlan(ctx, primary.Window{
		Start: testDate(2026, 2, 23),
		End:   testDate(2026, 3, 1),
	})
	if err != nil {
		t.Fatalf("ProductionPlan failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("plan has %d rows, want 1 aggregated row", len(rows))
	}
	if !rows[0].TotalAmount.Equal(decimalFromString(t, "3")) {
		t.Errorf("TotalAmount = %s, want 3", rows[0].TotalAmount)
	}
	if rows[0].ItemName != "Erbsen" || rows[0].Substrate != "Erde" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestTransferSchedule(t *testing.T) {
	e := newEnv(t)
	seedStandardItems(t, e)
	ctx := context.Background()

	if _, err := e.orders.CreateOrder(ctx, primary.CreateOrderRequest{
		CustomerName: "Hotel Sonne",
		DeliveryDate: "09.03.2026",
		Lines:        []primary.LineInput{{ItemName: "Erbsen", Amount: "2"}},
	}); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Production Saturday 28.02. plus three germination days.
	wantDay := testDate(2026, 3, 3)
	rows, err := e.schedule.TransferSchedule(ctx, primary.Window{
		Start: testDate(2026, 3, 2),
		End:   testDate(2026, 3, 8),
	})
	if err != nil {
		t.Fatalf("TransferSchedule failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("schedule has %d rows, want 1", len(rows))
	}
	if !rows[0].Date.Equal(wantDay) {
		t.Errorf("transfer day = %v, want %v", rows[0].Date, wantDay)
	}
}
