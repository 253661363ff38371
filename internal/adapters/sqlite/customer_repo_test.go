package sqlite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/example/microfarm/internal/adapters/sqlite"
	"github.com/example/microfarm/internal/ports/secondary"
)

func TestCustomerRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCustomerRepository(database)
	ctx := context.Background()

	customer := &secondary.CustomerRecord{Name: "Restaurant Adler"}
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if customer.ID == 0 {
		t.Fatal("Create did not set ID")
	}

	got, err := repo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Restaurant Adler" {
		t.Errorf("Name = %q, want %q", got.Name, "Restaurant Adler")
	}

	byName, err := repo.GetByName(ctx, "Restaurant Adler")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if byName.ID != customer.ID {
		t.Errorf("GetByName ID = %d, want %d", byName.ID, customer.ID)
	}
}

func TestCustomerRepository_GetNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCustomerRepository(database)

	_, err := repo.GetByName(context.Background(), "nobody")
	if err == nil {
		t.Fatal("expected error for missing customer")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want not found", err)
	}
}

func TestCustomerRepository_DuplicateName(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCustomerRepository(database)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.CustomerRecord{Name: "Markt"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, &secondary.CustomerRecord{Name: "Markt"}); err == nil {
		t.Fatal("expected unique constraint error for duplicate name")
	}
}

func TestCustomerRepository_List(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCustomerRepository(database)
	ctx := context.Background()

	seedCustomer(t, database, "Zebra Cafe")
	seedCustomer(t, database, "Adler Hotel")

	customers, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("List returned %d customers, want 2", len(customers))
	}
	if customers[0].Name != "Adler Hotel" {
		t.Errorf("List not ordered by name: first = %q", customers[0].Name)
	}
}

func TestCustomerRepository_CountOrders(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCustomerRepository(database)
	orders := sqlite.NewOrderRepository(database)
	ctx := context.Background()

	customerID := seedCustomer(t, database, "")
	count, err := repo.CountOrders(ctx, customerID)
	if err != nil {
		t.Fatalf("CountOrders failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountOrders = %d, want 0", count)
	}

	order := &secondary.OrderRecord{
		OrderRef:       "ORD-1",
		CustomerID:     customerID,
		DeliveryDate:   date(2026, 3, 2),
		ProductionDate: date(2026, 2, 24),
	}
	if err := orders.Create(ctx, order); err != nil {
		t.Fatalf("order Create failed: %v", err)
	}

	count, err = repo.CountOrders(ctx, customerID)
	if err != nil {
		t.Fatalf("CountOrders failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountOrders = %d, want 1", count)
	}
}

func TestCustomerRepository_UpdateAndDelete(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewCustomerRepository(database)
	ctx := context.Background()

	customer := &secondary.CustomerRecord{Name: "Old Name"}
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	customer.Name = "New Name"
	if err := repo.Update(ctx, customer); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := repo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name after update = %q, want %q", got.Name, "New Name")
	}

	if err := repo.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, customer.ID); err == nil {
		t.Fatal("expected error after delete")
	}
}
