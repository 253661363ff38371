package app

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/example/microfarm/internal/adapters/sqlite"
	"github.com/example/microfarm/internal/db"
	"github.com/example/microfarm/internal/ports/secondary"
)

// testAnomalyLog captures tolerated inconsistencies for assertions.
type testAnomalyLog struct {
	messages []string
}

func (l *testAnomalyLog) Anomaly(format string, args ...any) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

// env wires the services against a real in-memory database, with the clock
// pinned so "today" is stable across test runs.
type env struct {
	db        *sql.DB
	items     secondary.ItemRepository
	orderRepo secondary.OrderRepository
	session   *Session
	anomalies *testAnomalyLog

	customers *CustomerServiceImpl
	itemSvc   *ItemServiceImpl
	orders    *OrderServiceImpl
	schedule  *ScheduleServiceImpl
	undoSvc   *UndoServiceImpl
}

// testToday is the pinned clock for every service test.
var testToday = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *env {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	customerRepo := sqlite.NewCustomerRepository(database)
	itemRepo := sqlite.NewItemRepository(database)
	orderRepo := sqlite.NewOrderRepository(database)
	tx := sqlite.NewTxRunner(database)
	anomalies := &testAnomalyLog{}
	session := NewSession(0)

	orderSvc := NewOrderService(customerRepo, itemRepo, orderRepo, tx, anomalies, session)
	orderSvc.now = func() time.Time { return testToday }

	return &env{
		db:        database,
		items:     itemRepo,
		orderRepo: orderRepo,
		session:   session,
		anomalies: anomalies,
		customers: NewCustomerService(customerRepo, tx, session),
		itemSvc:   NewItemService(itemRepo, tx, session),
		orders:    orderSvc,
		schedule:  NewScheduleService(orderRepo),
		undoSvc:   NewUndoService(customerRepo, itemRepo, orderRepo, tx, anomalies, session),
	}
}

// seedTestItem inserts an item directly through the repository.
func (e *env) seedTestItem(t *testing.T, name string, germinationDays, growthDays int) {
	t.Helper()
	err := e.items.Create(context.Background(), &secondary.ItemRecord{
		Name:            name,
		SeedQuantity:    "150",
		GerminationDays: germinationDays,
		GrowthDays:      growthDays,
		Price:           "4.50",
		Substrate:       "Erde",
	})
	if err != nil {
		t.Fatalf("failed to seed item %s: %v", name, err)
	}
}

// countOrders counts the order rows currently persisted.
func (e *env) countOrders(t *testing.T) int {
	t.Helper()
	var count int
	if err := e.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return count
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal fixture %q: %v", s, err)
	}
	return d
}

// filtersDeliveredOn narrows a repository listing to one delivery day.
func filtersDeliveredOn(day time.Time) secondary.OrderFilters {
	return secondary.OrderFilters{DeliveredOn: &day}
}
