// Package wire provides dependency injection for the microfarm application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	cliadapter "github.com/example/microfarm/internal/adapters/cli"
	"github.com/example/microfarm/internal/adapters/sqlite"
	"github.com/example/microfarm/internal/app"
	"github.com/example/microfarm/internal/config"
	"github.com/example/microfarm/internal/db"
	"github.com/example/microfarm/internal/ports/primary"
)

var (
	cfg             *config.Config
	session         *app.Session
	customerService primary.CustomerService
	itemService     primary.ItemService
	orderService    primary.OrderService
	scheduleService primary.ScheduleService
	undoService     primary.UndoService
	once            sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Session returns the singleton session owning the undo history and the
// refresh listeners.
func Session() *app.Session {
	once.Do(initServices)
	return session
}

// CustomerService returns the singleton CustomerService instance.
func CustomerService() primary.CustomerService {
	once.Do(initServices)
	return customerService
}

// ItemService returns the singleton ItemService instance.
func ItemService() primary.ItemService {
	once.Do(initServices)
	return itemService
}

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// ScheduleService returns the singleton ScheduleService instance.
func ScheduleService() primary.ScheduleService {
	once.Do(initServices)
	return scheduleService
}

// UndoService returns the singleton UndoService instance.
func UndoService() primary.UndoService {
	once.Do(initServices)
	return undoService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to locate config directory: %v", err)
	}
	cfg, err = config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.GetDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	customerRepo := sqlite.NewCustomerRepository(database)
	itemRepo := sqlite.NewItemRepository(database)
	orderRepo := sqlite.NewOrderRepository(database)
	tx := sqlite.NewTxRunner(database)
	anomalies := newAnomalyLogger()

	session = app.NewSession(time.Duration(cfg.RefreshThrottleMs) * time.Millisecond)

	// Services (primary ports implementation)
	customerService = app.NewCustomerService(customerRepo, tx, session)
	itemService = app.NewItemService(itemRepo, tx, session)
	orderService = app.NewOrderService(customerRepo, itemRepo, orderRepo, tx, anomalies, session)
	scheduleService = app.NewScheduleService(orderRepo)
	undoService = app.NewUndoService(customerRepo, itemRepo, orderRepo, tx, anomalies, session)
}

// anomalyLogger writes tolerated series inconsistencies to stderr.
type anomalyLogger struct {
	logger *log.Logger
}

func newAnomalyLogger() *anomalyLogger {
	return &anomalyLogger{logger: log.New(os.Stderr, "anomaly: ", log.LstdFlags)}
}

func (l *anomalyLogger) Anomaly(format string, args ...any) {
	l.logger.Printf(format, args...)
}

// CustomerAdapter returns a new CustomerAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CustomerAdapter() *cliadapter.CustomerAdapter {
	return CustomerAdapterWithWriter(os.Stdout)
}

// CustomerAdapterWithWriter returns a CustomerAdapter writing to w.
func CustomerAdapterWithWriter(w io.Writer) *cliadapter.CustomerAdapter {
	return cliadapter.NewCustomerAdapter(CustomerService(), w)
}

// ItemAdapter returns a new ItemAdapter writing to stdout.
func ItemAdapter() *cliadapter.ItemAdapter {
	return cliadapter.NewItemAdapter(ItemService(), os.Stdout)
}

// OrderAdapter returns a new OrderAdapter writing to stdout.
func OrderAdapter() *cliadapter.OrderAdapter {
	return cliadapter.NewOrderAdapter(OrderService(), os.Stdout)
}

// ScheduleAdapter returns a new ScheduleAdapter writing to stdout.
func ScheduleAdapter() *cliadapter.ScheduleAdapter {
	return cliadapter.NewScheduleAdapter(ScheduleService(), os.Stdout)
}
