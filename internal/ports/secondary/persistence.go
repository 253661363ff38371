// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// the persistence layer.
package secondary

import (
	"context"
	"time"
)

// TxRunner provides the atomic transaction scope. Every multi-row mutation
// runs inside InTx so readers never observe a half-updated series; fn
// returning an error rolls the whole batch back.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CustomerRepository defines the secondary port for customer persistence.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *CustomerRecord) error

	// GetByID retrieves a customer by its row id.
	GetByID(ctx context.Context, id int64) (*CustomerRecord, error)

	// GetByName retrieves a customer by its unique name.
	GetByName(ctx context.Context, name string) (*CustomerRecord, error)

	// Update updates an existing customer.
	Update(ctx context.Context, customer *CustomerRecord) error

	// Delete removes a customer. Callers must ensure it has no orders.
	Delete(ctx context.Context, id int64) error

	// List retrieves all customers ordered by name.
	List(ctx context.Context) ([]*CustomerRecord, error)

	// CountOrders returns the number of orders referencing the customer.
	CountOrders(ctx context.Context, customerID int64) (int, error)
}

// CustomerRecord represents a customer as stored in persistence.
type CustomerRecord struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ItemRepository defines the secondary port for item persistence.
type ItemRepository interface {
	// Create persists a new item.
	Create(ctx context.Context, item *ItemRecord) error

	// GetByID retrieves an item by its row id.
	GetByID(ctx context.Context, id int64) (*ItemRecord, error)

	// GetByName retrieves an item by its unique name.
	GetByName(ctx context.Context, name string) (*ItemRecord, error)

	// Update updates an existing item.
	Update(ctx context.Context, item *ItemRecord) error

	// Delete removes an item, cascading through order line items.
	Delete(ctx context.Context, id int64) error

	// List retrieves all items ordered by name.
	List(ctx context.Context) ([]*ItemRecord, error)
}

// ItemRecord represents an item as stored in persistence. SeedQuantity and
// Price are canonical decimal strings.
type ItemRecord struct {
	ID              int64
	Name            string
	SeedQuantity    string
	SoakingDays     int
	GerminationDays int
	GrowthDays      int
	Price           string
	Substrate       string
	CreatedAt       time.Time
}

// TotalDays is the growth span driving the production date.
func (r *ItemRecord) TotalDays() int {
	return r.GerminationDays + r.GrowthDays
}

// OrderRepository defines the secondary port for order and line-item
// persistence. Line items never outlive their order; deleting an order
// cascades to its lines.
type OrderRepository interface {
	// Create persists a new order and sets record.ID.
	Create(ctx context.Context, order *OrderRecord) error

	// GetByRef retrieves an order by its stable order reference.
	GetByRef(ctx context.Context, ref string) (*OrderRecord, error)

	// Update updates an existing order's fields.
	Update(ctx context.Context, order *OrderRecord) error

	// Delete removes an order by row id, cascading its line items.
	Delete(ctx context.Context, id int64) error

	// List retrieves orders matching the given filters, ordered by
	// delivery date.
	List(ctx context.Context, filters OrderFilters) ([]*OrderRecord, error)

	// CreateLine persists a new line item.
	CreateLine(ctx context.Context, line *OrderLineRecord) error

	// Lines retrieves the line items of an order joined with their item,
	// ordered by item name.
	Lines(ctx context.Context, orderID int64) ([]*OrderLineRecord, error)

	// DeleteLines removes all line items of an order (wholesale replace).
	DeleteLines(ctx context.Context, orderID int64) error

	// ProductionWindow aggregates line items whose production date falls in
	// the inclusive window, grouped by (production date, item), amounts
	// summed, ordered by date then item name.
	ProductionWindow(ctx context.Context, start, end time.Time) ([]*PlanRow, error)

	// TransferWindow aggregates line items whose transfer date falls in the
	// inclusive window, grouped by (transfer date, item), amounts summed,
	// ordered by date then item name.
	TransferWindow(ctx context.Context, start, end time.Time) ([]*PlanRow, error)
}

// OrderRecord represents an order as stored in persistence. CustomerName is
// joined on read and ignored on write.
type OrderRecord struct {
	ID             int64
	OrderRef       string
	SeriesID       string
	CustomerID     int64
	CustomerName   string
	DeliveryDate   time.Time
	ProductionDate time.Time
	FromDate       *time.Time
	ToDate         *time.Time
	Cadence        int
	HalbeChannel   bool
	IsFuture       bool
	CreatedAt      time.Time
}

// OrderFilters contains filter options for querying orders. Zero values
// mean "no constraint".
type OrderFilters struct {
	CustomerID    int64
	SeriesID      string
	DeliveredOn   *time.Time
	DeliveredFrom *time.Time
	DeliveredTo   *time.Time
	// FromDate/ToDate match the subscription window tuple, for series
	// membership of legacy rows without a series id.
	FromDate *time.Time
	ToDate   *time.Time
}

// OrderLineRecord represents a line item joined with its item's growth
// parameters. Amount and Price are canonical decimal strings.
type OrderLineRecord struct {
	ID              int64
	OrderID         int64
	ItemID          int64
	ItemName        string
	Amount          string
	Price           string
	GerminationDays int
	TotalDays       int
	ProductionDate  time.Time
	TransferDate    time.Time
}

// PlanRow is one aggregated row of the production or transfer view.
type PlanRow struct {
	Date         time.Time
	ItemName     string
	SeedQuantity string
	Substrate    string
	TotalAmount  string
}
