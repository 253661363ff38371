// Package primary defines the primary ports (driving interfaces) of the
// application: the services a shell (CLI here, a GUI elsewhere) invokes.
package primary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EditScope selects how far an edit or delete of a recurring order reaches.
type EditScope string

const (
	// ScopeOnlyThis applies the change to the one order; siblings in the
	// series are untouched.
	ScopeOnlyThis EditScope = "only_this"
	// ScopeThisAndFuture applies the change to the order and replaces its
	// not-yet-elapsed siblings.
	ScopeThisAndFuture EditScope = "this_and_future"
)

// OrderService defines the primary port for order operations, including the
// scoped edit and delete semantics of recurring series.
type OrderService interface {
	// CreateOrder validates and persists a new order; a subscription seed
	// is expanded into its future instances in the same transaction.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// GetOrder retrieves an order with its line items by stable reference.
	GetOrder(ctx context.Context, orderRef string) (*Order, error)

	// ListOrders lists orders with optional filters, ordered by delivery
	// date.
	ListOrders(ctx context.Context, filters OrderListFilters) ([]*Order, error)

	// EditOrder applies new field values and a replacement line-item set to
	// an order, scoped to just it or to it and its future siblings.
	EditOrder(ctx context.Context, req EditOrderRequest) (*EditOrderResponse, error)

	// DeleteOrder removes an order, or it and its matching future siblings.
	DeleteOrder(ctx context.Context, req DeleteOrderRequest) (*DeleteOrderResponse, error)
}

// LineInput is one submitted (item, amount) pair. Amount stays a raw string
// until validation so label-in-amount mistakes can be diagnosed.
type LineInput struct {
	ItemName string
	Amount   string
}

// CreateOrderRequest contains the form fields for creating an order. Dates
// are raw form strings (dd.mm.yyyy or yyyy-mm-dd).
type CreateOrderRequest struct {
	CustomerName string
	DeliveryDate string
	Cadence      int
	FromDate     string // required when Cadence > 0
	ToDate       string // required when Cadence > 0
	HalbeChannel bool
	// AllowSundayProduction keeps a production date that lands on Sunday
	// instead of shifting it to Saturday. The decision sticks for every
	// generated instance of the series.
	AllowSundayProduction bool
	Lines                 []LineInput
}

// CreateOrderResponse contains the created seed order and how many future
// instances were expanded from it.
type CreateOrderResponse struct {
	Order       *Order
	FutureCount int
}

// EditOrderRequest contains the form fields for a scoped edit.
type EditOrderRequest struct {
	OrderRef     string
	Scope        EditScope
	DeliveryDate string
	Cadence      int
	FromDate     string
	ToDate       string
	HalbeChannel bool
	Lines        []LineInput
}

// EditOrderResponse describes what a scoped edit did.
type EditOrderResponse struct {
	Order *Order
	// Detached is set when a single-occurrence edit took the order off its
	// series pattern and its subscription was cleared.
	Detached bool
	// Deleted and Created count the future siblings replaced by a
	// this-and-future resync.
	Deleted int
	Created int
}

// DeleteOrderRequest selects an order and a delete scope.
type DeleteOrderRequest struct {
	OrderRef string
	Scope    EditScope
}

// DeleteOrderResponse reports how many orders were removed.
type DeleteOrderResponse struct {
	Deleted int
}

// OrderListFilters narrows ListOrders.
type OrderListFilters struct {
	CustomerName string
	SeriesID     string
	From         *time.Time
	To           *time.Time
}

// Order is the service-level view of an order with its line items.
type Order struct {
	Ref            string
	SeriesID       string
	Customer       string
	DeliveryDate   time.Time
	ProductionDate time.Time
	FromDate       *time.Time
	ToDate         *time.Time
	Cadence        int
	CadenceLabel   string
	HalbeChannel   bool
	IsFuture       bool
	Lines          []OrderLine
	Total          decimal.Decimal
}

// OrderLine is one line item of an order with its derived dates.
type OrderLine struct {
	ItemName       string
	Amount         decimal.Decimal
	Price          decimal.Decimal
	ProductionDate time.Time
	TransferDate   time.Time
}
