package primary

import (
	"context"

	"github.com/shopspring/decimal"
)

// ItemService defines the primary port for item operations.
type ItemService interface {
	// CreateItem creates a new item with a unique name.
	CreateItem(ctx context.Context, req ItemRequest) (*Item, error)

	// GetItem retrieves an item by name.
	GetItem(ctx context.Context, name string) (*Item, error)

	// ListItems lists all items ordered by name.
	ListItems(ctx context.Context) ([]*Item, error)

	// UpdateItem replaces an item's fields. Stored line items keep their
	// derived dates; only future edits see the new growth parameters.
	UpdateItem(ctx context.Context, name string, req ItemRequest) (*Item, error)

	// DeleteItem removes an item, cascading through order line items.
	DeleteItem(ctx context.Context, name string) error
}

// ItemRequest contains the form fields of an item. SeedQuantity and Price
// are raw strings validated by the service.
type ItemRequest struct {
	Name            string
	SeedQuantity    string
	SoakingDays     int
	GerminationDays int
	GrowthDays      int
	Price           string
	Substrate       string
}

// Item is the service-level view of an item.
type Item struct {
	Name            string
	SeedQuantity    decimal.Decimal
	SoakingDays     int
	GerminationDays int
	GrowthDays      int
	TotalDays       int
	Price           decimal.Decimal
	Substrate       string
}
