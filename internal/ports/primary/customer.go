package primary

import (
	"context"
	"time"
)

// CustomerService defines the primary port for customer operations.
type CustomerService interface {
	// CreateCustomer creates a new customer with a unique name.
	CreateCustomer(ctx context.Context, name string) (*Customer, error)

	// GetCustomer retrieves a customer by name.
	GetCustomer(ctx context.Context, name string) (*Customer, error)

	// ListCustomers lists all customers ordered by name.
	ListCustomers(ctx context.Context) ([]*Customer, error)

	// RenameCustomer changes a customer's unique name.
	RenameCustomer(ctx context.Context, name, newName string) (*Customer, error)

	// DeleteCustomer removes a customer. Fails while the customer still has
	// orders.
	DeleteCustomer(ctx context.Context, name string) error
}

// Customer is the service-level view of a customer.
type Customer struct {
	Name       string
	OrderCount int
	CreatedAt  time.Time
}
