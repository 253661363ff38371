package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/microfarm/internal/ports/primary"
)

// CustomerAdapter is a thin adapter that translates CLI operations to
// CustomerService calls.
type CustomerAdapter struct {
	service primary.CustomerService
	out     io.Writer
}

// NewCustomerAdapter creates a new CustomerAdapter with the given service.
func NewCustomerAdapter(service primary.CustomerService, out io.Writer) *CustomerAdapter {
	return &CustomerAdapter{service: service, out: out}
}

// Create creates a new customer.
func (a *CustomerAdapter) Create(ctx context.Context, name string) error {
	customer, err := a.service.CreateCustomer(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created customer %s\n", customer.Name)
	return nil
}

// List prints all customers with their order counts.
func (a *CustomerAdapter) List(ctx context.Context) error {
	customers, err := a.service.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}
	if len(customers) == 0 {
		fmt.Fprintln(a.out, "No customers found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORDERS")
	for _, customer := range customers {
		fmt.Fprintf(w, "%s\t%d\n", customer.Name, customer.OrderCount)
	}
	return w.Flush()
}

// Rename changes a customer's name.
func (a *CustomerAdapter) Rename(ctx context.Context, name, newName string) error {
	customer, err := a.service.RenameCustomer(ctx, name, newName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Renamed customer to %s\n", customer.Name)
	return nil
}

// Delete removes a customer.
func (a *CustomerAdapter) Delete(ctx context.Context, name string) error {
	if err := a.service.DeleteCustomer(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted customer %s\n", name)
	return nil
}
