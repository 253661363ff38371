package app

import (
	"context"
	"fmt"

	"github.com/example/microfarm/internal/core/undo"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/ports/secondary"
)

// CustomerServiceImpl implements the CustomerService interface.
type CustomerServiceImpl struct {
	customers secondary.CustomerRepository
	tx        secondary.TxRunner
	session   *Session
}

// NewCustomerService creates a new CustomerService with injected dependencies.
func NewCustomerService(customers secondary.CustomerRepository, tx secondary.TxRunner, session *Session) *CustomerServiceImpl {
	return &CustomerServiceImpl{customers: customers, tx: tx, session: session}
}

// CreateCustomer creates a new customer with a unique name.
func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, name string) (*primary.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("customer name must not be empty")
	}

	record := &secondary.CustomerRecord{Name: name}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.customers.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionCreateCustomer,
		After:       &undo.State{Customer: &undo.CustomerSnapshot{Name: name}},
		Description: fmt.Sprintf("create customer %s", name),
	})
	s.session.DataChanged()

	return s.toCustomer(ctx, record)
}

// GetCustomer retrieves a customer by name.
func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, name string) (*primary.Customer, error) {
	record, err := s.customers.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.toCustomer(ctx, record)
}

// ListCustomers lists all customers ordered by name.
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context) ([]*primary.Customer, error) {
	records, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*primary.Customer, 0, len(records))
	for _, record := range records {
		customer, err := s.toCustomer(ctx, record)
		if err != nil {
			return nil, err
		}
		out = append(out, customer)
	}
	return out, nil
}

// RenameCustomer changes a customer's unique name.
func (s *CustomerServiceImpl) RenameCustomer(ctx context.Context, name, newName string) (*primary.Customer, error) {
	if newName == "" {
		return nil, fmt.Errorf("customer name must not be empty")
	}

	record, err := s.customers.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	record.Name = newName
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.customers.Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionEditCustomer,
		Before:      &undo.State{Customer: &undo.CustomerSnapshot{Name: name}},
		After:       &undo.State{Customer: &undo.CustomerSnapshot{Name: newName}},
		Description: fmt.Sprintf("rename customer %s to %s", name, newName),
	})
	s.session.DataChanged()

	return s.toCustomer(ctx, record)
}

// DeleteCustomer removes a customer. Fails while the customer still has
// orders, so no delivery history is silently lost.
func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, name string) error {
	record, err := s.customers.GetByName(ctx, name)
	if err != nil {
		return err
	}

	count, err := s.customers.CountOrders(ctx, record.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("customer %s still has %d orders", name, count)
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.customers.Delete(ctx, record.ID)
	})
	if err != nil {
		return err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionDeleteCustomer,
		Before:      &undo.State{Customer: &undo.CustomerSnapshot{Name: name}},
		Description: fmt.Sprintf("delete customer %s", name),
	})
	s.session.DataChanged()
	return nil
}

func (s *CustomerServiceImpl) toCustomer(ctx context.Context, record *secondary.CustomerRecord) (*primary.Customer, error) {
	count, err := s.customers.CountOrders(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return &primary.Customer{
		Name:       record.Name,
		OrderCount: count,
		CreatedAt:  record.CreatedAt,
	}, nil
}
