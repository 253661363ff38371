package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/microfarm/internal/ports/secondary"
)

// CustomerRepository implements secondary.CustomerRepository with SQLite.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new SQLite customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(scanner interface {
	Scan(dest ...any) error
}) (*secondary.CustomerRecord, error) {
	record := &secondary.CustomerRecord{}
	var createdAt time.Time
	if err := scanner.Scan(&record.ID, &record.Name, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt
	return record, nil
}

// Create persists a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *secondary.CustomerRecord) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO customers (name) VALUES (?)",
		customer.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	customer.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read customer id: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by its row id.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*secondary.CustomerRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT id, name, created_at FROM customers WHERE id = ?", id,
	)
	record, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return record, nil
}

// GetByName retrieves a customer by its unique name.
func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*secondary.CustomerRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT id, name, created_at FROM customers WHERE name = ?", name,
	)
	record, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return record, nil
}

// Update updates a customer's name.
func (r *CustomerRepository) Update(ctx context.Context, customer *secondary.CustomerRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE customers SET name = ? WHERE id = ?",
		customer.Name, customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// Delete removes a customer.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM customers WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// List retrieves all customers ordered by name.
func (r *CustomerRepository) List(ctx context.Context) ([]*secondary.CustomerRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT id, name, created_at FROM customers ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var records []*secondary.CustomerRecord
	for rows.Next() {
		record, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountOrders returns the number of orders referencing the customer.
func (r *CustomerRepository) CountOrders(ctx context.Context, customerID int64) (int, error) {
	var count int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE customer_id = ?", customerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
