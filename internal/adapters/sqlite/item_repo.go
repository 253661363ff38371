package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/microfarm/internal/ports/secondary"
)

const itemSelectCols = "id, name, seed_quantity, soaking_days, germination_days, growth_days, price, substrate"

// ItemRepository implements secondary.ItemRepository with SQLite.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new SQLite item repository.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func scanItem(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ItemRecord, error) {
	record := &secondary.ItemRecord{}
	err := scanner.Scan(
		&record.ID,
		&record.Name,
		&record.SeedQuantity,
		&record.SoakingDays,
		&record.GerminationDays,
		&record.GrowthDays,
		&record.Price,
		&record.Substrate,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new item.
func (r *ItemRepository) Create(ctx context.Context, item *secondary.ItemRecord) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO items (name, seed_quantity, soaking_days, germination_days, growth_days, price, substrate)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.SeedQuantity, item.SoakingDays, item.GerminationDays,
		item.GrowthDays, item.Price, item.Substrate,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	return nil
}

// GetByID retrieves an item by its row id.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*secondary.ItemRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+itemSelectCols+" FROM items WHERE id = ?", id,
	)
	record, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return record, nil
}

// GetByName retrieves an item by its unique name.
func (r *ItemRepository) GetByName(ctx context.Context, name string) (*secondary.ItemRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+itemSelectCols+" FROM items WHERE name = ?", name,
	)
	record, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return record, nil
}

// Update updates an item's parameters.
func (r *ItemRepository) Update(ctx context.Context, item *secondary.ItemRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE items SET name = ?, seed_quantity = ?, soaking_days = ?, germination_days = ?,
		 growth_days = ?, price = ?, substrate = ? WHERE id = ?`,
		item.Name, item.SeedQuantity, item.SoakingDays, item.GerminationDays,
		item.GrowthDays, item.Price, item.Substrate, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// Delete removes an item.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM items WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// List retrieves all items ordered by name.
func (r *ItemRepository) List(ctx context.Context) ([]*secondary.ItemRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT "+itemSelectCols+" FROM items ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ItemRecord
	for rows.Next() {
		record, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
