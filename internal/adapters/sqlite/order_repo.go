package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/microfarm/internal/ports/secondary"
)

const orderSelectCols = `o.id, o.order_ref, o.series_id, o.customer_id, c.name,
	o.delivery_date, o.production_date, o.from_date, o.to_date,
	o.subscription_type, o.halbe_channel, o.is_future, o.created_at`

// OrderRepository implements secondary.OrderRepository with SQLite.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new SQLite order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(scanner interface {
	Scan(dest ...any) error
}) (*secondary.OrderRecord, error) {
	record := &secondary.OrderRecord{}
	var seriesID sql.NullString
	var fromDate, toDate sql.NullTime
	err := scanner.Scan(
		&record.ID,
		&record.OrderRef,
		&seriesID,
		&record.CustomerID,
		&record.CustomerName,
		&record.DeliveryDate,
		&record.ProductionDate,
		&fromDate,
		&toDate,
		&record.Cadence,
		&record.HalbeChannel,
		&record.IsFuture,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.SeriesID = seriesID.String
	if fromDate.Valid {
		d := fromDate.Time
		record.FromDate = &d
	}
	if toDate.Valid {
		d := toDate.Time
		record.ToDate = &d
	}
	return record, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create persists a new order and sets its row id.
func (r *OrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO orders (order_ref, series_id, customer_id, delivery_date, production_date,
		 from_date, to_date, subscription_type, halbe_channel, is_future)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.OrderRef, nullableString(order.SeriesID), order.CustomerID,
		order.DeliveryDate, order.ProductionDate,
		nullableDate(order.FromDate), nullableDate(order.ToDate),
		order.Cadence, order.HalbeChannel, order.IsFuture,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read order id: %w", err)
	}
	return nil
}

// GetByRef retrieves an order by its unique reference.
func (r *OrderRepository) GetByRef(ctx context.Context, orderRef string) (*secondary.OrderRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+orderSelectCols+" FROM orders o JOIN customers c ON c.id = o.customer_id WHERE o.order_ref = ?",
		orderRef,
	)
	record, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %q not found", orderRef)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return record, nil
}

// Update updates an order's mutable fields.
func (r *OrderRepository) Update(ctx context.Context, order *secondary.OrderRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE orders SET series_id = ?, customer_id = ?, delivery_date = ?, production_date = ?,
		 from_date = ?, to_date = ?, subscription_type = ?, halbe_channel = ?, is_future = ?
		 WHERE id = ?`,
		nullableString(order.SeriesID), order.CustomerID,
		order.DeliveryDate, order.ProductionDate,
		nullableDate(order.FromDate), nullableDate(order.ToDate),
		order.Cadence, order.HalbeChannel, order.IsFuture,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// Delete removes an order; its lines go with it via cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM orders WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// List retrieves orders matching the filters, ordered by delivery date.
func (r *OrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	query := "SELECT " + orderSelectCols + " FROM orders o JOIN customers c ON c.id = o.customer_id"
	var conditions []string
	var args []any

	if filters.CustomerID != 0 {
		conditions = append(conditions, "o.customer_id = ?")
		args = append(args, filters.CustomerID)
	}
	if filters.SeriesID != "" {
		conditions = append(conditions, "o.series_id = ?")
		args = append(args, filters.SeriesID)
	}
	if filters.DeliveredOn != nil {
		conditions = append(conditions, "o.delivery_date = ?")
		args = append(args, *filters.DeliveredOn)
	}
	if filters.DeliveredFrom != nil {
		conditions = append(conditions, "o.delivery_date >= ?")
		args = append(args, *filters.DeliveredFrom)
	}
	if filters.DeliveredTo != nil {
		conditions = append(conditions, "o.delivery_date <= ?")
		args = append(args, *filters.DeliveredTo)
	}
	if filters.FromDate != nil {
		conditions = append(conditions, "o.from_date = ?")
		args = append(args, *filters.FromDate)
	}
	if filters.ToDate != nil {
		conditions = append(conditions, "o.to_date = ?")
		args = append(args, *filters.ToDate)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY o.delivery_date, c.name"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var records []*secondary.OrderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CreateLine persists a single order line.
func (r *OrderRepository) CreateLine(ctx context.Context, line *secondary.OrderLineRecord) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO order_items (order_id, item_id, amount, production_date, transfer_date)
		 VALUES (?, ?, ?, ?, ?)`,
		line.OrderID, line.ItemID, line.Amount, line.ProductionDate, line.TransferDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}
	line.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read order line id: %w", err)
	}
	return nil
}

// Lines retrieves an order's lines joined with their item parameters,
// ordered by item name.
func (r *OrderRepository) Lines(ctx context.Context, orderID int64) ([]*secondary.OrderLineRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.item_id, i.name, oi.amount, i.price,
		 i.germination_days, i.germination_days + i.growth_days,
		 oi.production_date, oi.transfer_date
		 FROM order_items oi JOIN items i ON i.id = oi.item_id
		 WHERE oi.order_id = ? ORDER BY i.name`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}
	defer rows.Close()

	var lines []*secondary.OrderLineRecord
	for rows.Next() {
		line := &secondary.OrderLineRecord{}
		err := rows.Scan(
			&line.ID, &line.OrderID, &line.ItemID, &line.ItemName, &line.Amount,
			&line.Price, &line.GerminationDays, &line.TotalDays,
			&line.ProductionDate, &line.TransferDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// DeleteLines removes all lines of an order.
func (r *OrderRepository) DeleteLines(ctx context.Context, orderID int64) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM order_items WHERE order_id = ?", orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete order lines: %w", err)
	}
	return nil
}

// ProductionWindow aggregates line amounts per production date and item
// across the window. Amounts are summed as exact decimals.
func (r *OrderRepository) ProductionWindow(ctx context.Context, start, end time.Time) ([]*secondary.PlanRow, error) {
	return r.planWindow(ctx, "oi.production_date", start, end)
}

// TransferWindow aggregates line amounts per transfer date and item
// across the window.
func (r *OrderRepository) TransferWindow(ctx context.Context, start, end time.Time) ([]*secondary.PlanRow, error) {
	return r.planWindow(ctx, "oi.transfer_date", start, end)
}

func (r *OrderRepository) planWindow(ctx context.Context, dateCol string, start, end time.Time) ([]*secondary.PlanRow, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+dateCol+`, i.name, i.seed_quantity, i.substrate, oi.amount
		 FROM order_items oi JOIN items i ON i.id = oi.item_id
		 WHERE `+dateCol+` >= ? AND `+dateCol+` <= ?`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan window: %w", err)
	}
	defer rows.Close()

	// Amounts are stored as decimal text, so the grouping sums are
	// folded here instead of in SQL to keep them exact.
	type planKey struct {
		date time.Time
		item string
	}
	totals := make(map[planKey]decimal.Decimal)
	meta := make(map[planKey]*secondary.PlanRow)
	for rows.Next() {
		var date time.Time
		var name, seedQuantity, substrate, amount string
		if err := rows.Scan(&date, &name, &seedQuantity, &substrate, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q for %s: %w", amount, name, err)
		}
		key := planKey{date: date, item: name}
		totals[key] = totals[key].Add(value)
		if _, ok := meta[key]; !ok {
			meta[key] = &secondary.PlanRow{
				Date:         date,
				ItemName:     name,
				SeedQuantity: seedQuantity,
				Substrate:    substrate,
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*secondary.PlanRow, 0, len(meta))
	for key, row := range meta {
		row.TotalAmount = totals[key].String()
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ItemName < result[j].ItemName
	})
	return result, nil
}
