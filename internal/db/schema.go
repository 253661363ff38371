package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database layout. All tests
// build their in-memory database from GetSchemaSQL(), so repository code
// referencing a column that does not exist here fails immediately with
// "no such column" instead of drifting.
//
// Decimal quantities (amounts, prices, seed quantities) are stored as
// canonical decimal strings in TEXT columns; date columns hold UTC
// midnight timestamps.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	seed_quantity TEXT NOT NULL,
	soaking_days INTEGER NOT NULL DEFAULT 0,
	germination_days INTEGER NOT NULL,
	growth_days INTEGER NOT NULL,
	price TEXT NOT NULL,
	substrate TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_ref TEXT NOT NULL UNIQUE,
	series_id TEXT,
	customer_id INTEGER NOT NULL,
	delivery_date DATE NOT NULL,
	production_date DATE NOT NULL,
	from_date DATE,
	to_date DATE,
	subscription_type INTEGER NOT NULL DEFAULT 0,
	halbe_channel BOOLEAN NOT NULL DEFAULT 0,
	is_future BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL,
	item_id INTEGER NOT NULL,
	amount TEXT NOT NULL,
	production_date DATE NOT NULL,
	transfer_date DATE NOT NULL,
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_orders_delivery_date ON orders(delivery_date);
CREATE INDEX IF NOT EXISTS idx_orders_series_id ON orders(series_id);
CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_order_items_production_date ON order_items(production_date);
CREATE INDEX IF NOT EXISTS idx_order_items_transfer_date ON order_items(transfer_date);
`

// InitSchema applies the schema to a fresh or existing database.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent
// drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
