package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: a few
// customers and the usual microgreens assortment. Orders are left to the
// user so derived dates always come from the real code path.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	customers := []string{"Gasthaus Sonne", "Marktstand Meier", "Bioladen Grünkern"}
	for _, name := range customers {
		if _, err := database.Exec(
			"INSERT OR IGNORE INTO customers (name, created_at) VALUES (?, ?)",
			name, now,
		); err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
	}

	items := []struct {
		name         string
		seedQuantity string
		soaking      int
		germination  int
		growth       int
		price        string
		substrate    string
	}{
		{"Erbsen", "200", 1, 3, 7, "4.50", "Erde"},
		{"Radieschen", "35", 0, 2, 4, "3.80", "Hanfmatte"},
		{"Senf", "25", 0, 2, 3, "3.20", "Hanfmatte"},
		{"Rucola", "20", 0, 2, 5, "4.00", "Erde"},
		{"Sonnenblumen", "120", 1, 2, 6, "4.20", "Erde"},
	}
	for _, it := range items {
		if _, err := database.Exec(
			"INSERT OR IGNORE INTO items (name, seed_quantity, soaking_days, germination_days, growth_days, price, substrate, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			it.name, it.seedQuantity, it.soaking, it.germination, it.growth, it.price, it.substrate, now,
		); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}

	return nil
}
