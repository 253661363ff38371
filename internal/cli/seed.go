package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/example/microfarm/internal/config"
	"github.com/example/microfarm/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter customers and items into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(dir)
		if err != nil {
			return err
		}
		database, err := db.GetDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		if err := db.SeedFixtures(database); err != nil {
			return fmt.Errorf("failed to seed fixtures: %w", err)
		}
		fmt.Println("✓ Seeded starter customers and items")
		return nil
	},
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return seedCmd
}
