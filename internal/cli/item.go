package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/wire"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage microgreen items and their growth parameters",
}

func itemRequestFromFlags(cmd *cobra.Command, name string) primary.ItemRequest {
	seed, _ := cmd.Flags().GetString("seed")
	soak, _ := cmd.Flags().GetInt("soak")
	germination, _ := cmd.Flags().GetInt("germination")
	growth, _ := cmd.Flags().GetInt("growth")
	price, _ := cmd.Flags().GetString("price")
	substrate, _ := cmd.Flags().GetString("substrate")

	return primary.ItemRequest{
		Name:            name,
		SeedQuantity:    seed,
		SoakingDays:     soak,
		GerminationDays: germination,
		GrowthDays:      growth,
		Price:           price,
		Substrate:       substrate,
	}
}

var itemCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ItemAdapter().Create(cmd.Context(), itemRequestFromFlags(cmd, args[0]))
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ItemAdapter().List(cmd.Context())
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update an item's parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newName, _ := cmd.Flags().GetString("rename")
		if newName == "" {
			newName = args[0]
		}
		return wire.ItemAdapter().Update(cmd.Context(), args[0], itemRequestFromFlags(cmd, newName))
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ItemAdapter().Delete(cmd.Context(), args[0])
	},
}

func registerItemFlags(cmd *cobra.Command) {
	cmd.Flags().String("seed", "", "Seed quantity in grams per unit")
	cmd.Flags().Int("soak", 0, "Soaking days before sowing")
	cmd.Flags().Int("germination", 0, "Germination days in the dark")
	cmd.Flags().Int("growth", 0, "Growth days on the substrate")
	cmd.Flags().String("price", "0", "Price per unit")
	cmd.Flags().String("substrate", "", "Growth substrate")
}

func init() {
	registerItemFlags(itemCreateCmd)
	registerItemFlags(itemUpdateCmd)
	itemUpdateCmd.Flags().String("rename", "", "New item name")

	itemCmd.AddCommand(itemCreateCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemDeleteCmd)
}

// ItemCmd returns the item command
func ItemCmd() *cobra.Command {
	return itemCmd
}
