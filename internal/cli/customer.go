package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/microfarm/internal/wire"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CustomerAdapter().Create(cmd.Context(), args[0])
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers with their order counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CustomerAdapter().List(cmd.Context())
	},
}

var customerRenameCmd = &cobra.Command{
	Use:   "rename [name] [new-name]",
	Short: "Rename a customer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CustomerAdapter().Rename(cmd.Context(), args[0], args[1])
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a customer without orders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CustomerAdapter().Delete(cmd.Context(), args[0])
	},
}

func init() {
	customerCmd.AddCommand(customerCreateCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerRenameCmd)
	customerCmd.AddCommand(customerDeleteCmd)
}

// CustomerCmd returns the customer command
func CustomerCmd() *cobra.Command {
	return customerCmd
}
