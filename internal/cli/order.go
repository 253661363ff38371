// Package cli contains the cobra commands exposing the application services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/microfarm/internal/core/validate"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/wire"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage orders and subscriptions",
	Long:  "Create, list, edit, and delete delivery orders; subscriptions expand into planned future deliveries.",
}

// parseLineFlags turns repeated --item NAME=AMOUNT flags into line inputs.
// Amount validation happens in the service; here only the shape is checked.
func parseLineFlags(raw []string) ([]primary.LineInput, error) {
	lines := make([]primary.LineInput, 0, len(raw))
	for _, pair := range raw {
		name, amount, ok := splitPair(pair)
		if !ok {
			return nil, fmt.Errorf("invalid item %q, use NAME=AMOUNT", pair)
		}
		lines = append(lines, primary.LineInput{ItemName: name, Amount: amount})
	}
	return lines, nil
}

func splitPair(pair string) (name, amount string, ok bool) {
	for i := len(pair) - 1; i >= 0; i-- {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:], pair[:i] != "" && pair[i+1:] != ""
		}
	}
	return "", "", false
}

var orderCreateCmd = &cobra.Command{
	Use:   "create [customer]",
	Short: "Create a new order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delivery, _ := cmd.Flags().GetString("delivery")
		cadence, _ := cmd.Flags().GetInt("cadence")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		halbe, _ := cmd.Flags().GetBool("halbe")
		allowSunday, _ := cmd.Flags().GetBool("allow-sunday")
		items, _ := cmd.Flags().GetStringArray("item")

		if !cmd.Flags().Changed("allow-sunday") {
			allowSunday = wire.Config().AllowSundayProduction
		}

		lines, err := parseLineFlags(items)
		if err != nil {
			return err
		}
		return wire.OrderAdapter().Create(cmd.Context(), primary.CreateOrderRequest{
			CustomerName:          args[0],
			DeliveryDate:          delivery,
			Cadence:               cadence,
			FromDate:              from,
			ToDate:                to,
			HalbeChannel:          halbe,
			AllowSundayProduction: allowSunday,
			Lines:                 lines,
		})
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show [ref]",
	Short: "Show an order with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.OrderAdapter().Show(cmd.Context(), args[0])
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		customer, _ := cmd.Flags().GetString("customer")
		series, _ := cmd.Flags().GetString("series")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		filters := primary.OrderListFilters{CustomerName: customer, SeriesID: series}
		if from != "" {
			d, err := validate.Date(from)
			if err != nil {
				return err
			}
			filters.From = &d
		}
		if to != "" {
			d, err := validate.Date(to)
			if err != nil {
				return err
			}
			filters.To = &d
		}
		return wire.OrderAdapter().List(cmd.Context(), filters)
	},
}

func editScope(cmd *cobra.Command) (primary.EditScope, error) {
	future, _ := cmd.Flags().GetBool("future")
	if future {
		return primary.ScopeThisAndFuture, nil
	}
	return primary.ScopeOnlyThis, nil
}

var orderEditCmd = &cobra.Command{
	Use:   "edit [ref]",
	Short: "Edit an order, optionally including its future deliveries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := editScope(cmd)
		if err != nil {
			return err
		}
		delivery, _ := cmd.Flags().GetString("delivery")
		cadence, _ := cmd.Flags().GetInt("cadence")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		halbe, _ := cmd.Flags().GetBool("halbe")
		items, _ := cmd.Flags().GetStringArray("item")

		lines, err := parseLineFlags(items)
		if err != nil {
			return err
		}
		return wire.OrderAdapter().Edit(cmd.Context(), primary.EditOrderRequest{
			OrderRef:     args[0],
			Scope:        scope,
			DeliveryDate: delivery,
			Cadence:      cadence,
			FromDate:     from,
			ToDate:       to,
			HalbeChannel: halbe,
			Lines:        lines,
		})
	},
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete [ref]",
	Short: "Delete an order, optionally including its future deliveries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := editScope(cmd)
		if err != nil {
			return err
		}
		return wire.OrderAdapter().Delete(cmd.Context(), primary.DeleteOrderRequest{
			OrderRef: args[0],
			Scope:    scope,
		})
	},
}

func init() {
	orderCreateCmd.Flags().StringP("delivery", "d", "", "Delivery date (dd.mm.yyyy)")
	orderCreateCmd.Flags().IntP("cadence", "c", 0, "Subscription cadence (0=none, 1=weekly, 2=biweekly, 3=every 3 weeks, 4=every 4 weeks)")
	orderCreateCmd.Flags().String("from", "", "Subscription window start (dd.mm.yyyy)")
	orderCreateCmd.Flags().String("to", "", "Subscription window end (dd.mm.yyyy)")
	orderCreateCmd.Flags().Bool("halbe", false, "Deliver through the Halbe channel")
	orderCreateCmd.Flags().Bool("allow-sunday", false, "Keep production dates that land on Sunday")
	orderCreateCmd.Flags().StringArrayP("item", "i", nil, "Line item as NAME=AMOUNT (repeatable)")

	orderListCmd.Flags().String("customer", "", "Filter by customer name")
	orderListCmd.Flags().String("series", "", "Filter by series id")
	orderListCmd.Flags().String("from", "", "Earliest delivery date")
	orderListCmd.Flags().String("to", "", "Latest delivery date")

	orderEditCmd.Flags().Bool("future", false, "Apply to this and all future deliveries")
	orderEditCmd.Flags().StringP("delivery", "d", "", "Delivery date (dd.mm.yyyy)")
	orderEditCmd.Flags().IntP("cadence", "c", 0, "Subscription cadence")
	orderEditCmd.Flags().String("from", "", "Subscription window start")
	orderEditCmd.Flags().String("to", "", "Subscription window end")
	orderEditCmd.Flags().Bool("halbe", false, "Deliver through the Halbe channel")
	orderEditCmd.Flags().StringArrayP("item", "i", nil, "Replacement line item as NAME=AMOUNT (repeatable)")

	orderDeleteCmd.Flags().Bool("future", false, "Delete this and all future deliveries")

	orderCmd.AddCommand(orderCreateCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderEditCmd)
	orderCmd.AddCommand(orderDeleteCmd)
}

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	return orderCmd
}
