// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/microfarm/internal/ports/primary"
)

// OrderAdapter is a thin adapter that translates CLI operations to
// OrderService calls.
type OrderAdapter struct {
	service primary.OrderService
	out     io.Writer
}

// NewOrderAdapter creates a new OrderAdapter with the given service.
func NewOrderAdapter(service primary.OrderService, out io.Writer) *OrderAdapter {
	return &OrderAdapter{service: service, out: out}
}

// Create creates a new order and prints the expansion summary.
func (a *OrderAdapter) Create(ctx context.Context, req primary.CreateOrderRequest) error {
	resp, err := a.service.CreateOrder(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created order %s for %s, delivery %s\n",
		resp.Order.Ref, resp.Order.Customer, resp.Order.DeliveryDate.Format("02.01.2006"))
	if resp.FutureCount > 0 {
		fmt.Fprintf(a.out, "  %s: %d future deliveries until %s\n",
			resp.Order.CadenceLabel, resp.FutureCount, resp.Order.ToDate.Format("02.01.2006"))
	}
	fmt.Fprintf(a.out, "  Production starts %s\n", resp.Order.ProductionDate.Format("02.01.2006"))
	return nil
}

// Show prints one order with its line items.
func (a *OrderAdapter) Show(ctx context.Context, orderRef string) error {
	order, err := a.service.GetOrder(ctx, orderRef)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s%s\n", order.Ref, order.Customer, futureMarker(order.IsFuture))
	fmt.Fprintf(a.out, "  Delivery:   %s\n", order.DeliveryDate.Format("02.01.2006"))
	fmt.Fprintf(a.out, "  Production: %s\n", order.ProductionDate.Format("02.01.2006"))
	if order.Cadence != 0 && order.FromDate != nil && order.ToDate != nil {
		fmt.Fprintf(a.out, "  %s from %s to %s\n",
			order.CadenceLabel, order.FromDate.Format("02.01.2006"), order.ToDate.Format("02.01.2006"))
	}
	if order.HalbeChannel {
		fmt.Fprintln(a.out, "  Halbe channel")
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ITEM\tAMOUNT\tPRODUCTION\tTRANSFER")
	for _, line := range order.Lines {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			line.ItemName, line.Amount,
			line.ProductionDate.Format("02.01.2006"), line.TransferDate.Format("02.01.2006"))
	}
	w.Flush()
	fmt.Fprintf(a.out, "  Total: %s €\n", order.Total.StringFixed(2))
	return nil
}

// List prints orders matching the filters, one line each.
func (a *OrderAdapter) List(ctx context.Context, filters primary.OrderListFilters) error {
	orders, err := a.service.ListOrders(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REF\tDELIVERY\tCUSTOMER\tSUBSCRIPTION\tTOTAL")
	for _, order := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\t%s €\n",
			order.Ref, order.DeliveryDate.Format("02.01.2006"), order.Customer,
			order.CadenceLabel, futureMarker(order.IsFuture), order.Total.StringFixed(2))
	}
	return w.Flush()
}

// Edit applies a scoped edit and prints what it did.
func (a *OrderAdapter) Edit(ctx context.Context, req primary.EditOrderRequest) error {
	resp, err := a.service.EditOrder(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Updated order %s\n", resp.Order.Ref)
	if resp.Detached {
		fmt.Fprintln(a.out, "  Order left its subscription series")
	}
	if resp.Deleted > 0 || resp.Created > 0 {
		fmt.Fprintf(a.out, "  Future deliveries: %d replaced, %d scheduled\n", resp.Deleted, resp.Created)
	}
	return nil
}

// Delete removes an order with the given scope and prints the count.
func (a *OrderAdapter) Delete(ctx context.Context, req primary.DeleteOrderRequest) error {
	resp, err := a.service.DeleteOrder(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted %d order(s)\n", resp.Deleted)
	return nil
}

func futureMarker(isFuture bool) string {
	if !isFuture {
		return ""
	}
	return color.New(color.FgCyan).Sprint(" [planned]")
}
