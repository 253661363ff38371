package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/microfarm/internal/ports/primary"
)

// ItemAdapter is a thin adapter that translates CLI operations to
// ItemService calls.
type ItemAdapter struct {
	service primary.ItemService
	out     io.Writer
}

// NewItemAdapter creates a new ItemAdapter with the given service.
func NewItemAdapter(service primary.ItemService, out io.Writer) *ItemAdapter {
	return &ItemAdapter{service: service, out: out}
}

// Create creates a new item.
func (a *ItemAdapter) Create(ctx context.Context, req primary.ItemRequest) error {
	item, err := a.service.CreateItem(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created item %s (%d days to harvest)\n", item.Name, item.TotalDays)
	return nil
}

// List prints all items with their growth parameters.
func (a *ItemAdapter) List(ctx context.Context) error {
	items, err := a.service.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSEED\tSOAK\tGERMINATION\tGROWTH\tPRICE\tSUBSTRATE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s g\t%dd\t%dd\t%dd\t%s €\t%s\n",
			item.Name, item.SeedQuantity, item.SoakingDays,
			item.GerminationDays, item.GrowthDays, item.Price.StringFixed(2), item.Substrate)
	}
	return w.Flush()
}

// Update replaces an item's fields.
func (a *ItemAdapter) Update(ctx context.Context, name string, req primary.ItemRequest) error {
	item, err := a.service.UpdateItem(ctx, name, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Updated item %s\n", item.Name)
	return nil
}

// Delete removes an item.
func (a *ItemAdapter) Delete(ctx context.Context, name string) error {
	if err := a.service.DeleteItem(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted item %s\n", name)
	return nil
}
