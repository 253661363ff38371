package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/microfarm/internal/core/undo"
	"github.com/example/microfarm/internal/core/validate"
	"github.com/example/microfarm/internal/ports/primary"
	"github.com/example/microfarm/internal/ports/secondary"
)

// ItemServiceImpl implements the ItemService interface.
type ItemServiceImpl struct {
	items   secondary.ItemRepository
	tx      secondary.TxRunner
	session *Session
}

// NewItemService creates a new ItemService with injected dependencies.
func NewItemService(items secondary.ItemRepository, tx secondary.TxRunner, session *Session) *ItemServiceImpl {
	return &ItemServiceImpl{items: items, tx: tx, session: session}
}

// validateItem runs the single validation pass over an item form and
// returns the parsed decimal fields.
func validateItem(req primary.ItemRequest) (seedQuantity, price decimal.Decimal, err error) {
	var errs validate.Errors

	if req.Name == "" {
		errs.Add("name", "item name must not be empty")
	}
	seedQuantity, sqErr := validate.Amount(req.SeedQuantity, req.Name)
	if sqErr != nil {
		errs.Add("seed_quantity", "%v", sqErr)
	}
	price, pErr := validate.Price(req.Price)
	if pErr != nil {
		errs.Add("price", "%v", pErr)
	}
	if req.SoakingDays < 0 {
		errs.Add("soaking_days", "must not be negative")
	}
	if req.GerminationDays < 0 {
		errs.Add("germination_days", "must not be negative")
	}
	if req.GrowthDays < 0 {
		errs.Add("growth_days", "must not be negative")
	}

	return seedQuantity, price, errs.Err()
}

// CreateItem creates a new item with a unique name.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, req primary.ItemRequest) (*primary.Item, error) {
	seedQuantity, price, err := validateItem(req)
	if err != nil {
		return nil, err
	}

	record := &secondary.ItemRecord{
		Name:            req.Name,
		SeedQuantity:    seedQuantity.String(),
		SoakingDays:     req.SoakingDays,
		GerminationDays: req.GerminationDays,
		GrowthDays:      req.GrowthDays,
		Price:           price.String(),
		Substrate:       req.Substrate,
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.items.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionCreateItem,
		After:       &undo.State{Item: snapshotItem(record)},
		Description: fmt.Sprintf("create item %s", record.Name),
	})
	s.session.DataChanged()

	return toItem(record), nil
}

// GetItem retrieves an item by name.
func (s *ItemServiceImpl) GetItem(ctx context.Context, name string) (*primary.Item, error) {
	record, err := s.items.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toItem(record), nil
}

// ListItems lists all items ordered by name.
func (s *ItemServiceImpl) ListItems(ctx context.Context) ([]*primary.Item, error) {
	records, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*primary.Item, 0, len(records))
	for _, record := range records {
		out = append(out, toItem(record))
	}
	return out, nil
}

// UpdateItem replaces an item's fields. Stored line items keep their
// derived dates; only future edits see the new growth parameters.
func (s *ItemServiceImpl) UpdateItem(ctx context.Context, name string, req primary.ItemRequest) (*primary.Item, error) {
	seedQuantity, price, err := validateItem(req)
	if err != nil {
		return nil, err
	}

	record, err := s.items.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	before := snapshotItem(record)

	record.Name = req.Name
	record.SeedQuantity = seedQuantity.String()
	record.SoakingDays = req.SoakingDays
	record.GerminationDays = req.GerminationDays
	record.GrowthDays = req.GrowthDays
	record.Price = price.String()
	record.Substrate = req.Substrate

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.items.Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionEditItem,
		Before:      &undo.State{Item: before},
		After:       &undo.State{Item: snapshotItem(record)},
		Description: fmt.Sprintf("edit item %s", name),
	})
	s.session.DataChanged()

	return toItem(record), nil
}

// DeleteItem removes an item, cascading through order line items.
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, name string) error {
	record, err := s.items.GetByName(ctx, name)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.items.Delete(ctx, record.ID)
	})
	if err != nil {
		return err
	}

	s.session.Record(undo.Action{
		Type:        undo.ActionDeleteItem,
		Before:      &undo.State{Item: snapshotItem(record)},
		Description: fmt.Sprintf("delete item %s", name),
	})
	s.session.DataChanged()
	return nil
}

func snapshotItem(record *secondary.ItemRecord) *undo.ItemSnapshot {
	return &undo.ItemSnapshot{
		Name:            record.Name,
		SeedQuantity:    record.SeedQuantity,
		SoakingDays:     record.SoakingDays,
		GerminationDays: record.GerminationDays,
		GrowthDays:      record.GrowthDays,
		Price:           record.Price,
		Substrate:       record.Substrate,
	}
}

func toItem(record *secondary.ItemRecord) *primary.Item {
	seedQuantity, _ := decimal.NewFromString(record.SeedQuantity)
	price, _ := decimal.NewFromString(record.Price)
	return &primary.Item{
		Name:            record.Name,
		SeedQuantity:    seedQuantity,
		SoakingDays:     record.SoakingDays,
		GerminationDays: record.GerminationDays,
		GrowthDays:      record.GrowthDays,
		TotalDays:       record.TotalDays(),
		Price:           price,
		Substrate:       record.Substrate,
	}
}
