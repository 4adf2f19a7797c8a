package estimate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
)

// promotable reports whether a row's price may live in the shared default
// table. Custom rows have project-local ids; the post row and its add-ons
// are priced from the post configuration.
func promotable(it catalog.LineItem) bool {
	return it.ID != catalog.IDPosts && it.PostSubKey == "" && catalog.IsSeeded(it.ID)
}

// CurrentDefault is the promoted default for the row, or its base price.
func CurrentDefault(it catalog.LineItem, defaults map[int]decimal.Decimal) decimal.Decimal {
	if promotable(it) {
		if p, ok := defaults[it.ID]; ok {
			return p
		}
	}
	return it.BaseUnitPrice
}

func resolvePrice(it *catalog.LineItem, defaults map[int]decimal.Decimal) {
	it.UnitPrice = CurrentDefault(*it, defaults)
	it.ManualPriceOverride = false
}

// Materialize builds a fresh catalog: prices resolved from the default table
// and no pending overrides.
func Materialize(frame catalog.FrameConfig, defaults map[int]decimal.Decimal) []catalog.LineItem {
	items := catalog.Seed(frame)
	for i := range items {
		resolvePrice(&items[i], defaults)
	}
	return items
}

// regenerateFrameRows replaces the rows whose identity depends on the frame
// configuration with fresh ones and reprices every other row from the
// default table. Removed frame rows are added back at the end. Enabled and
// quantity state of the remaining rows is kept.
func regenerateFrameRows(items []catalog.LineItem, frame catalog.FrameConfig, defaults map[int]decimal.Decimal) []catalog.LineItem {
	for i := range items {
		if !catalog.IsFrameRow(items[i].ID) {
			resolvePrice(&items[i], defaults)
		}
	}
	for _, id := range catalog.FrameRows() {
		fresh, ok := catalog.SeedRow(id, frame)
		if !ok {
			continue
		}
		resolvePrice(&fresh, defaults)
		if i := catalog.Find(items, id); i >= 0 {
			items[i] = fresh
		} else {
			items = append(items, fresh)
		}
	}
	return items
}

func setUnitPrice(it *catalog.LineItem, price decimal.Decimal, defaults map[int]decimal.Decimal) {
	if price.IsNegative() {
		price = decimal.Zero
	}
	it.UnitPrice = price
	it.ManualPriceOverride = !price.Equal(CurrentDefault(*it, defaults))
}

func checkPromotable(it catalog.LineItem) error {
	if it.ID == catalog.IDPosts {
		return fmt.Errorf("%w: item %d is priced from post size and foundation add-ons", ErrNotPromotable, it.ID)
	}
	if it.PostSubKey != "" {
		return fmt.Errorf("%w: item %d is priced from post diameter", ErrNotPromotable, it.ID)
	}
	if !promotable(it) {
		return fmt.Errorf("%w: item %d is not part of the catalog", ErrNotPromotable, it.ID)
	}
	return nil
}
