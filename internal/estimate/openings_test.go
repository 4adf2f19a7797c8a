package estimate

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/geometry"
)

func TestEntryPerimeter_ByClass(t *testing.T) {
	e := catalog.SizeEntry{Width: 3, Height: 7, Quantity: 2}

	if got := EntryPerimeter(catalog.OpeningWindow, e); got != 40 {
		t.Fatalf("window perimeter = %v, want 40", got)
	}
	if got := EntryPerimeter(catalog.OpeningDoor, e); got != 34 {
		t.Fatalf("door perimeter = %v, want 34", got)
	}
}

func TestSetSizes_FoldsEntriesIntoQuantityAndHeaders(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s := referenceState(t, eng)

	s = mustApply(t, eng, s, SetSizes{ItemID: catalog.IDWindows, Sizes: []catalog.SizeEntry{
		{Width: 4, Height: 4, Quantity: 3},
		{Width: 6, Height: 3, Quantity: 2},
	}})

	windows := itemOf(t, s, catalog.IDWindows)
	if windows.Quantity.IntPart() != 5 {
		t.Fatalf("window quantity = %s, want 5", windows.Quantity)
	}
	// 2*(4+4)*3 + 2*(6+3)*2
	if windows.Sizing.TotalPerimeter != 84 {
		t.Fatalf("window perimeter = %v, want 84", windows.Sizing.TotalPerimeter)
	}
	// (84 + 17 + 36) / 16
	if got := qtyOf(t, s, catalog.IDHeaders); got != 9 {
		t.Fatalf("headers = %d, want 9", got)
	}
}

func TestSetSizes_SanitizesEntries(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s := referenceState(t, eng)

	s = mustApply(t, eng, s, SetSizes{ItemID: catalog.IDManDoors, Sizes: []catalog.SizeEntry{
		{Width: -3, Height: math.NaN(), Quantity: 0},
	}})

	doors := itemOf(t, s, catalog.IDManDoors)
	got := doors.Sizing.Entries[0]
	if got.Width != 0 || got.Height != 0 || got.Quantity != 1 {
		t.Fatalf("entry not sanitized: %+v", got)
	}
	if doors.Quantity.IntPart() != 1 || doors.Sizing.TotalPerimeter != 0 {
		t.Fatalf("unexpected door row %+v", doors)
	}
}

func TestSetSizes_EmptyListIsZeroNotFatal(t *testing.T) {
	eng, _, hook := newTestEngine(t)
	s := referenceState(t, eng)

	s = mustApply(t, eng, s, SetSizes{ItemID: catalog.IDWindows, Sizes: nil})

	windows := itemOf(t, s, catalog.IDWindows)
	if !windows.Quantity.IsZero() || windows.Sizing.TotalPerimeter != 0 {
		t.Fatalf("expected zero quantity and perimeter, got %+v", windows)
	}
	if !hasWarning(hook, catalog.IDWindows) {
		t.Fatalf("expected a warning for the empty size list")
	}
	// Totals for the rest of the catalog are unaffected.
	if s.Rollup().Breakdown.MaterialTotal.IsZero() {
		t.Fatalf("material total should still be computed")
	}
}

func TestSetSizes_RejectsUnsizedRows(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s := referenceState(t, eng)

	if _, err := eng.Apply(context.Background(), s, SetSizes{ItemID: 14, Sizes: []catalog.SizeEntry{{Width: 1, Height: 1, Quantity: 1}}}); err == nil {
		t.Fatalf("expected ErrNotSizable")
	}
}

func TestAggregateOpenings_SkipsDisabledRows(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s := referenceState(t, eng)

	s = mustApply(t, eng, s, ToggleItem{ItemID: catalog.IDOverheadDoors})

	o := AggregateOpenings(s.Items)
	if o.Perimeter(catalog.OpeningDoor) != 17 {
		t.Fatalf("door perimeter = %v, want 17", o.Perimeter(catalog.OpeningDoor))
	}
	if o.Perimeter("") != 45 {
		t.Fatalf("all perimeter = %v, want 45", o.Perimeter(""))
	}
}

func TestRecompute_SizedRowKeepsManualQuantity(t *testing.T) {
	logger, _ := test.NewNullLogger()
	items := []catalog.LineItem{{
		ID:                     catalog.IDWindows,
		Category:               catalog.CategoryOpenings,
		Enabled:                true,
		Quantity:               decimal.NewFromInt(9),
		ManualQuantityOverride: true,
		Sizing: &catalog.Sizing{Class: catalog.OpeningWindow, Entries: []catalog.SizeEntry{
			{Width: 2, Height: 2, Quantity: 1},
		}},
	}}
	in := NewInputs(geometry.Dimensions{}, geometry.Roof{}, catalog.DefaultCostConfig(), catalog.DefaultFrameConfig())

	out := Recompute(items, in, logger)

	if out[0].Quantity.IntPart() != 9 {
		t.Fatalf("manual quantity replaced by size count: %s", out[0].Quantity)
	}
	if out[0].Sizing.TotalPerimeter != 8 {
		t.Fatalf("perimeter = %v, want 8", out[0].Sizing.TotalPerimeter)
	}
	if items[0].Sizing.TotalPerimeter != 0 {
		t.Fatalf("Recompute mutated its input")
	}
}

func hasWarning(hook *test.Hook, id int) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["item_id"] == id {
			return true
		}
	}
	return false
}
