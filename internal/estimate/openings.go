package estimate

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/framequote/internal/catalog"
)

// Openings is the aggregate opening perimeter per class over enabled sized rows.
type Openings map[catalog.OpeningClass]float64

// Perimeter returns the aggregate for a class; an empty class sums every class.
func (o Openings) Perimeter(class catalog.OpeningClass) float64 {
	if class != "" {
		return o[class]
	}
	var total float64
	for _, p := range o {
		total += p
	}
	return total
}

// EntryPerimeter is the framed perimeter contributed by one size entry.
// Windows are framed on four sides; doors and jambs on the head and two legs.
func EntryPerimeter(class catalog.OpeningClass, e catalog.SizeEntry) float64 {
	q := float64(e.Quantity)
	if class == catalog.OpeningWindow {
		return 2 * (e.Width + e.Height) * q
	}
	return (e.Width + 2*e.Height) * q
}

// SanitizeEntries clamps widths and heights to zero and quantities to one.
func SanitizeEntries(entries []catalog.SizeEntry) []catalog.SizeEntry {
	out := make([]catalog.SizeEntry, len(entries))
	for i, e := range entries {
		out[i] = catalog.SizeEntry{
			Width:    clampFloat(e.Width),
			Height:   clampFloat(e.Height),
			Quantity: e.Quantity,
		}
		if out[i].Quantity < 1 {
			out[i].Quantity = 1
		}
	}
	return out
}

func clampFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// applySizing folds a row's size list into its total perimeter and quantity.
// It reports false if the list is empty.
func applySizing(it *catalog.LineItem) bool {
	s := it.Sizing
	var perimeter float64
	count := 0
	for _, e := range s.Entries {
		perimeter += EntryPerimeter(s.Class, e)
		count += e.Quantity
	}
	s.TotalPerimeter = perimeter
	if !it.ManualQuantityOverride {
		it.Quantity = decimal.NewFromInt(int64(count))
	}
	return len(s.Entries) > 0
}

func refreshSizing(items []catalog.LineItem, log logrus.FieldLogger) {
	for i := range items {
		it := &items[i]
		if it.Sizing == nil {
			continue
		}
		it.Sizing.Entries = SanitizeEntries(it.Sizing.Entries)
		if !applySizing(it) {
			log.WithField("item_id", it.ID).Warn("sized opening has an empty size list, using zero perimeter")
		}
	}
}

// AggregateOpenings sums the perimeter of every enabled sized row by class.
func AggregateOpenings(items []catalog.LineItem) Openings {
	o := make(Openings)
	for _, it := range items {
		if it.Sizing == nil || !it.Enabled {
			continue
		}
		o[it.Sizing.Class] += it.Sizing.TotalPerimeter
	}
	return o
}
