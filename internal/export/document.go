// Package export renders an estimate as a plain-text quote, a PDF or an XLSX
// workbook. Amounts are rounded to cents here and nowhere else.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/pricing"
)

// Line is one priced row of the quote.
type Line struct {
	ID        int
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Section groups the lines of one category.
type Section struct {
	Category catalog.Category
	Label    string
	Lines    []Line
	Subtotal decimal.Decimal
}

// Row is a labelled value in the building summary, the rollup or the
// assumptions block.
type Row struct {
	Label string
	Value string
}

// Document is the render-independent content of a quote.
type Document struct {
	Name        string
	Building    []Row
	Sections    []Section
	Rollup      []Row
	FinalPrice  decimal.Decimal
	Assumptions []Row
}

// Build collects the visible enabled rows of s grouped by category, with the
// full rollup.
func Build(s estimate.State) Document {
	result := s.Rollup()
	doc := Document{
		Name:       s.Name,
		Building:   building(s),
		Rollup:     rollup(result, s.Cost),
		FinalPrice: result.Totals.FinalPrice,
		Assumptions: []Row{
			{Label: "Management", Value: percent(s.Cost.Management)},
			{Label: "Tool expense", Value: Money(s.Cost.ToolExpense)},
			{Label: "Drafting", Value: Money(s.Cost.Drafting)},
			{Label: "Stud spacing", Value: fmt.Sprintf("%g in", s.Cost.StudSpacing)},
		},
	}
	if s.Frame.FrameType == catalog.FramePost {
		doc.Assumptions[3] = Row{Label: "Post spacing", Value: fmt.Sprintf("%g ft", s.Cost.PostSpacing)}
	}

	byCategory := make(map[catalog.Category][]Line)
	for _, it := range s.VisibleItems() {
		if !pricing.Counts(it) {
			continue
		}
		byCategory[it.Category] = append(byCategory[it.Category], Line{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.LineTotal(),
		})
	}
	for _, c := range catalog.Categories {
		lines := byCategory[c]
		if len(lines) == 0 {
			continue
		}
		doc.Sections = append(doc.Sections, Section{
			Category: c,
			Label:    c.Label(),
			Lines:    lines,
			Subtotal: result.Subtotal(c),
		})
	}
	return doc
}

func building(s estimate.State) []Row {
	g := s.Geometry()
	frame := fmt.Sprintf("Stud frame, %s", s.Frame.StudSize)
	if s.Frame.FrameType == catalog.FramePost {
		frame = fmt.Sprintf("Post frame, %s posts, %s footings", s.Frame.PostSize, s.Frame.PostDiameter)
	}
	return []Row{
		{Label: "Dimensions", Value: fmt.Sprintf("%g x %g ft, %g ft walls", s.Dimensions.Width, s.Dimensions.Length, s.Dimensions.Height)},
		{Label: "Roof pitch", Value: fmt.Sprintf("%g/%g, %g in overhang", s.Roof.PitchRise, s.Roof.PitchRun, s.Roof.Overhang)},
		{Label: "Frame", Value: frame},
		{Label: "Floor area", Value: sqft(g.FloorArea)},
		{Label: "Wall area", Value: sqft(g.WallArea)},
		{Label: "Roof area", Value: sqft(g.RoofArea)},
		{Label: "Gable area", Value: sqft(g.GableArea)},
	}
}

func rollup(r pricing.Result, cost catalog.CostConfig) []Row {
	b := r.Breakdown
	return []Row{
		{Label: "Materials", Value: Money(b.MaterialTotal)},
		{Label: "Trades", Value: Money(b.TradesTotal)},
		{Label: "Trades incl. " + percent(pricing.TradesFeeRate) + " fee", Value: Money(b.TradesWithFee)},
		{Label: "PST " + percent(cost.PST), Value: Money(b.PST)},
		{Label: "Waste " + percent(cost.Waste), Value: Money(b.Waste)},
		{Label: "Profit " + percent(cost.Profit), Value: Money(b.Profit)},
		{Label: "Building cost", Value: Money(b.BuildingCost)},
		{Label: "Labor " + Money(cost.LaborPerSqft) + "/sq ft", Value: Money(b.Labor)},
		{Label: "Total quoted", Value: Money(r.Totals.TotalQuoted)},
		{Label: "GST " + percent(cost.GST), Value: Money(b.GST)},
	}
}

// Money formats d as dollars with thousands separators, rounded to cents.
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// Quantity formats a quantity with at most two decimals.
func Quantity(d decimal.Decimal) string {
	return d.Round(2).String()
}

func percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

func sqft(v float64) string {
	return fmt.Sprintf("%.0f sq ft", math.Ceil(v))
}
