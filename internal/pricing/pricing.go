package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
)

// TradesFeeRate is the fixed coordination fee applied to trade costs.
var TradesFeeRate = decimal.RequireFromString("0.10")

// Breakdown contains all intermediate and line-item values of the rollup.
type Breakdown struct {
	MaterialTotal decimal.Decimal `json:"materialTotal"`
	TradesTotal   decimal.Decimal `json:"tradesTotal"`
	TradesWithFee decimal.Decimal `json:"tradesWithFee"`
	PST           decimal.Decimal `json:"pst"`
	Waste         decimal.Decimal `json:"waste"`
	Profit        decimal.Decimal `json:"profit"`
	BuildingCost  decimal.Decimal `json:"buildingCost"`
	Labor         decimal.Decimal `json:"labor"`
	GST           decimal.Decimal `json:"gst"`
}

// Totals contains roll-up values from the pricing calculation.
type Totals struct {
	TotalQuoted decimal.Decimal `json:"totalQuoted"`
	FinalPrice  decimal.Decimal `json:"finalPrice"`
}

// CategoryTotal is the subtotal of enabled rows in one category.
type CategoryTotal struct {
	Category catalog.Category `json:"category"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// Result groups the full pricing output, including detailed breakdown and totals.
type Result struct {
	Breakdown  Breakdown       `json:"breakdown"`
	Totals     Totals          `json:"totals"`
	Categories []CategoryTotal `json:"categories"`
}

// Counts reports whether a row contributes to the rollup. Post add-on rows
// are priced through the structural post and never count on their own.
func Counts(it catalog.LineItem) bool {
	return it.Enabled && it.PostSubKey == ""
}

// Calculate rolls the given rows up into materials, trades, taxes, labor and
// the final price. Callers pass the visible projection of the catalog. No
// rounding happens here.
func Calculate(items []catalog.LineItem, cost catalog.CostConfig, floorArea float64) Result {
	materialTotal := decimal.Zero
	tradesTotal := decimal.Zero
	byCategory := make(map[catalog.Category]decimal.Decimal)

	for _, it := range items {
		if !Counts(it) {
			continue
		}
		line := it.LineTotal()
		byCategory[it.Category] = byCategory[it.Category].Add(line)
		if it.Category.IsTrades() {
			tradesTotal = tradesTotal.Add(line)
		} else {
			materialTotal = materialTotal.Add(line)
		}
	}

	tradesWithFee := tradesTotal.Mul(decimal.NewFromInt(1).Add(TradesFeeRate))
	pst := materialTotal.Mul(cost.PST)
	waste := materialTotal.Mul(cost.Waste)
	profit := materialTotal.Mul(cost.Profit)
	buildingCost := materialTotal.Add(tradesWithFee).Add(pst).Add(waste).Add(profit)

	labor := decimal.NewFromFloat(floorArea).Mul(cost.LaborPerSqft)
	totalQuoted := buildingCost.Add(labor)
	gst := totalQuoted.Mul(cost.GST)

	categories := make([]CategoryTotal, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		categories = append(categories, CategoryTotal{Category: c, Subtotal: byCategory[c]})
	}

	return Result{
		Breakdown: Breakdown{
			MaterialTotal: materialTotal,
			TradesTotal:   tradesTotal,
			TradesWithFee: tradesWithFee,
			PST:           pst,
			Waste:         waste,
			Profit:        profit,
			BuildingCost:  buildingCost,
			Labor:         labor,
			GST:           gst,
		},
		Totals: Totals{
			TotalQuoted: totalQuoted,
			FinalPrice:  totalQuoted.Add(gst),
		},
		Categories: categories,
	}
}

// Subtotal returns the category subtotal from a result.
func (r Result) Subtotal(c catalog.Category) decimal.Decimal {
	for _, ct := range r.Categories {
		if ct.Category == c {
			return ct.Subtotal
		}
	}
	return decimal.Zero
}
