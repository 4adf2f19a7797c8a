package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func equal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func row(id int, cat catalog.Category, qty, price string, enabled bool) catalog.LineItem {
	return catalog.LineItem{
		ID:        id,
		Category:  cat,
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
		Enabled:   enabled,
	}
}

func referenceConfig(t *testing.T) catalog.CostConfig {
	cfg := catalog.DefaultCostConfig()
	cfg.PST = dec(t, "0.07")
	cfg.Waste = dec(t, "0.05")
	cfg.Profit = dec(t, "0.25")
	cfg.GST = dec(t, "0.05")
	cfg.LaborPerSqft = dec(t, "10")
	return cfg
}

func TestCalculate_ReferenceRollup(t *testing.T) {
	items := []catalog.LineItem{
		row(1, catalog.CategoryFraming, "100", "60", true),
		row(2, catalog.CategoryExterior, "2000", "2", true),
		row(201, catalog.CategoryTrades, "1", "2000", true),
	}

	result := Calculate(items, referenceConfig(t), 2000)

	equal(t, "materialTotal", result.Breakdown.MaterialTotal, "10000")
	equal(t, "tradesTotal", result.Breakdown.TradesTotal, "2000")
	equal(t, "tradesWithFee", result.Breakdown.TradesWithFee, "2200")
	equal(t, "pst", result.Breakdown.PST, "700")
	equal(t, "waste", result.Breakdown.Waste, "500")
	equal(t, "profit", result.Breakdown.Profit, "2500")
	equal(t, "buildingCost", result.Breakdown.BuildingCost, "15900")
	equal(t, "labor", result.Breakdown.Labor, "20000")
	equal(t, "totalQuoted", result.Totals.TotalQuoted, "35900")
	equal(t, "gst", result.Breakdown.GST, "1795")
	equal(t, "finalPrice", result.Totals.FinalPrice, "37695")
}

func TestCalculate_DisabledRowsNeverContribute(t *testing.T) {
	enabled := []catalog.LineItem{
		row(1, catalog.CategoryFraming, "10", "5", true),
		row(201, catalog.CategoryTrades, "1", "100", true),
	}
	withDisabled := append([]catalog.LineItem{}, enabled...)
	withDisabled = append(withDisabled,
		row(2, catalog.CategoryFraming, "1000", "1000", false),
		row(202, catalog.CategoryTrades, "1", "99999", false),
	)

	cfg := referenceConfig(t)
	a := Calculate(enabled, cfg, 100)
	b := Calculate(withDisabled, cfg, 100)

	if !a.Breakdown.MaterialTotal.Equal(b.Breakdown.MaterialTotal) {
		t.Fatalf("materialTotal changed: %s vs %s", a.Breakdown.MaterialTotal, b.Breakdown.MaterialTotal)
	}
	if !a.Breakdown.TradesTotal.Equal(b.Breakdown.TradesTotal) {
		t.Fatalf("tradesTotal changed: %s vs %s", a.Breakdown.TradesTotal, b.Breakdown.TradesTotal)
	}
	if !a.Totals.FinalPrice.Equal(b.Totals.FinalPrice) {
		t.Fatalf("finalPrice changed: %s vs %s", a.Totals.FinalPrice, b.Totals.FinalPrice)
	}
}

func TestCalculate_PostAddOnRowsAreFoldedIntoPostPrice(t *testing.T) {
	addOn := row(catalog.IDPostConcrete, catalog.CategoryFoundation, "20", "78.75", true)
	addOn.PostSubKey = catalog.AddOnConcrete

	result := Calculate([]catalog.LineItem{addOn}, referenceConfig(t), 0)

	equal(t, "materialTotal", result.Breakdown.MaterialTotal, "0")
	equal(t, "foundation subtotal", result.Subtotal(catalog.CategoryFoundation), "0")
}

func TestCalculate_CategorySubtotals(t *testing.T) {
	items := []catalog.LineItem{
		row(1, catalog.CategoryFraming, "3", "1.10", true),
		row(2, catalog.CategoryFraming, "2", "0.45", true),
		row(15, catalog.CategoryExterior, "4", "2.5", true),
		row(16, catalog.CategoryExterior, "4", "2.5", false),
	}

	result := Calculate(items, referenceConfig(t), 0)

	equal(t, "framing", result.Subtotal(catalog.CategoryFraming), "4.2")
	equal(t, "exterior", result.Subtotal(catalog.CategoryExterior), "10")
	equal(t, "insulation", result.Subtotal(catalog.CategoryInsulation), "0")
	if len(result.Categories) != len(catalog.Categories) {
		t.Fatalf("expected %d categories, got %d", len(catalog.Categories), len(result.Categories))
	}
}

func TestCalculate_RepeatedSumsDoNotDrift(t *testing.T) {
	items := make([]catalog.LineItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, row(i, catalog.CategoryFraming, "1", "0.1", true))
	}

	result := Calculate(items, referenceConfig(t), 0)

	equal(t, "materialTotal", result.Breakdown.MaterialTotal, "100")
}
