package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CostConfig holds the percentage, flat-rate and multiplier parameters of an
// estimate. Percentages are fractions (0.07 means 7%).
type CostConfig struct {
	Management     decimal.Decimal `json:"management"`
	PST            decimal.Decimal `json:"pst"`
	Waste          decimal.Decimal `json:"waste"`
	Profit         decimal.Decimal `json:"profit"`
	GST            decimal.Decimal `json:"gst"`
	LaborPerSqft   decimal.Decimal `json:"laborPerSqft"`
	ToolExpense    decimal.Decimal `json:"toolExpense"`
	Drafting       decimal.Decimal `json:"drafting"`
	StudSpacing    float64         `json:"studSpacing"`
	TopPlates      float64         `json:"topPlates"`
	ExtraTopPlates float64         `json:"extraTopPlates"`
	PostSpacing    float64         `json:"postSpacing"`
}

// DefaultCostConfig returns the standard shop rates.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		Management:     decimal.RequireFromString("0.07"),
		PST:            decimal.RequireFromString("0.07"),
		Waste:          decimal.RequireFromString("0.05"),
		Profit:         decimal.RequireFromString("0.25"),
		GST:            decimal.RequireFromString("0.05"),
		LaborPerSqft:   decimal.NewFromInt(10),
		ToolExpense:    decimal.NewFromInt(2000),
		Drafting:       decimal.NewFromInt(250),
		StudSpacing:    16,
		TopPlates:      2,
		ExtraTopPlates: 1,
		PostSpacing:    8,
	}
}

var one = decimal.NewFromInt(1)

// Validate rejects negative rates, fractions above 1 and non-positive spacings.
func (c CostConfig) Validate() error {
	var errs []error
	fractions := []struct {
		name string
		v    decimal.Decimal
	}{
		{"management", c.Management},
		{"pst", c.PST},
		{"waste", c.Waste},
		{"profit", c.Profit},
		{"gst", c.GST},
	}
	for _, f := range fractions {
		if f.v.IsNegative() || f.v.GreaterThan(one) {
			errs = append(errs, fmt.Errorf("%s must be a fraction between 0 and 1", f.name))
		}
	}
	flats := []struct {
		name string
		v    decimal.Decimal
	}{
		{"laborPerSqft", c.LaborPerSqft},
		{"toolExpense", c.ToolExpense},
		{"drafting", c.Drafting},
	}
	for _, f := range flats {
		if f.v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must be greater than or equal to 0", f.name))
		}
	}
	if !(c.StudSpacing > 0) {
		errs = append(errs, errors.New("studSpacing must be greater than 0"))
	}
	if !(c.PostSpacing > 0) {
		errs = append(errs, errors.New("postSpacing must be greater than 0"))
	}
	if !(c.TopPlates >= 0) || !(c.ExtraTopPlates >= 0) {
		errs = append(errs, errors.New("plate multipliers must be greater than or equal to 0"))
	}
	return errors.Join(errs...)
}
