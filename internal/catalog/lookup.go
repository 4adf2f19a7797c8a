package catalog

import "github.com/shopspring/decimal"

// postSetback is the extra post length, in feet, buried below grade and
// above the eave.
const postSetback = 6

var postBaseRates = map[PostSize]decimal.Decimal{
	Post2Ply: decimal.RequireFromString("4.85"),
	Post3Ply: decimal.RequireFromString("7.25"),
	Post4Ply: decimal.RequireFromString("9.65"),
}

var postAddOnPrices = map[PostSubKey]map[PostDiameter]decimal.Decimal{
	AddOnShipment: {
		Diameter12: decimal.RequireFromString("15.00"),
		Diameter18: decimal.RequireFromString("22.00"),
		Diameter24: decimal.RequireFromString("30.00"),
	},
	AddOnReadyMix: {
		Diameter12: decimal.RequireFromString("28.50"),
		Diameter18: decimal.RequireFromString("42.75"),
		Diameter24: decimal.RequireFromString("64.00"),
	},
	AddOnConcrete: {
		Diameter12: decimal.RequireFromString("35.00"),
		Diameter18: decimal.RequireFromString("78.75"),
		Diameter24: decimal.RequireFromString("140.00"),
	},
	AddOnLimestone: {
		Diameter12: decimal.RequireFromString("6.50"),
		Diameter18: decimal.RequireFromString("12.25"),
		Diameter24: decimal.RequireFromString("21.00"),
	},
}

// PostBaseRate is the per-foot price of a laminated post of the given size.
// Unknown sizes price at zero.
func PostBaseRate(size PostSize) decimal.Decimal {
	return postBaseRates[size]
}

// PostLength is the purchased post length for a wall height.
func PostLength(height float64) decimal.Decimal {
	return decimal.NewFromFloat(height).Add(decimal.NewFromInt(postSetback))
}

// PostAddOnPrice is the per-post price of a foundation add-on at a diameter.
func PostAddOnPrice(key PostSubKey, diameter PostDiameter) decimal.Decimal {
	return postAddOnPrices[key][diameter]
}
