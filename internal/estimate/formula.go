package estimate

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/geometry"
)

// ceilTolerance keeps float noise on exact products from rounding up a unit.
const ceilTolerance = 1e-9

// Inputs is the read-only context of one recompute pass.
type Inputs struct {
	Dimensions geometry.Dimensions
	Geometry   geometry.Geometry
	Cost       catalog.CostConfig
	Frame      catalog.FrameConfig
}

// NewInputs sanitizes dimensions and roof and derives the geometry.
func NewInputs(dims geometry.Dimensions, roof geometry.Roof, cost catalog.CostConfig, frame catalog.FrameConfig) Inputs {
	dims = dims.Sanitize()
	return Inputs{
		Dimensions: dims,
		Geometry:   geometry.Calculate(dims, roof),
		Cost:       cost,
		Frame:      frame,
	}
}

func ceil(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := math.Ceil(v - ceilTolerance)
	if r < 0 {
		return 0
	}
	return r
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func (in Inputs) basis(b catalog.Basis) float64 {
	g := in.Geometry
	switch b {
	case catalog.BasisPerimeter:
		return g.Perimeter
	case catalog.BasisFloorArea:
		return g.FloorArea
	case catalog.BasisWallArea:
		return g.WallArea
	case catalog.BasisRoofArea:
		return g.RoofArea
	case catalog.BasisWallAndGable:
		return g.WallArea + g.GableArea
	case catalog.BasisLength:
		return in.Dimensions.Length
	case catalog.BasisWidth:
		return in.Dimensions.Width
	case catalog.BasisHeight:
		return in.Dimensions.Height
	case catalog.BasisRafterLength:
		return g.RafterLength
	}
	return 0
}

func (in Inputs) config(k catalog.ConfigKey) (float64, bool) {
	switch k {
	case catalog.ConfigStudSpacing:
		return in.Cost.StudSpacing, true
	case catalog.ConfigTopPlates:
		return in.Cost.TopPlates, true
	case catalog.ConfigExtraTopPlates:
		return in.Cost.ExtraTopPlates, true
	case catalog.ConfigPostSpacing:
		return in.Cost.PostSpacing, true
	}
	return 0, false
}

// evaluate interprets one formula. The second result is false when the
// formula cannot be evaluated, for example a zero divisor from config.
func evaluate(f catalog.Formula, in Inputs, openings Openings, qty func(id int) float64) (float64, bool) {
	switch f.Kind {
	case catalog.KindFixed:
		return f.Value, true

	case catalog.KindLinear:
		div := orOne(f.Div)
		if v, ok := in.config(f.DivBy); ok {
			div = v
		}
		if !(div > 0) {
			return 0, false
		}
		v := ceil(in.basis(f.Basis) * orOne(f.Mul) / div)
		if factor, ok := in.config(f.Factor); ok {
			v *= factor
		}
		return ceil(v + f.Add), true

	case catalog.KindGrid:
		if !(f.Spacing > 0) {
			return 0, false
		}
		rows := ceil(in.basis(f.Basis) / f.Spacing)
		return ceil(rows * in.basis(f.Cross) * orOne(f.Mul) / orOne(f.Div)), true

	case catalog.KindBoxCount:
		if !(f.Capacity > 0) {
			return 0, false
		}
		var total float64
		for _, id := range f.Sources {
			total += qty(id)
		}
		return ceil(total * orOne(f.PerUnit) / f.Capacity), true

	case catalog.KindOpeningPerimeter:
		return ceil(openings.Perimeter(f.Class) * orOne(f.Mul) / orOne(f.Div)), true

	case catalog.KindPostCount:
		spacing := in.Cost.PostSpacing
		if !(spacing > 0) {
			return 0, false
		}
		return ceil(in.Geometry.Perimeter / spacing), true
	}
	return 0, false
}

// Recompute runs one full pass over a copy of items: opening sizes, formula
// quantities, then the composite post price. Only rows with a formula and
// without a manual quantity override get a new quantity.
func Recompute(items []catalog.LineItem, in Inputs, log logrus.FieldLogger) []catalog.LineItem {
	out := catalog.CloneItems(items)

	refreshSizing(out, log)
	openings := AggregateOpenings(out)

	qty := func(id int) float64 {
		if i := catalog.Find(out, id); i >= 0 {
			return out[i].Quantity.InexactFloat64()
		}
		return 0
	}

	for _, late := range []bool{false, true} {
		for i := range out {
			it := &out[i]
			if !it.HasFormula || it.ManualQuantityOverride {
				continue
			}
			f, ok := catalog.FormulaFor(it.ID)
			if !ok {
				if !late {
					log.WithField("item_id", it.ID).Warn("no formula registered for formula-driven item")
				}
				continue
			}
			if f.Late() != late {
				continue
			}
			v, ok := evaluate(f, in, openings, qty)
			if !ok {
				log.WithFields(logrus.Fields{"item_id": it.ID, "kind": f.Kind}).Warn("formula could not be evaluated")
				continue
			}
			it.Quantity = decimal.NewFromFloat(v)
		}
	}

	applyPostPrice(out, in)
	return out
}
