package estimate

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/geometry"
)

// DecodeSnapshot parses a stored project. Snapshots written before schema 2
// used a flat "config" object and qty/unit/baseUnit item fields; they are
// mapped onto the current shape here.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return Snapshot{}, fmt.Errorf("%w: snapshot is not valid JSON", ErrInvalidInput)
	}
	doc := gjson.ParseBytes(data)
	if doc.Get("schema").Int() >= catalog.Schema {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("%w: decode snapshot: %v", ErrInvalidInput, err)
		}
		return snap, nil
	}
	return decodeLegacy(doc), nil
}

func decodeLegacy(doc gjson.Result) Snapshot {
	cfg := doc.Get("config")
	cost := catalog.DefaultCostConfig()
	decField := func(key string, dst *decimal.Decimal) {
		if v := cfg.Get(key); v.Exists() {
			if d, err := decimal.NewFromString(v.String()); err == nil {
				*dst = d
			}
		}
	}
	floatField := func(key string, dst *float64) {
		if v := cfg.Get(key); v.Exists() {
			*dst = v.Float()
		}
	}
	decField("management", &cost.Management)
	decField("pst", &cost.PST)
	decField("waste", &cost.Waste)
	decField("profit", &cost.Profit)
	decField("gst", &cost.GST)
	decField("laborPerSqft", &cost.LaborPerSqft)
	decField("toolExpense", &cost.ToolExpense)
	decField("drafting", &cost.Drafting)
	floatField("studSpacing", &cost.StudSpacing)
	floatField("topPlates", &cost.TopPlates)
	floatField("extraTopPlates", &cost.ExtraTopPlates)

	roof := geometry.Roof{PitchRise: 4, PitchRun: 12}
	floatField("roofPitchRise", &roof.PitchRise)
	floatField("roofPitchRun", &roof.PitchRun)
	floatField("overhang", &roof.Overhang)

	dims := doc.Get("dimensions")
	snap := Snapshot{
		Schema: int(doc.Get("schema").Int()),
		Name:   doc.Get("name").String(),
		Dimensions: geometry.Dimensions{
			Width:  dims.Get("width").Float(),
			Length: dims.Get("length").Float(),
			Height: dims.Get("height").Float(),
		},
		Roof: roof,
		Cost: cost,
	}
	if f := doc.Get("frameConfig"); f.Exists() {
		snap.Frame = catalog.FrameConfig{
			FrameType:    catalog.FrameType(f.Get("frameType").String()),
			StudSize:     catalog.StudSize(f.Get("studSize").String()),
			PostSize:     catalog.PostSize(f.Get("postSize").String()),
			PostDiameter: catalog.PostDiameter(f.Get("postDiameter").String()),
		}
	}

	doc.Get("items").ForEach(func(_, v gjson.Result) bool {
		unit := legacyDecimal(v, "unit", "unitPrice")
		it := catalog.LineItem{
			ID:         int(v.Get("id").Int()),
			Category:   catalog.Category(v.Get("category").String()),
			Name:       v.Get("name").String(),
			Quantity:   legacyDecimal(v, "qty", "quantity"),
			UnitPrice:  unit,
			Enabled:    !v.Get("enabled").Exists() || v.Get("enabled").Bool(),
			HasFormula: v.Get("hasFormula").Bool(),
		}
		it.BaseUnitPrice = legacyDecimal(v, "baseUnit", "baseUnitPrice")
		if it.BaseUnitPrice.IsZero() {
			it.BaseUnitPrice = unit
		}
		snap.Items = append(snap.Items, it)
		return true
	})
	return snap
}

func legacyDecimal(v gjson.Result, keys ...string) decimal.Decimal {
	for _, k := range keys {
		if f := v.Get(k); f.Exists() {
			if d, err := decimal.NewFromString(f.String()); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
