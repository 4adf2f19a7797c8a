package estimate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/geometry"
)

// Snapshot is the persisted JSON shape of a named project.
type Snapshot struct {
	Schema      int                 `json:"schema"`
	SeedVersion string              `json:"seedVersion,omitempty"`
	Name        string              `json:"name"`
	Dimensions  geometry.Dimensions `json:"dimensions"`
	Roof        geometry.Roof       `json:"roofConfig"`
	Frame       catalog.FrameConfig `json:"frameConfig"`
	Cost        catalog.CostConfig  `json:"costConfig"`
	Items       []catalog.LineItem  `json:"items"`
	SavedAt     time.Time           `json:"savedAt"`
}

// Snapshot captures the state for persistence.
func (s State) Snapshot(savedAt time.Time) Snapshot {
	return Snapshot{
		Schema:      catalog.Schema,
		SeedVersion: catalog.SeedVersion,
		Name:        s.Name,
		Dimensions:  s.Dimensions,
		Roof:        s.Roof,
		Frame:       s.Frame,
		Cost:        s.Cost,
		Items:       catalog.CloneItems(s.Items),
		SavedAt:     savedAt,
	}
}

// Load rebuilds a state from a snapshot. Loading rematerializes: every row's
// price is resolved again from the default table and both override flags are
// cleared. Fields missing from older schemas are defaulted.
func (e *Engine) Load(ctx context.Context, snap Snapshot) (State, error) {
	defaults, err := e.defaults(ctx)
	if err != nil {
		return State{}, err
	}

	s := State{
		Name:       snap.Name,
		Dimensions: snap.Dimensions.Sanitize(),
		Roof:       snap.Roof.Sanitize(),
		Frame:      normalizeFrame(snap.Frame),
		Cost:       normalizeCost(snap.Cost),
	}

	if len(snap.Items) == 0 {
		s.Items = Materialize(s.Frame, defaults)
	} else {
		s.Items = make([]catalog.LineItem, 0, len(snap.Items))
		for _, saved := range snap.Items {
			it := normalizeItem(saved, s.Frame)
			resolvePrice(&it, defaults)
			it.ManualQuantityOverride = false
			s.Items = append(s.Items, it)
		}
	}

	s.Items = Recompute(s.Items, s.Inputs(), e.log)
	return s, nil
}

func normalizeFrame(f catalog.FrameConfig) catalog.FrameConfig {
	d := catalog.DefaultFrameConfig()
	if f.FrameType == "" {
		f.FrameType = d.FrameType
	}
	if f.StudSize == "" {
		f.StudSize = d.StudSize
	}
	if f.PostSize == "" {
		f.PostSize = d.PostSize
	}
	if f.PostDiameter == "" {
		f.PostDiameter = d.PostDiameter
	}
	if f.Validate() != nil {
		return d
	}
	return f
}

func normalizeCost(c catalog.CostConfig) catalog.CostConfig {
	if c.Validate() == nil {
		return c
	}
	d := catalog.DefaultCostConfig()
	if c.StudSpacing <= 0 {
		c.StudSpacing = d.StudSpacing
	}
	if c.PostSpacing <= 0 {
		c.PostSpacing = d.PostSpacing
	}
	if c.Validate() != nil {
		return d
	}
	return c
}

// normalizeItem keeps the user-editable state of a saved row (enabled,
// quantity, sizes, and the whole row for custom items) and takes catalog
// identity from the current seed.
func normalizeItem(saved catalog.LineItem, frame catalog.FrameConfig) catalog.LineItem {
	saved = saved.Clone()
	if saved.Quantity.IsNegative() {
		saved.Quantity = decimal.Zero
	}
	if saved.UnitPrice.IsNegative() {
		saved.UnitPrice = decimal.Zero
	}

	seedRow, ok := catalog.SeedRow(saved.ID, frame)
	if !ok {
		if !saved.Category.Valid() {
			saved.Category = catalog.CategoryFraming
		}
		saved.BaseUnitPrice = saved.UnitPrice
		saved.HasFormula = false
		saved.PostSubKey = ""
		return saved
	}

	it := seedRow
	it.Enabled = saved.Enabled
	it.Quantity = saved.Quantity
	if saved.Sizing != nil && it.Sizing != nil {
		it.Sizing.Entries = saved.Sizing.Entries
	}
	return it
}
