package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/geometry"
)

// customIDBase is the first id handed to user-added rows.
const customIDBase = 1000

// Event is one discrete input change.
type Event interface {
	Type() string
	apply(ctx context.Context, e *Engine, s *State) error
}

// SetDimensions replaces the building dimensions.
type SetDimensions struct {
	geometry.Dimensions
}

func (SetDimensions) Type() string { return "setDimensions" }

func (ev SetDimensions) apply(_ context.Context, _ *Engine, s *State) error {
	s.Dimensions = ev.Dimensions.Sanitize()
	return nil
}

// SetRoof replaces the roof configuration.
type SetRoof struct {
	geometry.Roof
}

func (SetRoof) Type() string { return "setRoof" }

func (ev SetRoof) apply(_ context.Context, _ *Engine, s *State) error {
	s.Roof = ev.Roof.Sanitize()
	return nil
}

// SetCostConfig replaces the markup and tax rates.
type SetCostConfig struct {
	Cost catalog.CostConfig `json:"cost"`
}

func (SetCostConfig) Type() string { return "setCostConfig" }

func (ev SetCostConfig) apply(_ context.Context, _ *Engine, s *State) error {
	if err := ev.Cost.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.Cost = ev.Cost
	return nil
}

// SetFrameType switches construction mode and regenerates the frame rows.
type SetFrameType struct {
	FrameType catalog.FrameType `json:"frameType"`
}

func (SetFrameType) Type() string { return "setFrameType" }

func (ev SetFrameType) apply(ctx context.Context, e *Engine, s *State) error {
	frame := s.Frame
	frame.FrameType = ev.FrameType
	return switchFrame(ctx, e, s, frame)
}

// SetStudSize switches the stud dimension and regenerates the frame rows.
type SetStudSize struct {
	StudSize catalog.StudSize `json:"studSize"`
}

func (SetStudSize) Type() string { return "setStudSize" }

func (ev SetStudSize) apply(ctx context.Context, e *Engine, s *State) error {
	frame := s.Frame
	frame.StudSize = ev.StudSize
	return switchFrame(ctx, e, s, frame)
}

func switchFrame(ctx context.Context, e *Engine, s *State, frame catalog.FrameConfig) error {
	if err := frame.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if frame == s.Frame {
		return nil
	}
	defaults, err := e.defaults(ctx)
	if err != nil {
		return err
	}
	s.Frame = frame
	s.Items = regenerateFrameRows(s.Items, frame, defaults)
	return nil
}

// SetPostSize changes the laminated post ply.
type SetPostSize struct {
	PostSize catalog.PostSize `json:"postSize"`
}

func (SetPostSize) Type() string { return "setPostSize" }

func (ev SetPostSize) apply(_ context.Context, _ *Engine, s *State) error {
	frame := s.Frame
	frame.PostSize = ev.PostSize
	if err := frame.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.Frame = frame
	return nil
}

// SetPostDiameter changes the footing diameter used by the post add-ons.
type SetPostDiameter struct {
	PostDiameter catalog.PostDiameter `json:"postDiameter"`
}

func (SetPostDiameter) Type() string { return "setPostDiameter" }

func (ev SetPostDiameter) apply(_ context.Context, _ *Engine, s *State) error {
	frame := s.Frame
	frame.PostDiameter = ev.PostDiameter
	if err := frame.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.Frame = frame
	return nil
}

// SetQuantity is a manual quantity edit. The row keeps it across recomputes
// until the catalog is rematerialized.
type SetQuantity struct {
	ItemID   int             `json:"itemId"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (SetQuantity) Type() string { return "setQuantity" }

func (ev SetQuantity) apply(_ context.Context, _ *Engine, s *State) error {
	it, err := s.item(ev.ItemID)
	if err != nil {
		return err
	}
	q := ev.Quantity
	if q.IsNegative() {
		q = decimal.Zero
	}
	it.Quantity = q
	it.ManualQuantityOverride = true
	return nil
}

// SetUnitPrice sets a row price and flags drift from the default.
type SetUnitPrice struct {
	ItemID int             `json:"itemId"`
	Price  decimal.Decimal `json:"price"`
}

func (SetUnitPrice) Type() string { return "setUnitPrice" }

func (ev SetUnitPrice) apply(ctx context.Context, e *Engine, s *State) error {
	it, err := s.item(ev.ItemID)
	if err != nil {
		return err
	}
	if it.PostSubKey != "" {
		return fmt.Errorf("%w: item %d is priced from post diameter", ErrNotPromotable, it.ID)
	}
	defaults, err := e.defaults(ctx)
	if err != nil {
		return err
	}
	setUnitPrice(it, ev.Price, defaults)
	return nil
}

// PromoteToDefault writes the row's current price into the shared default
// table. baseUnitPrice is kept for reference.
type PromoteToDefault struct {
	ItemID int `json:"itemId"`
}

func (PromoteToDefault) Type() string { return "promoteToDefault" }

func (ev PromoteToDefault) apply(ctx context.Context, e *Engine, s *State) error {
	it, err := s.item(ev.ItemID)
	if err != nil {
		return err
	}
	if err := checkPromotable(*it); err != nil {
		return err
	}
	if err := e.prices.SetPrice(ctx, it.ID, it.UnitPrice); err != nil {
		return fmt.Errorf("promote price of item %d: %w", it.ID, err)
	}
	it.ManualPriceOverride = false
	return nil
}

// ToggleItem flips whether a row counts toward the quote.
type ToggleItem struct {
	ItemID int `json:"itemId"`
}

func (ToggleItem) Type() string { return "toggleItem" }

func (ev ToggleItem) apply(_ context.Context, _ *Engine, s *State) error {
	it, err := s.item(ev.ItemID)
	if err != nil {
		return err
	}
	it.Enabled = !it.Enabled
	return nil
}

// SetSizes replaces the size list of an opening row.
type SetSizes struct {
	ItemID int                 `json:"itemId"`
	Sizes  []catalog.SizeEntry `json:"sizes"`
}

func (SetSizes) Type() string { return "setSizes" }

func (ev SetSizes) apply(_ context.Context, e *Engine, s *State) error {
	it, err := s.item(ev.ItemID)
	if err != nil {
		return err
	}
	if it.Sizing == nil {
		return fmt.Errorf("%w: %d", ErrNotSizable, it.ID)
	}
	it.Sizing.Entries = SanitizeEntries(ev.Sizes)
	if !applySizing(it) {
		e.log.WithField("item_id", it.ID).Warn("size list emptied, perimeter treated as zero")
	}
	return nil
}

// AddItem appends a custom row without a formula.
type AddItem struct {
	Category  catalog.Category `json:"category"`
	Name      string           `json:"name"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
}

func (AddItem) Type() string { return "addItem" }

func (ev AddItem) apply(_ context.Context, _ *Engine, s *State) error {
	name := strings.TrimSpace(ev.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !ev.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, ev.Category)
	}
	if ev.Quantity.IsNegative() || ev.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: quantity and unit price must be greater than or equal to 0", ErrInvalidInput)
	}

	id := customIDBase
	for _, it := range s.Items {
		if it.ID >= id {
			id = it.ID + 1
		}
	}
	s.Items = append(s.Items, catalog.LineItem{
		ID:            id,
		Category:      ev.Category,
		Name:          name,
		Quantity:      ev.Quantity,
		UnitPrice:     ev.UnitPrice,
		BaseUnitPrice: ev.UnitPrice,
		Enabled:       true,
	})
	return nil
}

// RemoveItem drops a row.
type RemoveItem struct {
	ItemID int `json:"itemId"`
}

func (RemoveItem) Type() string { return "removeItem" }

func (ev RemoveItem) apply(_ context.Context, _ *Engine, s *State) error {
	i := catalog.Find(s.Items, ev.ItemID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownItem, ev.ItemID)
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
	return nil
}

// Reset rematerializes the whole catalog, dropping every override and
// custom row. Inputs are kept.
type Reset struct{}

func (Reset) Type() string { return "reset" }

func (Reset) apply(ctx context.Context, e *Engine, s *State) error {
	defaults, err := e.defaults(ctx)
	if err != nil {
		return err
	}
	s.Items = Materialize(s.Frame, defaults)
	return nil
}
