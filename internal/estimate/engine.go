// Package estimate is the estimation and pricing-reconciliation engine. Every
// input change is an Event applied to a State by Engine.Apply, followed by one
// synchronous recompute pass.
package estimate

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/framequote/internal/catalog"
	"github.com/Simplici0/framequote/internal/geometry"
	"github.com/Simplici0/framequote/internal/pricing"
)

// State is one estimate: its inputs and the full item list, hidden rows
// included.
type State struct {
	Name       string              `json:"name"`
	Dimensions geometry.Dimensions `json:"dimensions"`
	Roof       geometry.Roof       `json:"roof"`
	Frame      catalog.FrameConfig `json:"frame"`
	Cost       catalog.CostConfig  `json:"cost"`
	Items      []catalog.LineItem  `json:"items"`
}

func (s State) clone() State {
	s.Items = catalog.CloneItems(s.Items)
	return s
}

// Inputs returns the recompute context of the state.
func (s State) Inputs() Inputs {
	return NewInputs(s.Dimensions, s.Roof, s.Cost, s.Frame)
}

// Geometry returns the derived measurements of the state.
func (s State) Geometry() geometry.Geometry {
	return s.Inputs().Geometry
}

// VisibleItems is the projection of the items for the current frame mode.
func (s State) VisibleItems() []catalog.LineItem {
	return catalog.Visible(s.Items, s.Frame.FrameType)
}

// Rollup prices the visible rows.
func (s State) Rollup() pricing.Result {
	return pricing.Calculate(s.VisibleItems(), s.Cost, s.Geometry().FloorArea)
}

// View is the read model returned to callers after every event.
type View struct {
	Name       string              `json:"name"`
	Dimensions geometry.Dimensions `json:"dimensions"`
	Roof       geometry.Roof       `json:"roof"`
	Frame      catalog.FrameConfig `json:"frame"`
	Cost       catalog.CostConfig  `json:"cost"`
	Geometry   geometry.Geometry   `json:"geometry"`
	Items      []catalog.LineItem  `json:"items"`
	Rollup     pricing.Result      `json:"rollup"`
}

// View is the state as served to clients, with hidden rows removed.
func (s State) View() View {
	return View{
		Name:       s.Name,
		Dimensions: s.Dimensions,
		Roof:       s.Roof,
		Frame:      s.Frame,
		Cost:       s.Cost,
		Geometry:   s.Geometry(),
		Items:      s.VisibleItems(),
		Rollup:     s.Rollup(),
	}
}

// Engine applies events. The default price table is injected so tests can use
// catalog.MemoryPrices.
type Engine struct {
	prices catalog.PriceTable
	log    logrus.FieldLogger
}

// NewEngine returns an engine reading defaults from prices. A nil log
// writes warnings to stderr.
func NewEngine(prices catalog.PriceTable, log logrus.FieldLogger) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return &Engine{prices: prices, log: log}
}

func (e *Engine) defaults(ctx context.Context) (map[int]decimal.Decimal, error) {
	prices, err := e.prices.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("read default prices: %w", err)
	}
	return prices, nil
}

// New materializes a fresh estimate with default inputs.
func (e *Engine) New(ctx context.Context, name string) (State, error) {
	defaults, err := e.defaults(ctx)
	if err != nil {
		return State{}, err
	}
	frame := catalog.DefaultFrameConfig()
	s := State{
		Name:       name,
		Dimensions: geometry.Dimensions{Width: 0, Length: 0, Height: 16},
		Roof:       geometry.Roof{PitchRise: 4, PitchRun: 12},
		Frame:      frame,
		Cost:       catalog.DefaultCostConfig(),
		Items:      Materialize(frame, defaults),
	}
	s.Items = Recompute(s.Items, s.Inputs(), e.log)
	return s, nil
}

// Apply returns the state after ev and one recompute pass. On error the
// input state is returned untouched.
func (e *Engine) Apply(ctx context.Context, s State, ev Event) (State, error) {
	next := s.clone()
	if err := ev.apply(ctx, e, &next); err != nil {
		return s, fmt.Errorf("apply %s: %w", ev.Type(), err)
	}
	next.Items = Recompute(next.Items, next.Inputs(), e.log)
	e.log.WithFields(logrus.Fields{"event": ev.Type(), "project": next.Name}).Debug("estimate recomputed")
	return next, nil
}

// ApplyAll applies events in order and stops at the first error.
func (e *Engine) ApplyAll(ctx context.Context, s State, events ...Event) (State, error) {
	for _, ev := range events {
		var err error
		if s, err = e.Apply(ctx, s, ev); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (s *State) item(id int) (*catalog.LineItem, error) {
	i := catalog.Find(s.Items, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	return &s.Items[i], nil
}
