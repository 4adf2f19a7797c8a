// Package catalog holds the line-item schema, the static catalog seed, the
// declarative quantity formula table and the post-frame lookup tables.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Schema is the current version of the persisted LineItem shape.
const Schema = 2

// Category groups line items in the rollup and in exports.
type Category string

const (
	CategoryFraming    Category = "framing"
	CategoryFoundation Category = "foundation"
	CategoryOpenings   Category = "openings"
	CategoryExterior   Category = "exterior"
	CategoryInterior   Category = "interior"
	CategoryInsulation Category = "insulation"
	CategoryTrades     Category = "trades"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFraming,
	CategoryFoundation,
	CategoryOpenings,
	CategoryExterior,
	CategoryInterior,
	CategoryInsulation,
	CategoryTrades,
}

var categoryLabels = map[Category]string{
	CategoryFraming:    "Framing",
	CategoryFoundation: "Post Foundations",
	CategoryOpenings:   "Doors & Windows",
	CategoryExterior:   "Exterior Metal & Trim",
	CategoryInterior:   "Interior Finishing",
	CategoryInsulation: "Insulation & Wraps",
	CategoryTrades:     "Trades",
}

// Label returns the display label of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// IsTrades reports whether the category is rolled up as a trade cost.
func (c Category) IsTrades() bool { return c == CategoryTrades }

// FrameType selects stud-wall or post-frame construction.
type FrameType string

const (
	FrameStud FrameType = "stud"
	FramePost FrameType = "post"
)

// StudSize is the nominal wall stud dimension in stud-frame mode.
type StudSize string

const (
	Stud2x4 StudSize = "2x4"
	Stud2x6 StudSize = "2x6"
)

// PostSize is the ply configuration of a laminated post.
type PostSize string

const (
	Post2Ply PostSize = "2ply"
	Post3Ply PostSize = "3ply"
	Post4Ply PostSize = "4ply"
)

// PostDiameter is the foundation hole diameter of a post.
type PostDiameter string

const (
	Diameter12 PostDiameter = "12in"
	Diameter18 PostDiameter = "18in"
	Diameter24 PostDiameter = "24in"
)

// FrameConfig selects the structural strategy and its size keys.
type FrameConfig struct {
	FrameType    FrameType    `json:"frameType"`
	StudSize     StudSize     `json:"studSize"`
	PostSize     PostSize     `json:"postSize"`
	PostDiameter PostDiameter `json:"postDiameter"`
}

// DefaultFrameConfig returns a 2x6 stud-framed building.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		FrameType:    FrameStud,
		StudSize:     Stud2x6,
		PostSize:     Post3Ply,
		PostDiameter: Diameter18,
	}
}

// Validate checks every enum against its closed set.
func (f FrameConfig) Validate() error {
	switch f.FrameType {
	case FrameStud, FramePost:
	default:
		return fmt.Errorf("unknown frame type %q", f.FrameType)
	}
	if _, ok := studRows[f.StudSize]; !ok {
		return fmt.Errorf("unknown stud size %q", f.StudSize)
	}
	if _, ok := postBaseRates[f.PostSize]; !ok {
		return fmt.Errorf("unknown post size %q", f.PostSize)
	}
	if _, ok := postAddOnPrices[AddOnShipment][f.PostDiameter]; !ok {
		return fmt.Errorf("unknown post diameter %q", f.PostDiameter)
	}
	return nil
}

// PostSubKey links a foundation add-on row to the structural post price.
type PostSubKey string

const (
	AddOnShipment  PostSubKey = "shipment"
	AddOnReadyMix  PostSubKey = "readyMix"
	AddOnConcrete  PostSubKey = "concrete"
	AddOnLimestone PostSubKey = "limestone"
)

// AddOns lists the post add-ons in summation order.
var AddOns = []PostSubKey{AddOnShipment, AddOnReadyMix, AddOnConcrete, AddOnLimestone}

// OpeningClass picks the perimeter rule of a sized opening.
type OpeningClass string

const (
	OpeningWindow OpeningClass = "window"
	OpeningDoor   OpeningClass = "door"
)

// SizeEntry is one opening size in feet.
type SizeEntry struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
}

// Sizing is the per-opening size list of a window or door row.
type Sizing struct {
	Class          OpeningClass `json:"class"`
	Entries        []SizeEntry  `json:"entries"`
	TotalPerimeter float64      `json:"totalPerimeter"`
}

// LineItem is one catalog row of the bill of materials.
type LineItem struct {
	ID                     int             `json:"id"`
	Category               Category        `json:"category"`
	Name                   string          `json:"name"`
	Quantity               decimal.Decimal `json:"quantity"`
	UnitPrice              decimal.Decimal `json:"unitPrice"`
	Enabled                bool            `json:"enabled"`
	HasFormula             bool            `json:"hasFormula"`
	ManualQuantityOverride bool            `json:"manualQuantityOverride"`
	ManualPriceOverride    bool            `json:"manualPriceOverride"`
	BaseUnitPrice          decimal.Decimal `json:"baseUnitPrice"`
	Sizing                 *Sizing         `json:"sizing,omitempty"`
	PostSubKey             PostSubKey      `json:"postSubKey,omitempty"`
	// Frame restricts the row to one framing mode; empty means both.
	Frame FrameType `json:"frame,omitempty"`
}

// LineTotal is quantity times unit price.
func (it LineItem) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// VisibleIn reports whether the row belongs to the given framing mode.
func (it LineItem) VisibleIn(frame FrameType) bool {
	return it.Frame == "" || it.Frame == frame
}

// Clone returns a deep copy so sizing entries are never shared.
func (it LineItem) Clone() LineItem {
	if it.Sizing != nil {
		s := *it.Sizing
		s.Entries = append([]SizeEntry(nil), it.Sizing.Entries...)
		it.Sizing = &s
	}
	return it
}

// CloneItems deep-copies a slice of rows.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Visible filters rows by framing mode without touching hidden ones.
func Visible(items []LineItem, frame FrameType) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.VisibleIn(frame) {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the index of the row with the given id, or -1.
func Find(items []LineItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
