package catalog

import "github.com/shopspring/decimal"

// Row ids referenced by the engine.
const (
	IDStuds         = 1
	IDHeaders       = 7
	IDWindows       = 12
	IDManDoors      = 13
	IDOverheadDoors = 46
	IDPosts         = 101
	IDPostShipment  = 102
	IDPostReadyMix  = 103
	IDPostConcrete  = 104
	IDPostLimestone = 105
)

// SeedVersion identifies the shape and content of the catalog seed below.
const SeedVersion = "2026.1"

type seedRow struct {
	id         int
	category   Category
	name       string
	qty        string
	price      string
	enabled    bool
	hasFormula bool
	frame      FrameType
	sizing     *Sizing
	subKey     PostSubKey
}

type studRow struct {
	name  string
	price string
}

var studRows = map[StudSize]studRow{
	Stud2x4: {name: "2x4 Studs 16'", price: "11.49"},
	Stud2x6: {name: "2x6 Studs 16'", price: "18.19"},
}

var seed = []seedRow{
	{id: IDStuds, category: CategoryFraming, qty: "135", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 2, category: CategoryFraming, name: "Top Plates", qty: "27", price: "6.03", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 3, category: CategoryFraming, name: "Extra Top Plates", qty: "14", price: "6.03", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 4, category: CategoryFraming, name: "Bottom Plates (PWF)", qty: "11", price: "36.18", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 5, category: CategoryFraming, name: "Wall Strapping", qty: "90", price: "9.88", enabled: true, hasFormula: true},
	{id: 6, category: CategoryFraming, name: "Roof Strapping", qty: "122", price: "9.88", enabled: true, hasFormula: true},
	{id: IDHeaders, category: CategoryFraming, name: "Headers (LF)", qty: "95", price: "7.10", enabled: true, hasFormula: true},
	{id: 8, category: CategoryFraming, name: "Anchor Bolts", qty: "45", price: "2.23", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 9, category: CategoryFraming, name: "Sill Gasket", qty: "2", price: "15.29", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 10, category: CategoryFraming, name: "Paslode Nails 2-3/8\" (boxes)", qty: "2", price: "6.73", enabled: true, hasFormula: true, frame: FrameStud},
	{id: 11, category: CategoryFraming, name: "Paslode Nails 3-1/4\" (boxes)", qty: "3", price: "75.50", enabled: true, hasFormula: true, frame: FrameStud},

	{id: IDPosts, category: CategoryFraming, name: "Laminated Posts", qty: "23", price: "0", enabled: true, hasFormula: true, frame: FramePost},
	{id: 106, category: CategoryFraming, name: "Treated Skirt Boards 2x8 16'", qty: "12", price: "24.60", enabled: true, hasFormula: true, frame: FramePost},
	{id: IDPostShipment, category: CategoryFoundation, name: "Post Shipment", qty: "23", price: "22.00", enabled: true, hasFormula: true, frame: FramePost, subKey: AddOnShipment},
	{id: IDPostReadyMix, category: CategoryFoundation, name: "Ready-Mix Anchors", qty: "23", price: "42.75", enabled: true, hasFormula: true, frame: FramePost, subKey: AddOnReadyMix},
	{id: IDPostConcrete, category: CategoryFoundation, name: "Footing Concrete", qty: "23", price: "78.75", enabled: true, hasFormula: true, frame: FramePost, subKey: AddOnConcrete},
	{id: IDPostLimestone, category: CategoryFoundation, name: "Limestone Backfill", qty: "23", price: "12.25", enabled: false, hasFormula: true, frame: FramePost, subKey: AddOnLimestone},

	{id: IDWindows, category: CategoryOpenings, name: "Windows", qty: "2", price: "560.70", enabled: true,
		sizing: &Sizing{Class: OpeningWindow, Entries: []SizeEntry{{Width: 4, Height: 3, Quantity: 2}}}},
	{id: IDManDoors, category: CategoryOpenings, name: "Steel Man Doors", qty: "1", price: "693.00", enabled: true,
		sizing: &Sizing{Class: OpeningDoor, Entries: []SizeEntry{{Width: 3, Height: 7, Quantity: 1}}}},
	{id: 14, category: CategoryOpenings, name: "Door Handles", qty: "1", price: "89.99", enabled: true},
	{id: IDOverheadDoors, category: CategoryOpenings, name: "Overhead Doors", qty: "1", price: "3850.00", enabled: true,
		sizing: &Sizing{Class: OpeningDoor, Entries: []SizeEntry{{Width: 12, Height: 12, Quantity: 1}}}},

	{id: 15, category: CategoryExterior, name: "28GA Roof Metal (sqft)", qty: "2199", price: "1.21", enabled: true, hasFormula: true},
	{id: 16, category: CategoryExterior, name: "28GA Wall Metal (sqft)", qty: "3593", price: "1.21", enabled: true, hasFormula: true},
	{id: 17, category: CategoryExterior, name: "Ridge Caps", qty: "5", price: "28.86", enabled: true, hasFormula: true},
	{id: 18, category: CategoryExterior, name: "Inside Corners", qty: "24", price: "11.62", enabled: true, hasFormula: true},
	{id: 19, category: CategoryExterior, name: "Outside Corners", qty: "4", price: "24.42", enabled: true, hasFormula: true},
	{id: 20, category: CategoryExterior, name: "Gable Flashings", qty: "4", price: "35.97", enabled: true, hasFormula: true},
	{id: 21, category: CategoryExterior, name: "Drip Edges", qty: "3", price: "8.77", enabled: true, hasFormula: true},
	{id: 22, category: CategoryExterior, name: "Base Flashings", qty: "17", price: "9.38", enabled: true, hasFormula: true},
	{id: 23, category: CategoryExterior, name: "Door Jambs 11.25\"", qty: "5", price: "35.07", enabled: true, hasFormula: true},
	{id: 24, category: CategoryExterior, name: "Flat Stock", qty: "17", price: "18.00", enabled: true, hasFormula: true},
	{id: 25, category: CategoryExterior, name: "Eave Flashings", qty: "14", price: "18.28", enabled: true, hasFormula: true},
	{id: 26, category: CategoryExterior, name: "J Channels", qty: "10", price: "9.66", enabled: true, hasFormula: true},
	{id: 27, category: CategoryExterior, name: "Ridge Flex-O-Vent", qty: "5", price: "21.64", enabled: true, hasFormula: true},
	{id: 28, category: CategoryExterior, name: "Foam Closures", qty: "32", price: "1.60", enabled: true, hasFormula: true},
	{id: 29, category: CategoryExterior, name: "Metal Screws (boxes)", qty: "6", price: "0.10", enabled: true, hasFormula: true},

	{id: 30, category: CategoryInterior, name: "Interior Wall Metal (sqft)", qty: "2880", price: "1.17", enabled: true, hasFormula: true},
	{id: 31, category: CategoryInterior, name: "Interior Ceiling Metal (sqft)", qty: "2000", price: "1.17", enabled: true, hasFormula: true},
	{id: 32, category: CategoryInterior, name: "Interior J Channels", qty: "10", price: "9.66", enabled: true, hasFormula: true},
	{id: 33, category: CategoryInterior, name: "Interior Corners", qty: "16", price: "27.07", enabled: true, hasFormula: true},
	{id: 34, category: CategoryInterior, name: "Interior Screws (boxes)", qty: "5", price: "0.08", enabled: true, hasFormula: true},
	{id: 35, category: CategoryInterior, name: "O/H Door Flatstock", qty: "2", price: "46.20", enabled: true},
	{id: 36, category: CategoryInterior, name: "Header Trim", qty: "2", price: "33.39", enabled: true},
	{id: 37, category: CategoryInterior, name: "Window/Door Trims 4x8", qty: "1", price: "112.12", enabled: true},

	{id: 38, category: CategoryInsulation, name: "House Wrap (rolls)", qty: "4", price: "111.71", enabled: true, hasFormula: true},
	{id: 39, category: CategoryInsulation, name: "Poly Vapor Barrier (rolls)", qty: "3", price: "123.19", enabled: true, hasFormula: true},
	{id: 40, category: CategoryInsulation, name: "Staples (packages)", qty: "4", price: "11.87", enabled: true, hasFormula: true},
	{id: 41, category: CategoryInsulation, name: "Tuck Tape (rolls)", qty: "2", price: "13.15", enabled: true, hasFormula: true},
	{id: 42, category: CategoryInsulation, name: "Acu Seal (tubes)", qty: "6", price: "14.09", enabled: true, hasFormula: true},
	{id: 43, category: CategoryInsulation, name: "R20 Wall Insulation (sqft)", qty: "2880", price: "0.65", enabled: true, hasFormula: true},
	{id: 44, category: CategoryInsulation, name: "R50 Ceiling Insulation (sqft)", qty: "2000", price: "1.50", enabled: true, hasFormula: true},
	{id: 45, category: CategoryInsulation, name: "Attic Hatch", qty: "1", price: "220.00", enabled: true, hasFormula: true},

	{id: 201, category: CategoryTrades, name: "Excavation & Grading", qty: "1", price: "3500.00", enabled: true},
	{id: 202, category: CategoryTrades, name: "Electrical Rough-in", qty: "1", price: "4800.00", enabled: true},
	{id: 203, category: CategoryTrades, name: "Plumbing Rough-in", qty: "1", price: "2600.00", enabled: false},
	{id: 204, category: CategoryTrades, name: "Slab Finishing", qty: "1", price: "6200.00", enabled: false},
}

// frameRows are regenerated when the framing identity changes.
var frameRows = []int{IDStuds, IDPosts}

// FrameRows lists the ids regenerated on a frame or stud switch.
func FrameRows() []int {
	return append([]int(nil), frameRows...)
}

// IsFrameRow reports whether the row is regenerated on a frame or stud switch.
func IsFrameRow(id int) bool {
	for _, f := range frameRows {
		if f == id {
			return true
		}
	}
	return false
}

func (r seedRow) item(frame FrameConfig) LineItem {
	name, price := r.name, r.price
	if r.id == IDStuds {
		sr, ok := studRows[frame.StudSize]
		if !ok {
			sr = studRows[Stud2x6]
		}
		name, price = sr.name, sr.price
	}
	p := decimal.RequireFromString(price)
	it := LineItem{
		ID:            r.id,
		Category:      r.category,
		Name:          name,
		Quantity:      decimal.RequireFromString(r.qty),
		UnitPrice:     p,
		BaseUnitPrice: p,
		Enabled:       r.enabled,
		HasFormula:    r.hasFormula,
		PostSubKey:    r.subKey,
		Frame:         r.frame,
	}
	if r.sizing != nil {
		s := *r.sizing
		s.Entries = append([]SizeEntry(nil), r.sizing.Entries...)
		it.Sizing = &s
	}
	return it
}

// Seed returns a fresh copy of the whole catalog at base prices.
func Seed(frame FrameConfig) []LineItem {
	items := make([]LineItem, 0, len(seed))
	for _, r := range seed {
		items = append(items, r.item(frame))
	}
	return items
}

// SeedRow returns the base row for id, if the id is part of the seed.
func SeedRow(id int, frame FrameConfig) (LineItem, bool) {
	for _, r := range seed {
		if r.id == id {
			return r.item(frame), true
		}
	}
	return LineItem{}, false
}

// IsSeeded reports whether id belongs to the static catalog.
func IsSeeded(id int) bool {
	for _, r := range seed {
		if r.id == id {
			return true
		}
	}
	return false
}
