package catalog

// Kind is the closed set of quantity formula shapes.
type Kind int

const (
	// KindFixed always yields Value.
	KindFixed Kind = iota + 1
	// KindLinear is ceil(basis × Mul / Div) × Factor + Add.
	KindLinear
	// KindGrid is ceil(ceil(basis / Spacing) × cross × Mul / Div), used for
	// strapping rows laid every Spacing feet.
	KindGrid
	// KindBoxCount is ceil(Σ source quantities × PerUnit / Capacity).
	KindBoxCount
	// KindOpeningPerimeter is ceil(opening perimeter of Class × Mul / Div).
	KindOpeningPerimeter
	// KindPostCount is ceil(perimeter / post spacing).
	KindPostCount
)

// Basis selects the geometry measurement a formula scales with.
type Basis int

const (
	BasisPerimeter Basis = iota + 1
	BasisFloorArea
	BasisWallArea
	BasisRoofArea
	BasisWallAndGable
	BasisLength
	BasisWidth
	BasisHeight
	BasisRafterLength
)

// ConfigKey selects a CostConfig multiplier used by a formula.
type ConfigKey int

const (
	ConfigNone ConfigKey = iota
	ConfigStudSpacing
	ConfigTopPlates
	ConfigExtraTopPlates
	ConfigPostSpacing
)

// Formula is one declarative row of the formula table. Zero Mul and Div
// mean 1.
type Formula struct {
	Kind     Kind
	Value    float64
	Basis    Basis
	Cross    Basis
	Spacing  float64
	Mul      float64
	Div      float64
	DivBy    ConfigKey
	Factor   ConfigKey
	Add      float64
	Sources  []int
	PerUnit  float64
	Capacity float64
	Class    OpeningClass
}

// Late reports whether the formula reads other rows' quantities and must be
// evaluated after every other formula in a pass.
func (f Formula) Late() bool { return f.Kind == KindBoxCount }

func fixed(v float64) Formula { return Formula{Kind: KindFixed, Value: v} }

func linear(b Basis, mul, div float64) Formula {
	return Formula{Kind: KindLinear, Basis: b, Mul: mul, Div: div}
}

func boxes(perUnit, capacity float64, sources ...int) Formula {
	return Formula{Kind: KindBoxCount, Sources: sources, PerUnit: perUnit, Capacity: capacity}
}

var formulas = map[int]Formula{
	IDStuds:         {Kind: KindLinear, Basis: BasisPerimeter, Mul: 12, DivBy: ConfigStudSpacing},
	2:               {Kind: KindLinear, Basis: BasisPerimeter, Div: 16, Factor: ConfigTopPlates},
	3:               {Kind: KindLinear, Basis: BasisPerimeter, Div: 16, Factor: ConfigExtraTopPlates},
	4:               linear(BasisPerimeter, 1, 16),
	5:               {Kind: KindGrid, Basis: BasisHeight, Spacing: 2, Cross: BasisPerimeter, Div: 16},
	6:               {Kind: KindGrid, Basis: BasisRafterLength, Spacing: 2, Cross: BasisLength, Mul: 2, Div: 16},
	IDHeaders:       {Kind: KindOpeningPerimeter, Div: 16},
	8:               linear(BasisPerimeter, 1, 4),
	9:               linear(BasisPerimeter, 1, 50),
	10:              boxes(30, 2000, IDStuds),
	11:              boxes(35, 2000, IDStuds),
	15:              linear(BasisRoofArea, 1, 1),
	16:              linear(BasisWallAndGable, 1, 1),
	17:              linear(BasisLength, 1, 10),
	18:              {Kind: KindLinear, Basis: BasisLength, Mul: 0.70, Div: 16, Add: 2},
	19:              fixed(4),
	20:              fixed(4),
	21:              linear(BasisPerimeter, 1, 10),
	22:              linear(BasisPerimeter, 1, 16),
	23:              {Kind: KindOpeningPerimeter, Class: OpeningDoor, Div: 10},
	24:              linear(BasisPerimeter, 1, 20),
	25:              linear(BasisPerimeter, 1, 10),
	26:              linear(BasisPerimeter, 1, 10),
	27:              linear(BasisLength, 1, 10),
	28:              linear(BasisLength, 2, 20),
	29:              boxes(1.5, 1000, 15, 16),
	30:              linear(BasisWallArea, 0.94, 1),
	31:              linear(BasisFloorArea, 1, 1),
	32:              linear(BasisPerimeter, 1, 10),
	33:              linear(BasisPerimeter, 1, 16),
	34:              boxes(1.5, 1000, 30, 31),
	38:              boxes(1, 1000, 43),
	39:              boxes(1, 1000, 43),
	40:              fixed(4),
	41:              fixed(2),
	42:              fixed(6),
	43:              linear(BasisWallArea, 0.94, 1),
	44:              linear(BasisFloorArea, 1, 1),
	45:              fixed(1),
	IDPosts:         {Kind: KindPostCount},
	IDPostShipment:  boxes(1, 1, IDPosts),
	IDPostReadyMix:  boxes(1, 1, IDPosts),
	IDPostConcrete:  boxes(1, 1, IDPosts),
	IDPostLimestone: boxes(1, 1, IDPosts),
	106:             linear(BasisPerimeter, 1, 16),
}

// FormulaFor returns the registered formula of a row id.
func FormulaFor(id int) (Formula, bool) {
	f, ok := formulas[id]
	return f, ok
}
