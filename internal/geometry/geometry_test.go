package geometry

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_ReferenceBuilding(t *testing.T) {
	g := Calculate(
		Dimensions{Width: 40, Length: 50, Height: 16},
		Roof{PitchRise: 4, PitchRun: 12, Overhang: 0},
	)

	if g.Perimeter != 180 {
		t.Fatalf("perimeter = %v, want 180", g.Perimeter)
	}
	if g.FloorArea != 2000 {
		t.Fatalf("floorArea = %v, want 2000", g.FloorArea)
	}
	if g.WallArea != 3060 {
		t.Fatalf("wallArea = %v, want 3060", g.WallArea)
	}
	nearlyEqual(t, "pitch", g.Pitch, 1.0/3.0, 1e-12)
	nearlyEqual(t, "run", g.Run, 20, 1e-12)
	nearlyEqual(t, "rise", g.Rise, 6.6667, 1e-4)
	nearlyEqual(t, "rafterLength", g.RafterLength, 21.0819, 1e-4)
	nearlyEqual(t, "roofArea", g.RoofArea, 2108.19, 1e-2)
	nearlyEqual(t, "gableArea", g.GableArea, 533.33, 1e-2)
}

func TestCalculate_PerimeterAndFloorAreaExact(t *testing.T) {
	cases := []Dimensions{
		{Width: 0, Length: 0},
		{Width: 12.5, Length: 30.25, Height: 9},
		{Width: 100, Length: 1, Height: 0},
	}
	for _, d := range cases {
		g := Calculate(d, Roof{PitchRise: 4, PitchRun: 12})
		if g.Perimeter != 2*(d.Width+d.Length) {
			t.Fatalf("perimeter for %+v = %v", d, g.Perimeter)
		}
		if g.FloorArea != d.Width*d.Length {
			t.Fatalf("floorArea for %+v = %v", d, g.FloorArea)
		}
	}
}

func TestCalculate_OverhangExtendsRafter(t *testing.T) {
	base := Calculate(Dimensions{Width: 24, Length: 30}, Roof{PitchRise: 6, PitchRun: 12})
	withOverhang := Calculate(Dimensions{Width: 24, Length: 30}, Roof{PitchRise: 6, PitchRun: 12, Overhang: 1.5})

	nearlyEqual(t, "rafter delta", withOverhang.RafterLength-base.RafterLength, 1.5, 1e-12)
	nearlyEqual(t, "roof area delta", withOverhang.RoofArea-base.RoofArea, 1.5*30*2, 1e-9)
}

func TestCalculate_ZeroRunClampsToOne(t *testing.T) {
	g := Calculate(Dimensions{Width: 10, Length: 10}, Roof{PitchRise: 2, PitchRun: 0})
	nearlyEqual(t, "pitch", g.Pitch, 2, 1e-12)
	if math.IsNaN(g.RafterLength) || math.IsInf(g.RafterLength, 0) {
		t.Fatalf("rafter length is not finite: %v", g.RafterLength)
	}
}

func TestCalculate_NegativeAndNaNInputsClampToZero(t *testing.T) {
	g := Calculate(Dimensions{Width: -10, Length: math.NaN(), Height: math.Inf(1)}, Roof{PitchRise: -4, PitchRun: 12})
	if g.Perimeter != 0 || g.FloorArea != 0 || g.WallArea != 0 {
		t.Fatalf("expected zero geometry, got %+v", g)
	}
	if g.Pitch != 0 || g.RafterLength != 0 {
		t.Fatalf("expected flat zero roof, got %+v", g)
	}
}
