package geometry

import "math"

// topPlateAllowance is added to the wall height when computing wall area.
const topPlateAllowance = 1.0

// Dimensions are the outside building dimensions in feet.
type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// Roof describes a gable roof. Overhang is entered in inches and is added to
// the rafter length as given, without conversion.
type Roof struct {
	PitchRise float64 `json:"roofPitchRise"`
	PitchRun  float64 `json:"roofPitchRun"`
	Overhang  float64 `json:"overhang"`
}

// Geometry contains every measurement derived from Dimensions and Roof.
type Geometry struct {
	FloorArea    float64 `json:"floorArea"`
	Perimeter    float64 `json:"perimeter"`
	WallArea     float64 `json:"wallArea"`
	Pitch        float64 `json:"pitch"`
	Angle        float64 `json:"angle"`
	Run          float64 `json:"run"`
	Rise         float64 `json:"rise"`
	RafterLength float64 `json:"rafterLength"`
	RoofArea     float64 `json:"roofArea"`
	GableArea    float64 `json:"gableArea"`
}

// Sanitize clamps negative and non-finite values to zero.
func (d Dimensions) Sanitize() Dimensions {
	return Dimensions{
		Width:  nonNegative(d.Width),
		Length: nonNegative(d.Length),
		Height: nonNegative(d.Height),
	}
}

// Sanitize clamps rise and overhang to zero and run to a minimum of 1.
func (r Roof) Sanitize() Roof {
	run := nonNegative(r.PitchRun)
	if run < 1 {
		run = 1
	}
	return Roof{
		PitchRise: nonNegative(r.PitchRise),
		PitchRun:  run,
		Overhang:  nonNegative(r.Overhang),
	}
}

// Calculate derives the building measurements. Inputs are sanitized first so
// the result never carries NaN.
func Calculate(dims Dimensions, roof Roof) Geometry {
	dims = dims.Sanitize()
	roof = roof.Sanitize()

	perimeter := 2 * (dims.Width + dims.Length)
	pitch := roof.PitchRise / roof.PitchRun
	angle := math.Atan(pitch)
	run := dims.Width / 2
	rise := run * pitch
	rafter := run/math.Cos(angle) + roof.Overhang

	return Geometry{
		FloorArea:    dims.Width * dims.Length,
		Perimeter:    perimeter,
		WallArea:     perimeter * (dims.Height + topPlateAllowance),
		Pitch:        pitch,
		Angle:        angle,
		Run:          run,
		Rise:         rise,
		RafterLength: rafter,
		RoofArea:     rafter * dims.Length * 2,
		GableArea:    dims.Width * rise * 2,
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
