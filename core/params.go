package core

import (
	"math"
)

// Field names, shared by the panel bindings, the config file and the HTTP API
const (
	FieldCount           = "count"
	FieldSize            = "size"
	FieldRadius          = "radius"
	FieldBranches        = "branches"
	FieldSpin            = "spin"
	FieldRandomness      = "randomness"
	FieldRandomnessPower = "randomnessPower"
	FieldInsideColor     = "insideColor"
	FieldOutsideColor    = "outsideColor"
)

// ParameterSet is the snapshot a galaxy is generated from
type ParameterSet struct {
	Count           int     `json:"count"`
	Size            float64 `json:"size"` // point size, rendering only
	Radius          float64 `json:"radius"`
	Branches        int     `json:"branches"`
	Spin            float64 `json:"spin"`
	Randomness      float64 `json:"randomness"` // not read by Generate
	RandomnessPower float64 `json:"randomnessPower"`
	InsideColor     RGB     `json:"insideColor"`
	OutsideColor    RGB     `json:"outsideColor"`
}

// DefaultParameters returns the stock galaxy
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Count:           100000,
		Size:            0.01,
		Radius:          10,
		Branches:        3,
		Spin:            1,
		Randomness:      0,
		RandomnessPower: 3,
		InsideColor:     MustParseHex("#ff6030"),
		OutsideColor:    MustParseHex("#1b3984"),
	}
}

// Domain is the editable range of one numeric field
type Domain struct {
	Field string  `json:"field"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

var domains = []Domain{
	{FieldCount, 1, 100000, 100},
	{FieldSize, 0.001, 0.1, 0.001},
	{FieldRadius, 0.01, 20, 0.01},
	{FieldBranches, 2, 20, 1},
	{FieldSpin, -5, 5, 0.1},
	{FieldRandomness, 0, 2, 0.01},
	{FieldRandomnessPower, 1, 10, 1},
}

// Domains lists the numeric fields in panel order
func Domains() []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	return out
}

// DomainOf looks up a numeric field
func DomainOf(field string) (Domain, bool) {
	for _, d := range domains {
		if d.Field == field {
			return d, true
		}
	}
	return Domain{}, false
}

// Clamp limits v to [Min, Max]
func (d Domain) Clamp(v float64) float64 {
	return math.Max(d.Min, math.Min(d.Max, v))
}

// Snap rounds v to the nearest step counted from Min, then clamps
func (d Domain) Snap(v float64) float64 {
	if d.Step > 0 {
		v = d.Min + math.Round((v-d.Min)/d.Step)*d.Step
		// keep 0.1-style steps from printing as 0.30000000000000004
		v = math.Round(v*1e9) / 1e9
	}
	return d.Clamp(v)
}

// Number reads a numeric field by name
func (p ParameterSet) Number(field string) (float64, bool) {
	switch field {
	case FieldCount:
		return float64(p.Count), true
	case FieldSize:
		return p.Size, true
	case FieldRadius:
		return p.Radius, true
	case FieldBranches:
		return float64(p.Branches), true
	case FieldSpin:
		return p.Spin, true
	case FieldRandomness:
		return p.Randomness, true
	case FieldRandomnessPower:
		return p.RandomnessPower, true
	}
	return 0, false
}

// WithNumber returns a copy with a numeric field replaced
func (p ParameterSet) WithNumber(field string, v float64) (ParameterSet, bool) {
	switch field {
	case FieldCount:
		p.Count = int(math.Round(v))
	case FieldSize:
		p.Size = v
	case FieldRadius:
		p.Radius = v
	case FieldBranches:
		p.Branches = int(math.Round(v))
	case FieldSpin:
		p.Spin = v
	case FieldRandomness:
		p.Randomness = v
	case FieldRandomnessPower:
		p.RandomnessPower = v
	default:
		return p, false
	}
	return p, true
}

// Color reads a color field by name
func (p ParameterSet) Color(field string) (RGB, bool) {
	switch field {
	case FieldInsideColor:
		return p.InsideColor, true
	case FieldOutsideColor:
		return p.OutsideColor, true
	}
	return RGB{}, false
}

// WithColor returns a copy with a color field replaced
func (p ParameterSet) WithColor(field string, c RGB) (ParameterSet, bool) {
	switch field {
	case FieldInsideColor:
		p.InsideColor = c
	case FieldOutsideColor:
		p.OutsideColor = c
	default:
		return p, false
	}
	return p, true
}

// CheckDomain validates every field against the panel ranges
func (p ParameterSet) CheckDomain() error {
	for _, d := range domains {
		v, _ := p.Number(d.Field)
		if !isFinite(v) {
			return invalidf(d.Field, v, "not a finite number")
		}
		if v < d.Min || v > d.Max {
			return invalidf(d.Field, v, "outside [%v, %v]", d.Min, d.Max)
		}
	}
	if !p.InsideColor.finite() {
		return invalidf(FieldInsideColor, math.NaN(), "not a finite color")
	}
	if !p.OutsideColor.finite() {
		return invalidf(FieldOutsideColor, math.NaN(), "not a finite color")
	}
	return nil
}

// Clamp returns a copy with every numeric field inside its panel range.
// Non-finite values fall back to the default for that field.
func (p ParameterSet) Clamp() ParameterSet {
	defaults := DefaultParameters()
	for _, d := range domains {
		v, _ := p.Number(d.Field)
		if !isFinite(v) {
			v, _ = defaults.Number(d.Field)
		}
		p, _ = p.WithNumber(d.Field, d.Clamp(v))
	}
	if !p.InsideColor.finite() {
		p.InsideColor = defaults.InsideColor
	}
	if !p.OutsideColor.finite() {
		p.OutsideColor = defaults.OutsideColor
	}
	return p
}

// checkGeneration is the looser check Generate applies: it only rejects
// values the distribution law cannot evaluate.
func (p ParameterSet) checkGeneration(inside, outside RGB) error {
	if p.Count < 0 {
		return invalidf(FieldCount, float64(p.Count), "must not be negative")
	}
	if p.Branches <= 0 {
		return invalidf(FieldBranches, float64(p.Branches), "must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{FieldSize, p.Size},
		{FieldRadius, p.Radius},
		{FieldSpin, p.Spin},
		{FieldRandomness, p.Randomness},
		{FieldRandomnessPower, p.RandomnessPower},
	} {
		if !isFinite(f.v) {
			return invalidf(f.name, f.v, "not a finite number")
		}
	}
	if p.Radius <= 0 {
		return invalidf(FieldRadius, p.Radius, "must be positive")
	}
	if !inside.finite() {
		return invalidf(FieldInsideColor, math.NaN(), "not a finite color")
	}
	if !outside.finite() {
		return invalidf(FieldOutsideColor, math.NaN(), "not a finite color")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
