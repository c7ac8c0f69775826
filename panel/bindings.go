// Package panel is the control panel: parameter bindings, change and
// commit notifications, and the keyboard controller that drives them.
package panel

import "galaxygenerator/core"

// Kind distinguishes slider bindings from color pickers
type Kind string

const (
	Slider Kind = "slider"
	Color  Kind = "color"
)

// Binding ties one ParameterSet field to a widget
type Binding struct {
	Field string  `json:"field"`
	Kind  Kind    `json:"kind"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Step  float64 `json:"step,omitempty"`
}

// Bindings returns every widget in display order
func Bindings() []Binding {
	var out []Binding
	for _, d := range core.Domains() {
		out = append(out, Binding{Field: d.Field, Kind: Slider, Min: d.Min, Max: d.Max, Step: d.Step})
	}
	return append(out,
		Binding{Field: core.FieldInsideColor, Kind: Color},
		Binding{Field: core.FieldOutsideColor, Kind: Color},
	)
}

// Fraction places a slider value in [0,1] along its track
func (b Binding) Fraction(v float64) float64 {
	if b.Kind != Slider || b.Max == b.Min {
		return 0
	}
	f := (v - b.Min) / (b.Max - b.Min)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
