package panel

import (
	"fmt"

	"galaxygenerator/core"
)

// Action is a device-independent panel input
type Action int

const (
	SelectNext Action = iota
	SelectPrev
	Increase
	Decrease
	Release // the adjusting key went up
	ResetAll
)

// hueStep is how far one color adjustment turns the hue
const hueStep = 10.0

// Controller drives a Panel from discrete key actions: one binding is
// selected at a time, adjustments are intermediate edits, releasing the
// key commits.
type Controller struct {
	panel    *Panel
	bindings []Binding
	selected int
}

// NewController creates a controller over every binding
func NewController(p *Panel) *Controller {
	return &Controller{panel: p, bindings: Bindings()}
}

// Selected returns the binding being edited
func (c *Controller) Selected() Binding {
	return c.bindings[c.selected]
}

// SelectedIndex returns the position of the selected binding
func (c *Controller) SelectedIndex() int {
	return c.selected
}

// Handle applies one action. repeat multiplies the adjustment for held keys.
func (c *Controller) Handle(a Action, repeat int) {
	if repeat < 1 {
		repeat = 1
	}
	switch a {
	case SelectNext:
		c.selected = (c.selected + 1) % len(c.bindings)
	case SelectPrev:
		c.selected = (c.selected + len(c.bindings) - 1) % len(c.bindings)
	case Increase:
		c.adjust(float64(repeat))
	case Decrease:
		c.adjust(-float64(repeat))
	case Release:
		c.panel.Commit()
	case ResetAll:
		c.panel.Reset()
		c.panel.Commit()
	}
}

func (c *Controller) adjust(steps float64) {
	b := c.Selected()
	params := c.panel.Params()
	if b.Kind == Color {
		cur, _ := params.Color(b.Field)
		c.panel.SetColor(b.Field, cur.RotateHue(steps*hueStep))
		return
	}
	cur, _ := params.Number(b.Field)
	c.panel.SetNumber(b.Field, cur+steps*b.Step)
}

// Label describes the selected binding and its value, e.g. "spin: 1.2"
func (c *Controller) Label() string {
	b := c.Selected()
	params := c.panel.Params()
	if b.Kind == Color {
		v, _ := params.Color(b.Field)
		return fmt.Sprintf("%s: %s", b.Field, v.Hex())
	}
	v, _ := params.Number(b.Field)
	return fmt.Sprintf("%s: %s", b.Field, formatNumber(b, v))
}

// Rows returns every binding with its current slider fraction or color,
// for drawing the panel
func (c *Controller) Rows() []Row {
	params := c.panel.Params()
	rows := make([]Row, len(c.bindings))
	for i, b := range c.bindings {
		rows[i] = Row{Binding: b, Selected: i == c.selected}
		if b.Kind == Color {
			rows[i].Color, _ = params.Color(b.Field)
			rows[i].Text = fmt.Sprintf("%s %s", b.Field, rows[i].Color.Hex())
			continue
		}
		v, _ := params.Number(b.Field)
		rows[i].Fraction = b.Fraction(v)
		rows[i].Text = fmt.Sprintf("%s %s", b.Field, formatNumber(b, v))
	}
	return rows
}

// Row is one drawable panel line
type Row struct {
	Binding  Binding
	Selected bool
	Fraction float64
	Color    core.RGB
	Text     string
}

func formatNumber(b Binding, v float64) string {
	switch {
	case b.Step >= 1:
		return fmt.Sprintf("%.0f", v)
	case b.Step >= 0.1:
		return fmt.Sprintf("%.1f", v)
	case b.Step >= 0.01:
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.3f", v)
}
