// Package hud lays out the control panel drawn over the galaxy.
package hud

import (
	"github.com/go-gl/mathgl/mgl32"

	"galaxygenerator/panel"
)

// Panel geometry in pixels, top-left origin
const (
	marginX    = 10
	marginY    = 10
	rowHeight  = 22
	trackInset = 10
	trackWidth = 240
	trackH     = 10
	boxWidth   = trackWidth + 2*trackInset
)

var (
	backgroundColor = mgl32.Vec4{0.05, 0.05, 0.12, 0.75}
	selectedColor   = mgl32.Vec4{0.25, 0.25, 0.45, 0.9}
	trackColor      = mgl32.Vec4{0.3, 0.3, 0.3, 1.0}
	fillColor       = mgl32.Vec4{0.4, 0.75, 1.0, 1.0}
)

// Quad is an axis-aligned filled rectangle
type Quad struct {
	X, Y, W, H float32
	Color      mgl32.Vec4
}

// Layout turns panel rows into the quads drawn for them: a background box,
// a highlight behind the selected row, and per row either a slider track
// with its fill or a color swatch.
func Layout(rows []panel.Row) []Quad {
	quads := []Quad{{
		X: marginX, Y: marginY,
		W: boxWidth, H: float32(len(rows)*rowHeight + trackInset),
		Color: backgroundColor,
	}}

	for i, row := range rows {
		y := float32(marginY + trackInset/2 + i*rowHeight)
		if row.Selected {
			quads = append(quads, Quad{X: marginX, Y: y, W: boxWidth, H: rowHeight, Color: selectedColor})
		}

		x := float32(marginX + trackInset)
		trackY := y + (rowHeight-trackH)/2
		if row.Binding.Kind == panel.Color {
			quads = append(quads, Quad{X: x, Y: trackY, W: trackWidth, H: trackH, Color: row.Color.Vec3().Vec4(1)})
			continue
		}
		quads = append(quads, Quad{X: x, Y: trackY, W: trackWidth, H: trackH, Color: trackColor})
		if fill := float32(row.Fraction) * trackWidth; fill > 0 {
			quads = append(quads, Quad{X: x, Y: trackY, W: fill, H: trackH, Color: fillColor})
		}
	}
	return quads
}

// TextOrigin is where row i's label is written, to the right of the box
func TextOrigin(i int) (x, y float32) {
	return marginX + boxWidth + trackInset, float32(marginY + trackInset/2 + i*rowHeight + (rowHeight-trackH)/2)
}
