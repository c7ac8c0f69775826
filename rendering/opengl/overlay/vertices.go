package overlay

import "galaxygenerator/rendering/hud"

// vertices expands quads into two triangles each, 6 floats per vertex
func vertices(quads []hud.Quad) []float32 {
	out := make([]float32, 0, len(quads)*6*6)
	for _, q := range quads {
		c := q.Color
		x0, y0, x1, y1 := q.X, q.Y, q.X+q.W, q.Y+q.H
		out = append(out,
			x0, y0, c[0], c[1], c[2], c[3],
			x1, y0, c[0], c[1], c[2], c[3],
			x0, y1, c[0], c[1], c[2], c[3],
			x1, y0, c[0], c[1], c[2], c[3],
			x1, y1, c[0], c[1], c[2], c[3],
			x0, y1, c[0], c[1], c[2], c[3],
		)
	}
	return out
}
