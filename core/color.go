package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a linear color with channels in [0,1]
type RGB struct {
	R, G, B float64
}

// ParseHex parses "#rrggbb" or "#rgb"
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB{c.R, c.G, c.B}, nil
}

// MustParseHex is ParseHex for package-level literals
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex formats the color as "#rrggbb"
func (c RGB) Hex() string {
	return c.colorful().Clamped().Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

// Lerp moves from c toward to by t, per channel
func (c RGB) Lerp(to RGB, t float64) RGB {
	m := c.colorful().BlendRgb(to.colorful(), t)
	return RGB{m.R, m.G, m.B}
}

// RotateHue shifts the hue by deg degrees keeping saturation and value
func (c RGB) RotateHue(deg float64) RGB {
	h, s, v := c.colorful().Hsv()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	m := colorful.Hsv(h, s, v).Clamped()
	return RGB{m.R, m.G, m.B}
}

func (c RGB) finite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

// Vec3 converts to a float32 vector for vertex buffers
func (c RGB) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
