package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, RGB{1, 0, 0}, c)

	c, err = ParseHex("#0f0")
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 1, 0}, c)

	_, err = ParseHex("ff0000")
	assert.Error(t, err)

	assert.Equal(t, "#1b3984", MustParseHex("#1b3984").Hex())
	assert.Panics(t, func() { MustParseHex("#zz") })
}

func TestLerp(t *testing.T) {
	from := RGB{1, 0, 0}
	to := RGB{0, 0, 1}

	assert.Equal(t, from, from.Lerp(to, 0))
	assert.Equal(t, to, from.Lerp(to, 1))

	mid := from.Lerp(to, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-12)
	assert.InDelta(t, 0.0, mid.G, 1e-12)
	assert.InDelta(t, 0.5, mid.B, 1e-12)
}

func TestRotateHue(t *testing.T) {
	red := RGB{1, 0, 0}

	green := red.RotateHue(120)
	assert.InDelta(t, 0.0, green.R, 1e-9)
	assert.InDelta(t, 1.0, green.G, 1e-9)

	back := red.RotateHue(-360)
	assert.InDelta(t, 1.0, back.R, 1e-9)
}
