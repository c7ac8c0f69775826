package main

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxygenerator/core"
)

func TestRadialHistogram(t *testing.T) {
	pc := &core.PointCloud{Positions: []mgl32.Vec3{
		{0, 5, 0},    // on the axis
		{3, 0, 4},    // distance 5 of 10
		{0, 0, 9.99}, // inner edge of the last bin
		{11, 0, 0},   // jittered past the rim
	}}

	counts := radialHistogram(pc, 10, 4)
	assert.Equal(t, []int{1, 0, 1, 2}, counts)
}

func TestRadialHistogramOfGeneratedCloud(t *testing.T) {
	params := core.DefaultParameters()
	params.Count = 20000
	pc, err := core.Generator{Workers: 2, Seed: 3}.Generate(t.Context(), params, params.InsideColor, params.OutsideColor)
	require.NoError(t, err)

	counts := radialHistogram(pc, params.Radius, 10)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, params.Count, sum)
	// radius = (1 - sqrt(u)) * R is densest near the core
	assert.Greater(t, counts[0], counts[9])
}

func TestFormatHistogram(t *testing.T) {
	out := formatHistogram([]int{2, 1, 0}, 4)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "####")
	assert.Contains(t, lines[0], "66.7%")
	assert.Contains(t, lines[1], "## ")
	assert.True(t, strings.HasPrefix(lines[2], "0.67 |"))
	assert.Contains(t, lines[2], "0.0%")
}
