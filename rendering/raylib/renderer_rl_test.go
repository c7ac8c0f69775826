package raylib

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxygenerator/core"
	"galaxygenerator/scene"
)

func TestColor(t *testing.T) {
	assert.Equal(t, rl.NewColor(255, 96, 48, 255), color(core.MustParseHex("#ff6030").Vec3()))
	assert.Equal(t, rl.NewColor(0, 255, 0, 255), color(mgl32.Vec3{-0.5, 1.5, 0}), "channels clamp")
}

// The backend methods below keep everything CPU-side, so no window is needed.
func TestBackendLifecycle(t *testing.T) {
	r := &GalaxyRenderer{}

	pc, err := core.Generator{Workers: 1, Seed: 7}.Generate(t.Context(), core.DefaultParameters().Clamp(), core.MustParseHex("#ff6030"), core.MustParseHex("#1b3984"))
	require.NoError(t, err)

	g, err := r.NewGeometry(pc)
	require.NoError(t, err)
	assert.Equal(t, pc.Len(), g.PointCount())

	m, err := r.NewPointsMaterial(scene.GalaxyMaterial(0.01))
	require.NoError(t, err)
	assert.True(t, m.Options().AdditiveBlending)

	n := r.Add(g, m)
	require.Len(t, r.nodes, 1)
	n.SetRotationY(0.5)
	assert.Equal(t, float32(0.5), r.nodes[0].rotationY)

	g.Dispose()
	assert.Zero(t, g.PointCount())
	r.Remove(n)
	assert.Empty(t, r.nodes)
}

func TestNewGeometryRejectsMismatchedBuffers(t *testing.T) {
	r := &GalaxyRenderer{}
	_, err := r.NewGeometry(&core.PointCloud{Positions: make([]mgl32.Vec3, 2), Colors: make([]mgl32.Vec3, 1)})
	assert.Error(t, err)
}
