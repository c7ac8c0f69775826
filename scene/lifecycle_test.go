package scene

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxygenerator/core"
)

// fakeBackend records every call in order
type fakeBackend struct {
	events      []string
	attached    map[*fakeNode]bool
	nextID      int
	materialErr error
}

type fakeGeometry struct {
	b        *fakeBackend
	id       int
	count    int
	disposed int
}

func (g *fakeGeometry) Dispose() {
	g.disposed++
	g.b.events = append(g.b.events, fmt.Sprintf("dispose-geometry-%d", g.id))
}

func (g *fakeGeometry) PointCount() int { return g.count }

type fakeMaterial struct {
	b        *fakeBackend
	id       int
	opts     MaterialOptions
	disposed int
}

func (m *fakeMaterial) Dispose() {
	m.disposed++
	m.b.events = append(m.b.events, fmt.Sprintf("dispose-material-%d", m.id))
}

func (m *fakeMaterial) Options() MaterialOptions { return m.opts }

type fakeNode struct {
	id       int
	rotation float32
}

func (n *fakeNode) SetRotationY(r float32) { n.rotation = r }

func newFakeBackend() *fakeBackend {
	return &fakeBackend{attached: map[*fakeNode]bool{}}
}

func (b *fakeBackend) NewGeometry(pc *core.PointCloud) (Geometry, error) {
	b.nextID++
	b.events = append(b.events, fmt.Sprintf("geometry-%d", b.nextID))
	return &fakeGeometry{b: b, id: b.nextID, count: pc.Len()}, nil
}

func (b *fakeBackend) NewPointsMaterial(opts MaterialOptions) (Material, error) {
	if b.materialErr != nil {
		return nil, b.materialErr
	}
	b.events = append(b.events, fmt.Sprintf("material-%d", b.nextID))
	return &fakeMaterial{b: b, id: b.nextID, opts: opts}, nil
}

func (b *fakeBackend) Add(g Geometry, m Material) Node {
	n := &fakeNode{id: g.(*fakeGeometry).id}
	b.attached[n] = true
	b.events = append(b.events, fmt.Sprintf("add-%d", n.id))
	return n
}

func (b *fakeBackend) Remove(n Node) {
	fn := n.(*fakeNode)
	delete(b.attached, fn)
	b.events = append(b.events, fmt.Sprintf("remove-%d", fn.id))
}

func seededGenerator() Generator {
	return core.Generator{Seed: 77}
}

func smallParams() core.ParameterSet {
	p := core.DefaultParameters()
	p.Count = 300
	return p
}

func TestRegenerateFromEmpty(t *testing.T) {
	b := newFakeBackend()
	m := NewManager(b, seededGenerator(), nil)
	assert.Equal(t, Empty, m.State())
	assert.Nil(t, m.Live())

	p := smallParams()
	live, err := m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.NoError(t, err)

	assert.Equal(t, Live, m.State())
	assert.Same(t, live, m.Live())
	assert.Equal(t, 300, live.Geometry.PointCount())
	assert.Equal(t, GalaxyMaterial(p.Size), live.Material.Options())
	assert.Len(t, b.attached, 1)
	assert.Equal(t, []string{"geometry-1", "material-1", "add-1"}, b.events)
}

func TestRegenerateReleasesBeforeAttach(t *testing.T) {
	b := newFakeBackend()
	m := NewManager(b, seededGenerator(), nil)
	p := smallParams()

	first, err := m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.NoError(t, err)
	second, err := m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.NoError(t, err)

	assert.Len(t, b.attached, 1, "exactly one galaxy attached")
	assert.True(t, b.attached[second.Node.(*fakeNode)])
	assert.True(t, first.Released())
	assert.Equal(t, 1, first.Geometry.(*fakeGeometry).disposed)
	assert.Equal(t, 1, first.Material.(*fakeMaterial).disposed)

	assert.Equal(t, []string{
		"geometry-1", "material-1", "add-1",
		"dispose-geometry-1", "dispose-material-1", "remove-1",
		"geometry-2", "material-2", "add-2",
	}, b.events)
}

func TestRegenerateFailureLeavesEmpty(t *testing.T) {
	b := newFakeBackend()
	m := NewManager(b, seededGenerator(), nil)
	p := smallParams()

	first, err := m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.NoError(t, err)

	bad := p
	bad.Branches = 0
	live, err := m.Regenerate(bad, bad.InsideColor, bad.OutsideColor)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Nil(t, live)

	assert.Equal(t, Empty, m.State())
	assert.True(t, first.Released(), "previous galaxy is not restored")
	assert.Empty(t, b.attached)

	// Empty --fail--> Empty
	_, err = m.Regenerate(bad, bad.InsideColor, bad.OutsideColor)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Equal(t, Empty, m.State())

	// Empty --ok--> Live
	_, err = m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.NoError(t, err)
	assert.Equal(t, Live, m.State())
	assert.Equal(t, 1, first.Geometry.(*fakeGeometry).disposed, "release ran once")
}

func TestRegenerateMaterialFailureDisposesGeometry(t *testing.T) {
	b := newFakeBackend()
	b.materialErr = errors.New("shader compile failed")
	m := NewManager(b, seededGenerator(), nil)
	p := smallParams()

	_, err := m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrInvalidParameter)
	assert.ErrorIs(t, err, b.materialErr)
	assert.Equal(t, Empty, m.State())
	assert.Equal(t, []string{"geometry-1", "dispose-geometry-1"}, b.events)
}

func TestRegenerateUsesExplicitColors(t *testing.T) {
	b := newFakeBackend()
	var gotInside, gotOutside core.RGB
	gen := GeneratorFunc(func(p core.ParameterSet, inside, outside core.RGB) (*core.PointCloud, error) {
		gotInside, gotOutside = inside, outside
		return core.Generate(p, inside, outside, core.NewSource(1, 0))
	})
	m := NewManager(b, gen, nil)

	p := smallParams()
	_, err := m.Regenerate(p, core.RGB{R: 1}, core.RGB{B: 1})
	require.NoError(t, err)
	assert.Equal(t, core.RGB{R: 1}, gotInside)
	assert.Equal(t, core.RGB{B: 1}, gotOutside)
}

func TestAnimateAndClose(t *testing.T) {
	b := newFakeBackend()
	m := NewManager(b, seededGenerator(), nil)

	// no galaxy, nothing to rotate
	m.Animate(time.Second)

	p := smallParams()
	live, err := m.Regenerate(p, p.InsideColor, p.OutsideColor)
	require.NoError(t, err)

	m.Animate(100 * time.Second)
	assert.InDelta(t, 1.0, live.Node.(*fakeNode).rotation, 1e-6)

	m.Close()
	assert.Equal(t, Empty, m.State())
	assert.True(t, live.Released())
	assert.Empty(t, b.attached)

	live.Release()
	assert.Equal(t, 1, live.Geometry.(*fakeGeometry).disposed)
}
