// Package scene owns the live galaxy and the contract a renderer must
// satisfy to display it.
package scene

import "galaxygenerator/core"

// Disposable frees GPU-side storage
type Disposable interface {
	Dispose()
}

// Geometry is a buffer-backed point set uploaded to the renderer
type Geometry interface {
	Disposable
	PointCount() int
}

// Material describes how points are drawn
type Material interface {
	Disposable
	Options() MaterialOptions
}

// Node is a geometry+material pair attached to the scene graph
type Node interface {
	SetRotationY(radians float32)
}

// MaterialOptions configures a point material
type MaterialOptions struct {
	Size             float32
	SizeAttenuation  bool
	DepthWrite       bool
	AdditiveBlending bool
	VertexColors     bool
}

// GalaxyMaterial is the material every galaxy is drawn with
func GalaxyMaterial(size float64) MaterialOptions {
	return MaterialOptions{
		Size:             float32(size),
		SizeAttenuation:  true,
		DepthWrite:       false,
		AdditiveBlending: true,
		VertexColors:     true,
	}
}

// Backend is everything the lifecycle manager needs from a renderer
type Backend interface {
	NewGeometry(pc *core.PointCloud) (Geometry, error)
	NewPointsMaterial(opts MaterialOptions) (Material, error)
	Add(g Geometry, m Material) Node
	Remove(n Node)
}
