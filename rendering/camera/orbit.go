// Package camera is the damped orbit camera shared by the viewers.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera defaults for the galaxy view
const (
	defaultFov     = 75
	defaultNear    = 0.1
	defaultFar     = 100
	defaultDamping = 0.05
	minPolar       = 1e-3
	minDistance    = 0.5
	maxDistance    = 60
	rotateSpeed    = 1.0
	zoomStep       = 0.95
)

// Orbit circles a target point. Drag input accumulates as a pending
// angular delta that Update bleeds off by Damping each frame, so the view
// keeps gliding after the mouse stops.
type Orbit struct {
	Target  mgl32.Vec3
	Damping float32 // 0 applies input immediately
	Fov     float32 // degrees
	Near    float32
	Far     float32

	theta    float64 // azimuth around +Y, from +Z
	phi      float64 // polar angle from +Y
	distance float64

	dTheta float64
	dPhi   float64
	zoom   float64
}

// NewOrbit places a damped camera at position looking at the origin
func NewOrbit(position mgl32.Vec3) *Orbit {
	c := &Orbit{
		Damping: defaultDamping,
		Fov:     defaultFov,
		Near:    defaultNear,
		Far:     defaultFar,
		zoom:    1,
	}
	x, y, z := float64(position[0]), float64(position[1]), float64(position[2])
	c.distance = math.Sqrt(x*x + y*y + z*z)
	if c.distance > 0 {
		c.theta = math.Atan2(x, z)
		c.phi = math.Acos(clamp(y/c.distance, -1, 1))
	}
	return c
}

// Rotate turns the camera by a mouse drag of (dx, dy) pixels in a
// viewport height pixels tall. A drag across the full height is one turn.
func (c *Orbit) Rotate(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	c.dTheta -= 2 * math.Pi * dx / float64(height) * rotateSpeed
	c.dPhi -= 2 * math.Pi * dy / float64(height) * rotateSpeed
}

// Scroll dollies in for positive steps and out for negative ones
func (c *Orbit) Scroll(steps float64) {
	c.zoom *= math.Pow(zoomStep, steps)
}

// Update advances damping by one frame
func (c *Orbit) Update() {
	if c.Damping > 0 {
		d := float64(c.Damping)
		c.theta += c.dTheta * d
		c.phi += c.dPhi * d
		c.dTheta *= 1 - d
		c.dPhi *= 1 - d
	} else {
		c.theta += c.dTheta
		c.phi += c.dPhi
		c.dTheta, c.dPhi = 0, 0
	}
	c.phi = clamp(c.phi, minPolar, math.Pi-minPolar)

	c.distance = clamp(c.distance*c.zoom, minDistance, maxDistance)
	c.zoom = 1
}

// Position returns the eye point in world space
func (c *Orbit) Position() mgl32.Vec3 {
	sinPhi := math.Sin(c.phi)
	offset := mgl32.Vec3{
		float32(c.distance * sinPhi * math.Sin(c.theta)),
		float32(c.distance * math.Cos(c.phi)),
		float32(c.distance * sinPhi * math.Cos(c.theta)),
	}
	return c.Target.Add(offset)
}

// Distance from the eye to the target
func (c *Orbit) Distance() float32 {
	return float32(c.distance)
}

func (c *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *Orbit) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
