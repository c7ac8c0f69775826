package core

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// PointCloud holds one galaxy worth of vertex data.
// Positions[i] and Colors[i] describe the same point.
type PointCloud struct {
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3
}

func newPointCloud(count int) *PointCloud {
	return &PointCloud{
		Positions: make([]mgl32.Vec3, count),
		Colors:    make([]mgl32.Vec3, count),
	}
}

// Len returns the point count
func (pc *PointCloud) Len() int {
	return len(pc.Positions)
}

// Bounds returns the largest XZ-plane distance from the origin and the
// largest absolute Y over all points
func (pc *PointCloud) Bounds() (planar, vertical float64) {
	for _, p := range pc.Positions {
		r := math.Hypot(float64(p.X()), float64(p.Z()))
		if r > planar {
			planar = r
		}
		if y := math.Abs(float64(p.Y())); y > vertical {
			vertical = y
		}
	}
	return planar, vertical
}

// Generate fills a new point cloud for params using src for every random draw
func Generate(params ParameterSet, inside, outside RGB, src Source) (*PointCloud, error) {
	if err := params.checkGeneration(inside, outside); err != nil {
		return nil, err
	}
	pc := newPointCloud(params.Count)
	fillRange(pc, params, inside, outside, src, 0, params.Count)
	return pc, nil
}

// fillRange computes points [start, end). Branch assignment uses the
// global index so chunks can be filled independently.
func fillRange(pc *PointCloud, params ParameterSet, inside, outside RGB, src Source, start, end int) {
	branches := float64(params.Branches)
	power := params.RandomnessPower

	for i := start; i < end; i++ {
		radius := (1 - math.Pow(src.Float64(), 0.5)) * params.Radius
		spinAngle := params.Spin * radius

		randomX := math.Pow(src.Float64(), power) * sign(src)
		randomY := math.Pow(src.Float64(), power+2) * sign(src)
		randomZ := math.Pow(src.Float64(), power) * sign(src)

		branchAngle := float64(i%params.Branches) / branches * math.Pi * 2
		angle := branchAngle + spinAngle

		pc.Positions[i] = mgl32.Vec3{
			float32(math.Cos(angle)*radius + randomX),
			float32(randomY * (src.Float64() - 0.5) * 3),
			float32(math.Sin(angle)*radius + randomZ),
		}
		pc.Colors[i] = inside.Lerp(outside, radius/params.Radius).Vec3()
	}
}

func sign(src Source) float64 {
	if src.Bool() {
		return 1
	}
	return -1
}

// Generator fills point clouds across several goroutines. Each chunk
// draws from its own PCG stream derived from Seed, so a fixed Seed and
// Workers pair reproduces the same cloud.
type Generator struct {
	Workers int
	Seed    uint64 // 0 picks a fresh seed per call
}

// minChunk keeps tiny clouds from being split into goroutines
const minChunk = 4096

// Generate validates params and fills the cloud, returning early if ctx
// is cancelled between chunks
func (g Generator) Generate(ctx context.Context, params ParameterSet, inside, outside RGB) (*PointCloud, error) {
	if err := params.checkGeneration(inside, outside); err != nil {
		return nil, err
	}

	seed := g.Seed
	if seed == 0 {
		seed = TimeSeed()
	}

	workers := g.Workers
	if maxWorkers := params.Count / minChunk; workers > maxWorkers {
		workers = maxWorkers
	}
	pc := newPointCloud(params.Count)
	if workers <= 1 {
		fillRange(pc, params, inside, outside, NewSource(seed, 0), 0, params.Count)
		return pc, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	chunk := (params.Count + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, params.Count)
		src := NewSource(seed, uint64(w))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fillRange(pc, params, inside, outside, src, start, end)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pc, nil
}
