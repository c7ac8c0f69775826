// Command galaxy-bench times point cloud generation without a window and
// prints the radial distribution of the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	"galaxygenerator/config"
	"galaxygenerator/core"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Settings file for the galaxy parameters")
		count      = flag.Int("count", 0, "Point count (overrides settings)")
		workers    = flag.Int("workers", runtime.NumCPU(), "Generator goroutines")
		runs       = flag.Int("runs", 5, "Timed runs per worker setting")
		seed       = flag.Uint64("seed", 1, "Random seed")
		bins       = flag.Int("bins", 20, "Radial histogram bins")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	params, err := settings.Galaxy.Params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid galaxy settings: %v\n", err)
		os.Exit(1)
	}
	if *count > 0 {
		params.Count = *count
	}

	fmt.Println("=== Galaxy Generation Benchmark ===")
	fmt.Printf("Points: %d, branches: %d, radius: %.2f, spin: %.1f, power: %.0f\n",
		params.Count, params.Branches, params.Radius, params.Spin, params.RandomnessPower)

	ctx := context.Background()
	var cloud *core.PointCloud
	for _, w := range []int{1, *workers} {
		gen := core.Generator{Workers: w, Seed: *seed}
		var total time.Duration
		for i := 0; i < *runs; i++ {
			start := time.Now()
			cloud, err = gen.Generate(ctx, params, params.InsideColor, params.OutsideColor)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
				os.Exit(1)
			}
			total += time.Since(start)
		}
		avg := total / time.Duration(max(*runs, 1))
		fmt.Printf("Workers %2d: %8.3fms per cloud, %6.1f Mpoints/s\n",
			w, float64(avg.Microseconds())/1000, float64(params.Count)/avg.Seconds()/1e6)
		if *workers == 1 {
			break
		}
	}

	planar, vertical := cloud.Bounds()
	fmt.Printf("\nBounds: planar %.3f (radius %.3f), vertical %.3f\n", planar, params.Radius, vertical)

	fmt.Println("\nRadial distribution (distance from the spin axis / radius):")
	fmt.Print(formatHistogram(radialHistogram(cloud, params.Radius, *bins), 50))
}

// radialHistogram buckets points by XZ distance over [0, radius]. Jitter can
// carry a point past radius; those land in the last bucket.
func radialHistogram(pc *core.PointCloud, radius float64, bins int) []int {
	if bins < 1 {
		bins = 1
	}
	counts := make([]int, bins)
	for _, p := range pc.Positions {
		d := math.Hypot(float64(p[0]), float64(p[2])) / radius
		i := int(d * float64(bins))
		counts[min(max(i, 0), bins-1)]++
	}
	return counts
}

// formatHistogram draws one bar per bucket, scaled so the largest is width
func formatHistogram(counts []int, width int) string {
	peak := 0
	total := 0
	for _, c := range counts {
		peak = max(peak, c)
		total += c
	}

	var b strings.Builder
	for i, c := range counts {
		bar := 0
		if peak > 0 {
			bar = c * width / peak
		}
		share := 0.0
		if total > 0 {
			share = 100 * float64(c) / float64(total)
		}
		lo := float64(i) / float64(len(counts))
		fmt.Fprintf(&b, "%4.2f | %-*s %5.1f%%\n", lo, width, strings.Repeat("#", bar), share)
	}
	return b.String()
}
