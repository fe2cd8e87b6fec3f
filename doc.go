// Package voronoi computes Voronoi-tessellated renderings of raster images.
//
// # Overview
//
// Given a source image, the package selects N generator points ("sites")
// biased by image content, partitions every pixel to its nearest site, and
// colors each cell by the average of the source pixels it covers. An
// [Engine] owns the image, the site collection, the PRNG, and history, and
// exposes a synchronous step/compute pair a host can drive either
// interactively (live canvas) or in a tight offline loop (video encoding).
//
// # Architecture
//
// The library is organized into:
//   - Root package: site sampling, physics, count control, history, Engine
//   - backend/: the ComputeBackend contract and its registry
//   - backend/cpu: bucket-queue jump-flood CPU compute
//   - backend/gpu: cone-rendering GPU compute, against a host-injected
//     device (gogpu/gpucontext, gogpu/gputypes, gogpu/naga)
//
// # Coordinate system
//
// Standard image coordinates: origin (0,0) at top-left, X increases right,
// Y increases down. A pixel at column x, row y occupies the unit square
// with center (x+0.5, y+0.5).
//
// # Determinism
//
// Animation determinism depends on the exact PRNG algorithm specified for
// [PRNG] (Mulberry32). Given identical seeds, an identical image, and an
// identical parameter sequence, two independent runs produce identical site
// positions, velocities, and per-pixel cell assignment at every step.
package voronoi

// Version information for the voronoi module.
const (
	// Version is the current version of the library.
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version.
	VersionMajor = 0

	// VersionMinor is the minor version.
	VersionMinor = 1
)
