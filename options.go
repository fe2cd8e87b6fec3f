package voronoi

import (
	"log/slog"
)

// EngineOption configures an Engine during construction.
//
// This package deliberately has no notion of a backend registry or a
// default backend — that lives in backend/, which imports this
// package for Image/SiteCollection/Result. A host wanting backend
// selection imports backend itself and hands the resolved value in:
//
//	import "github.com/gogpu/voronoi/backend"
//	_ "github.com/gogpu/voronoi/backend/cpu"
//
//	e := voronoi.NewEngine(
//		voronoi.WithBackend(backend.Default()),
//		voronoi.WithFallbackBackend(backend.Get("cpu")),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine construction.
type engineOptions struct {
	backend  ComputeBackend
	fallback ComputeBackend
	logger   *slog.Logger
	maxSites int
	seed     uint32
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		maxSites: DefaultMaxSites,
		seed:     1,
	}
}

// WithBackend sets the ComputeBackend the Engine drives. Without one,
// Compute fails with ErrNoBackend.
func WithBackend(b ComputeBackend) EngineOption {
	return func(o *engineOptions) {
		o.backend = b
	}
}

// WithFallbackBackend sets a second backend Compute swaps to, once,
// if the primary backend's first Init call fails (e.g. a GPU backend
// with no adapter available). Without one, a primary Init failure is
// permanent and every subsequent Compute call fails the same way.
func WithFallbackBackend(b ComputeBackend) EngineOption {
	return func(o *engineOptions) {
		o.fallback = b
	}
}

// WithLogger sets a structured logger for the Engine, used in place of
// the package-wide Logger for the warning emitted on backend fallback.
// Sampler diagnostics always go to the package-wide Logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithMaxSites caps the Engine's site collection at n, overriding
// DefaultMaxSites.
func WithMaxSites(n int) EngineOption {
	return func(o *engineOptions) {
		if n > 0 {
			o.maxSites = n
		}
	}
}

// WithSeed sets the seed of the Engine's PRNG, which drives the physics
// wander term and split/merge decisions. Sampling and initial velocity
// assignment use the seed passed to SetSitesFromSampler or SetSites
// instead. Two Engines constructed with the same seed and driven by the
// same call sequence produce identical results.
func WithSeed(seed uint32) EngineOption {
	return func(o *engineOptions) {
		o.seed = seed
	}
}
