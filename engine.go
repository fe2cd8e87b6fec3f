package voronoi

import (
	"fmt"
	"log/slog"
)

// Engine is the stateful driver tying together image input, a site
// collection, physics, split/merge count control, a scrubbable history,
// and a pluggable ComputeBackend. It is the single entry point a host
// application uses to animate and render a Voronoi tessellation frame
// by frame.
//
// Engine is not safe for concurrent use; callers serialize access (e.g.
// one Engine per animation worker).
type Engine struct {
	cb               ComputeBackend
	fallback         ComputeBackend
	backendReady     bool
	fallbackReported bool

	logger   *slog.Logger
	maxSites int
	rng      *PRNG

	img     *Image
	sites   *SiteCollection
	sampler SiteSampler
	physics Physics
	counter CountController
	history *HistoryRing

	lastResult *Result
}

// NewEngine constructs an Engine. With no options, Compute fails with
// ErrNoBackend until WithBackend supplies one; the seed defaults to 1
// and the site collection is capped at DefaultMaxSites.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}
	return &Engine{
		cb:       o.backend,
		fallback: o.fallback,
		logger:   logger,
		maxSites: o.maxSites,
		rng:      NewPRNG(o.seed),
		history:  NewHistoryRing(0),
	}
}

// SetImage installs a new source image. rgba must have length w*h*4.
// Any previously placed sites are clamped into the new bounds rather
// than discarded, and the history is reset (a resized image invalidates
// prior physics state).
func (e *Engine) SetImage(rgba []uint8, w, h int) error {
	if w > 0 && h > 0 && w*h > MaxImagePixels {
		return resourceErrorf("engine: SetImage: %dx%d (%d pixels) exceeds the %d-pixel limit", w, h, w*h, MaxImagePixels)
	}
	img := NewImage(rgba, w, h)
	if !img.Valid() {
		return configErrorf("engine: SetImage: invalid dimensions %dx%d for %d bytes", w, h, len(rgba))
	}
	e.img = img
	if e.sites != nil {
		e.sites.Clamp(float64(w), float64(h))
		e.history.Reset(e.sites)
	}
	e.lastResult = nil
	return nil
}

// SetSitesFromSampler replaces the site collection with n sites drawn
// from the current image via SiteSampler, biased by brightness
// (inverseBias false) or darkness (inverseBias true). Requires an image
// to already be set.
func (e *Engine) SetSitesFromSampler(n int, inverseBias bool, seed uint32) error {
	if !e.img.Valid() {
		return configErrorf("engine: SetSitesFromSampler: no image set")
	}
	positions, err := e.sampler.Sample(e.img, n, inverseBias, seed)
	if err != nil {
		return err
	}
	e.installSites(positions, seed)
	return nil
}

// SetSites replaces the site collection with explicit positions,
// assigning random unit velocities keyed by seed.
func (e *Engine) SetSites(positions []Position, seed uint32) {
	e.installSites(positions, seed)
}

func (e *Engine) installSites(positions []Position, seed uint32) {
	sc := NewSiteCollection(positions, seed)
	sc.MaxSites = e.maxSites
	e.sites = sc
	e.history.Reset(sc)
	e.lastResult = nil
}

// Step advances the site collection by one physics tick and appends the
// resulting state to history. See Physics.Step for parameter semantics.
// The Lloyd centroid pull, when active, steers toward the previous
// Compute call's per-cell centroids.
func (e *Engine) Step(speed, dt, pull, theta, sigma float64) error {
	if e.sites == nil || e.sites.Len() == 0 {
		return configErrorf("engine: Step: no sites set")
	}
	if !e.img.Valid() {
		return configErrorf("engine: Step: no image set")
	}

	var prevCentroids []Position
	if e.lastResult != nil {
		prevCentroids = e.lastResult.CellCentroid
	}

	e.physics.Step(e.sites, e.rng, speed, dt, pull, theta, sigma, prevCentroids, float64(e.img.W), float64(e.img.H))
	e.history.Append(e.sites)
	return nil
}

// AdjustCount grows or shrinks the site collection toward target by
// splitting or merging sites, at a rate governed by the doubling time
// tau over step dt (tau <= 0 performs the whole transition in one
// call). strategy selects how split sources are chosen. Because merges
// and splits invalidate cell index stability, AdjustCount resets history
// and discards the last compute result — but only on a call that
// actually split or merged a site. A call that leaves the count
// unchanged (already at target, or dt too small for the fractional
// accumulator to cross one this tick) is a no-op and leaves history and
// the last compute result untouched, so a grow/shrink phase that calls
// AdjustCount every frame doesn't wipe scrubbable history down to a
// single snapshot on frames where nothing actually mutated.
func (e *Engine) AdjustCount(target int, tau, dt float64, strategy SplitStrategy) error {
	if e.sites == nil {
		return configErrorf("engine: AdjustCount: no sites set")
	}
	if target < 0 || target > e.maxSites {
		return configErrorf("engine: AdjustCount: target=%d out of range [0,%d]", target, e.maxSites)
	}

	var cellAreas []int32
	var prevCentroids []Position
	var farthest Position
	var cellOf []int32
	w, h := 0, 0
	if e.lastResult != nil {
		cellAreas = e.lastResult.CellArea
		prevCentroids = e.lastResult.CellCentroid
		farthest = e.lastResult.FarthestPoint
		cellOf = e.lastResult.CellOf
		w, h = e.lastResult.W, e.lastResult.H
	}

	added, removed := e.counter.Adjust(e.sites, target, tau, dt, strategy, cellAreas, prevCentroids, farthest, cellOf, w, h, e.rng)
	if len(added) > 0 || len(removed) > 0 {
		e.history.Reset(e.sites)
		e.lastResult = nil
	}
	return nil
}

// Compute runs the active ComputeBackend over the current image and
// sites, caching the result for the next Step's centroid pull and the
// next AdjustCount's area/farthest-point inputs.
//
// Fails with ErrNoBackend if no backend was configured via WithBackend,
// or with ErrInvalidConfig if no image or sites are set, or if the site
// count exceeds the image's pixel count. The first time the primary
// backend fails to initialize, Compute swaps in the WithFallbackBackend
// backend (if any) for the remainder of the Engine's life and returns
// ErrBackendUnavailable for that one call; subsequent calls proceed
// normally on the fallback backend. Without a fallback, the failure is
// permanent: every call returns ErrBackendUnavailable.
func (e *Engine) Compute() (*Result, error) {
	if !e.img.Valid() {
		return nil, configErrorf("engine: Compute: no image set")
	}
	if e.sites == nil || e.sites.Len() == 0 {
		return nil, configErrorf("engine: Compute: no sites set")
	}
	if e.sites.Len() > e.img.W*e.img.H {
		return nil, configErrorf("engine: Compute: %d sites exceeds %d pixels", e.sites.Len(), e.img.W*e.img.H)
	}

	if err := e.ensureBackendReady(); err != nil {
		return nil, err
	}

	res, err := e.cb.Compute(e.img, e.sites)
	if err != nil {
		return nil, fmt.Errorf("engine: Compute: %w", err)
	}
	e.lastResult = res
	return res, nil
}

// ensureBackendReady initializes the configured backend on first use,
// swapping to the injected fallback backend (WithFallbackBackend)
// exactly once if the primary backend fails to initialize.
func (e *Engine) ensureBackendReady() error {
	if e.backendReady {
		return nil
	}
	if e.cb == nil {
		return fmt.Errorf("engine: %w", ErrNoBackend)
	}

	initErr := e.cb.Init()
	if initErr == nil {
		e.backendReady = true
		return nil
	}
	if e.fallback == nil {
		return fmt.Errorf("engine: %w: %v", ErrBackendUnavailable, initErr)
	}
	if fallbackErr := e.fallback.Init(); fallbackErr != nil {
		return fmt.Errorf("engine: %w: %v", ErrBackendUnavailable, fallbackErr)
	}

	if !e.fallbackReported {
		e.logger.Warn("voronoi: backend init failed, falling back",
			"backend", e.cb.Name(), "fallback", e.fallback.Name(), "error", initErr)
		e.fallbackReported = true
	}
	e.cb = e.fallback
	e.fallback = nil
	e.backendReady = true
	return fmt.Errorf("engine: %w: %v", ErrBackendUnavailable, initErr)
}

// StepBack moves the history cursor one frame earlier, restoring that
// frame's site positions and velocities. Fails with ErrInvalidConfig if
// already at the earliest retained frame.
func (e *Engine) StepBack() error {
	sc, ok := e.history.StepBack()
	if !ok {
		return configErrorf("engine: StepBack: already at earliest retained frame")
	}
	e.sites = sc
	e.lastResult = nil
	return nil
}

// StepForward moves the history cursor one frame later, restoring that
// frame's site positions and velocities, without re-running physics.
// Fails with ErrInvalidConfig if already at the head frame — from there,
// advancing requires a new Step call.
func (e *Engine) StepForward() error {
	sc, ok := e.history.AdvanceCursor()
	if !ok {
		return configErrorf("engine: StepForward: already at head, call Step to advance")
	}
	e.sites = sc
	e.lastResult = nil
	return nil
}

// Sites returns the current site collection. The returned pointer is
// borrowed; callers must not mutate it.
func (e *Engine) Sites() *SiteCollection { return e.sites }

// LastResult returns the most recent Compute result, or nil if Compute
// has not yet been called (or was invalidated by AdjustCount/StepBack).
func (e *Engine) LastResult() *Result { return e.lastResult }
