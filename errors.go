package voronoi

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by this package. Callers should use
// [errors.Is] against these, since the concrete errors returned by
// [Engine] methods wrap them with operation-specific context via %w.
var (
	// ErrInvalidConfig is returned for caller errors: N > W*H, N == 0 at
	// compute time, an unset image, or negative parameters where
	// non-negative values are required.
	ErrInvalidConfig = errors.New("voronoi: invalid config")

	// ErrBackendUnavailable is returned when the Engine's backend fails
	// to initialize. With a WithFallbackBackend backend configured, it is
	// returned once and the Engine uses the fallback for the remainder of
	// the session; without one, every Compute call returns it.
	ErrBackendUnavailable = errors.New("voronoi: backend unavailable")

	// ErrNoBackend is returned by Compute when no ComputeBackend was
	// ever provided via WithBackend. This package never resolves a
	// default backend itself (doing so would require importing
	// backend/, which imports this package for Image/SiteCollection/
	// Result); the host selects and injects one.
	ErrNoBackend = errors.New("voronoi: no backend configured")

	// ErrResourceExhausted is returned by SetImage when W*H exceeds
	// MaxImagePixels, before any W*H-sized buffer is allocated. No
	// partial mutation of Engine state occurs when this error is returned.
	ErrResourceExhausted = errors.New("voronoi: resource exhausted")
)

// MaxImagePixels bounds W*H for SetImage. Both compute backends size
// their cell_of and depth scratch buffers at W*H pixels; above this
// limit that allocation is rejected up front instead of attempting it
// and failing deep inside a backend's Compute.
const MaxImagePixels = 64 * 1024 * 1024

// configErrorf wraps ErrInvalidConfig with formatted context.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// resourceErrorf wraps ErrResourceExhausted with formatted context.
func resourceErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrResourceExhausted}, args...)...)
}
