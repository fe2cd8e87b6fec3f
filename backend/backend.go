package backend

import (
	"errors"

	"github.com/gogpu/voronoi"
)

// Common backend errors.
var (
	// ErrNotAvailable is returned when a requested backend is not
	// registered.
	ErrNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when Compute is called on a backend
	// before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// ComputeBackend computes a Voronoi frame from an image and a site
// collection. Implementations must produce a cell_of assignment that
// satisfies the nearest-site contract; two conforming backends may
// disagree on at most a measure-zero set of tie pixels.
//
// ComputeBackend is modeled as an interface rather than a tagged
// variant over {CPU, GPU}, so adding a third backend never requires a
// change to this package or to the Engine that consumes it.
type ComputeBackend interface {
	// Name returns the backend identifier (e.g. "cpu", "wgpu").
	Name() string

	// Init initializes the backend. Must be called before Compute.
	Init() error

	// Close releases all backend resources. The backend must not be used
	// after Close is called.
	Close()

	// Compute returns a Result for img and sites. Fails with
	// voronoi.ErrInvalidConfig if sites is empty or img is unset.
	Compute(img *voronoi.Image, sites *voronoi.SiteCollection) (*voronoi.Result, error)
}
