package voronoi

// ComputeBackend is the interface Engine drives to turn an image and a
// site collection into a Result. It is satisfied structurally by any
// backend/* implementation (backend.ComputeBackend has the identical
// method set) — this package never imports backend/ itself; a host
// application that wants backend selection imports backend, resolves a
// concrete backend, and hands it to WithBackend/WithFallbackBackend.
type ComputeBackend interface {
	// Name returns the backend identifier (e.g. "cpu", "wgpu").
	Name() string

	// Init initializes the backend. Must be called before Compute.
	Init() error

	// Close releases all backend resources. The backend must not be used
	// after Close is called.
	Close()

	// Compute returns a Result for img and sites. Fails with
	// ErrInvalidConfig if sites is empty or img is unset.
	Compute(img *Image, sites *SiteCollection) (*Result, error)
}
