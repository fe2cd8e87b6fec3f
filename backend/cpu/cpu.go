// Package cpu provides the CPU Voronoi compute backends: the default
// bucket-queue jump-flood ("cpu"), an independent-reduction variant used
// only for cross-checking ("cpu-multipass", unregistered, see
// multipass.go), and a uniform-grid nearest-site search ("cpu-grid").
package cpu

import (
	"fmt"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/backend"
)

func init() {
	backend.Register("cpu", func() backend.ComputeBackend { return NewBackend() })
	backend.Register("cpu-grid", func() backend.ComputeBackend { return NewGridBackend() })
}

// Backend is the default CPU implementation: a single bucket-queue
// flood pass assigns every pixel to its nearest site, followed by a
// strip-parallel accumulation pass for per-cell color/area/centroid.
type Backend struct {
	initialized bool
}

// NewBackend constructs the default "cpu" backend.
func NewBackend() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "cpu" }

func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

func (b *Backend) Close() { b.initialized = false }

func (b *Backend) Compute(img *voronoi.Image, sites *voronoi.SiteCollection) (*voronoi.Result, error) {
	if !b.initialized {
		return nil, fmt.Errorf("cpu backend: %w", backend.ErrNotInitialized)
	}
	if err := checkInputs(img, sites); err != nil {
		return nil, err
	}

	n := sites.Len()
	flood := bucketQueueFlood(img, sites)
	stats := accumulate(img, n, flood.cellOf)

	res := voronoi.NewResult(img.W, img.H, n)
	copy(res.CellOf, flood.cellOf)
	fillResult(res, img, sites, stats)
	res.FarthestPoint = voronoi.Position{
		X: float64(flood.farthestPixel%img.W) + 0.5,
		Y: float64(flood.farthestPixel/img.W) + 0.5,
	}
	return res, nil
}

func checkInputs(img *voronoi.Image, sites *voronoi.SiteCollection) error {
	if !img.Valid() {
		return fmt.Errorf("cpu backend: %w", voronoi.ErrInvalidConfig)
	}
	if sites == nil || sites.Len() == 0 {
		return fmt.Errorf("cpu backend: %w", voronoi.ErrInvalidConfig)
	}
	if sites.Len() > img.W*img.H {
		return fmt.Errorf("cpu backend: %w: %d sites exceeds %d pixels", voronoi.ErrInvalidConfig, sites.Len(), img.W*img.H)
	}
	return nil
}
