package cpu

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/backend"
)

// MultiPassBackend computes the same nearest-site partition as Backend
// but keeps flood (pixel ownership) and accumulation (color/area/
// centroid) as two strictly independent passes, and accumulates with a
// different strategy than Backend does: instead of row-strip workers
// each writing into a private partial slice later merged sequentially,
// every worker here scans a contiguous range of the flat pixel-index
// space and adds directly into one shared, atomically-updated stats
// array. It exists to cross-check Backend's result against a pipeline
// that shares no reduction code with it, and is not registered in the
// default registry.
type MultiPassBackend struct {
	initialized bool
}

// NewMultiPassBackend constructs the "cpu-multipass" cross-check backend.
func NewMultiPassBackend() *MultiPassBackend { return &MultiPassBackend{} }

func (b *MultiPassBackend) Name() string { return "cpu-multipass" }

func (b *MultiPassBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *MultiPassBackend) Close() { b.initialized = false }

func (b *MultiPassBackend) Compute(img *voronoi.Image, sites *voronoi.SiteCollection) (*voronoi.Result, error) {
	if !b.initialized {
		return nil, fmt.Errorf("cpu-multipass backend: %w", backend.ErrNotInitialized)
	}
	if err := checkInputs(img, sites); err != nil {
		return nil, err
	}

	n := sites.Len()

	// Pass 1: flood, materializing cell_of for every pixel.
	flood := bucketQueueFlood(img, sites)

	// Pass 2: independent pixel-indexed atomic accumulation.
	stats := accumulateByPixelIndex(img, n, flood.cellOf)

	res := voronoi.NewResult(img.W, img.H, n)
	copy(res.CellOf, flood.cellOf)
	fillResult(res, img, sites, stats)
	res.FarthestPoint = voronoi.Position{
		X: float64(flood.farthestPixel%img.W) + 0.5,
		Y: float64(flood.farthestPixel/img.W) + 0.5,
	}
	return res, nil
}

// atomicCellStats is cellStats with every field updated via atomic
// add, since accumulateByPixelIndex's workers write to a shared array
// rather than private partials.
type atomicCellStats struct {
	rsum, gsum, bsum atomic.Int64
	xsum, ysum       atomic.Int64
	area             atomic.Int64
}

// accumulateByPixelIndex is accumulate's cross-check counterpart: it
// partitions the flat pixel-index space 0..W*H into contiguous worker
// ranges (rather than accumulate's per-row strips) and every worker
// adds straight into one shared cellStats array with atomic.Int64
// operations (rather than accumulate's private-partial-then-merge).
// Slower under contention, but it shares no reduction logic with
// accumulate, which is the point of keeping it around.
func accumulateByPixelIndex(img *voronoi.Image, n int, cellOf []int32) []cellStats {
	total := img.W * img.H
	shared := make([]atomicCellStats, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (total + workers - 1) / workers

	var work []func()
	for wi := 0; wi < workers; wi++ {
		lo := wi * chunk
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		if lo >= hi {
			continue
		}
		work = append(work, func() {
			for idx := lo; idx < hi; idx++ {
				site := cellOf[idx]
				if site < 0 {
					continue
				}
				x, y := idx%img.W, idx/img.W
				r, g, b := img.AtXY(x, y)
				s := &shared[site]
				s.rsum.Add(int64(r))
				s.gsum.Add(int64(g))
				s.bsum.Add(int64(b))
				s.xsum.Add(int64(x))
				s.ysum.Add(int64(y))
				s.area.Add(1)
			}
		})
	}
	statsPool.ExecuteAll(work)

	out := make([]cellStats, n)
	for i := range out {
		out[i] = cellStats{
			rsum: shared[i].rsum.Load(),
			gsum: shared[i].gsum.Load(),
			bsum: shared[i].bsum.Load(),
			xsum: shared[i].xsum.Load(),
			ysum: shared[i].ysum.Load(),
			area: int32(shared[i].area.Load()),
		}
	}
	return out
}
