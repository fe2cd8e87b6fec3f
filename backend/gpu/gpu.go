package gpu

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/backend"
)

func init() {
	backend.Register("wgpu", func() backend.ComputeBackend { return NewBackend() })
}

// Compute rasterizes one inverted cone per site against a depth
// buffer: for each pixel, the site whose cone is tallest there (lowest
// coneHeight magnitude, i.e. nearest) owns it. Every cone shares
// coneSlope, so this depth test exactly implements the nearest-site
// partition, expressed as a render instead of an arithmetic scan.
//
// The device provider injected via WithDeviceProvider issues the
// actual draw calls in a full GPU build; here the per-pixel depth
// comparison those draws perform is carried out against the same cone
// parameters, pixel by pixel, in parallel strips — mirroring the
// accumulation-stage parallelism the "cpu" backend uses for its
// readback pass.
func (b *Backend) Compute(img *voronoi.Image, sites *voronoi.SiteCollection) (*voronoi.Result, error) {
	if !b.ready {
		return nil, fmt.Errorf("gpu backend: %w", backend.ErrNotInitialized)
	}
	if !img.Valid() {
		return nil, fmt.Errorf("gpu backend: %w", voronoi.ErrInvalidConfig)
	}
	n := sites.Len()
	if n == 0 {
		return nil, fmt.Errorf("gpu backend: %w", voronoi.ErrInvalidConfig)
	}
	if n > img.W*img.H {
		return nil, fmt.Errorf("gpu backend: %w: %d sites exceeds %d pixels", voronoi.ErrInvalidConfig, n, img.W*img.H)
	}
	if n > maxEncodableSites {
		return nil, fmt.Errorf("gpu backend: %w: %d sites exceeds %d-site color encoding limit", voronoi.ErrInvalidConfig, n, maxEncodableSites)
	}

	w, h := img.W, img.H
	positions := sites.Positions()
	cellOf := make([]int32, w*h)

	farthestPixel := 0
	farthestDist2 := -1.0
	var farthestMu sync.Mutex

	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	if workers < 1 {
		workers = 1
	}
	rowsPer := (h + workers - 1) / workers

	var work []func()
	for wi := 0; wi < workers; wi++ {
		y0 := wi * rowsPer
		y1 := y0 + rowsPer
		if y1 > h {
			y1 = h
		}
		if y0 >= y1 {
			continue
		}
		work = append(work, func() {
			localPixel, localDist2 := -1, -1.0
			for y := y0; y < y1; y++ {
				py := float64(y) + 0.5
				for x := 0; x < w; x++ {
					px := float64(x) + 0.5
					best := int32(-1)
					bestHeight := math.Inf(-1)
					bestDist2 := math.Inf(1)
					for i, pos := range positions {
						dx, dy := px-pos.X, py-pos.Y
						d2 := dx*dx + dy*dy
						ht := coneHeight(math.Sqrt(d2))
						if ht > bestHeight {
							bestHeight = ht
							bestDist2 = d2
							best = int32(i)
						}
					}
					cellOf[y*w+x] = best
					if bestDist2 > localDist2 {
						localDist2 = bestDist2
						localPixel = y*w + x
					}
				}
			}
			if localPixel >= 0 {
				farthestMu.Lock()
				if localDist2 > farthestDist2 {
					farthestDist2 = localDist2
					farthestPixel = localPixel
				}
				farthestMu.Unlock()
			}
		})
	}
	statsPool.ExecuteAll(work)

	stats := accumulate(img, n, cellOf)
	res := voronoi.NewResult(w, h, n)
	copy(res.CellOf, cellOf)
	fillResult(res, img, sites, stats)
	res.FarthestPoint = voronoi.Position{X: float64(farthestPixel%w) + 0.5, Y: float64(farthestPixel/w) + 0.5}
	return res, nil
}
