package cpu

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/backend"
)

// GridBackend assigns each pixel to its nearest site by bucketing sites
// into a uniform grid and searching outward in expanding rings of grid
// cells until a ring is found whose inner radius already exceeds the
// best candidate distance: a uniform spatial grid search, not a
// jump-flood. It exists as an independent cross-check of Backend's
// bucket-queue result and is registered as a selectable third backend
// so nothing in Engine needs to change to support it.
type GridBackend struct {
	initialized bool
}

// NewGridBackend constructs the "cpu-grid" backend.
func NewGridBackend() *GridBackend { return &GridBackend{} }

func (b *GridBackend) Name() string { return "cpu-grid" }

func (b *GridBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *GridBackend) Close() { b.initialized = false }

func (b *GridBackend) Compute(img *voronoi.Image, sites *voronoi.SiteCollection) (*voronoi.Result, error) {
	if !b.initialized {
		return nil, fmt.Errorf("cpu-grid backend: %w", backend.ErrNotInitialized)
	}
	if err := checkInputs(img, sites); err != nil {
		return nil, err
	}

	w, h := img.W, img.H
	n := sites.Len()
	g := buildGrid(sites, w, h)

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

	var wg sync.WaitGroup
	for wi := 0; wi < workers; wi++ {
		y0 := wi * rowsPer
		y1 := y0 + rowsPer
		if y1 > h {
			y1 = h
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			localPixel := -1
			localDist2 := -1.0
			for y := y0; y < y1; y++ {
				for x := 0; x < w; x++ {
					site, d2 := g.nearestSite(sites, float64(x)+0.5, float64(y)+0.5)
					cellOf[y*w+x] = site
					if d2 > localDist2 {
						localDist2 = d2
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
		}(y0, y1)
	}
	wg.Wait()

	stats := accumulate(img, n, cellOf)
	res := voronoi.NewResult(w, h, n)
	copy(res.CellOf, cellOf)
	fillResult(res, img, sites, stats)
	res.FarthestPoint = voronoi.Position{X: float64(farthestPixel%w) + 0.5, Y: float64(farthestPixel/w) + 0.5}
	return res, nil
}

// grid buckets site indices into square cells of side cellSize, sized
// so the average cell holds a small constant number of sites.
type grid struct {
	cellSize   float64
	cols, rows int
	cells      [][]int32
}

func buildGrid(sites *voronoi.SiteCollection, w, h int) *grid {
	n := sites.Len()
	area := float64(w * h)
	// Aim for roughly one site per cell; never smaller than 1px, never
	// larger than the image itself.
	cellSize := math.Sqrt(area / math.Max(float64(n), 1))
	if cellSize < 1 {
		cellSize = 1
	}
	cols := int(math.Ceil(float64(w)/cellSize)) + 1
	rows := int(math.Ceil(float64(h)/cellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	g := &grid{cellSize: cellSize, cols: cols, rows: rows, cells: make([][]int32, cols*rows)}
	for i := 0; i < n; i++ {
		pos := sites.Position(i)
		cx, cy := g.cellCoord(pos.X, pos.Y)
		idx := cy*g.cols + cx
		g.cells[idx] = append(g.cells[idx], int32(i))
	}
	return g
}

func (g *grid) cellCoord(x, y float64) (int, int) {
	cx := clampInt(int(x/g.cellSize), 0, g.cols-1)
	cy := clampInt(int(y/g.cellSize), 0, g.rows-1)
	return cx, cy
}

// nearestSite searches grid cells in expanding square rings around
// (px,py)'s own cell, stopping once a ring's inner radius exceeds the
// best distance found so far — at that point no farther cell can hold a
// closer site.
func (g *grid) nearestSite(sites *voronoi.SiteCollection, px, py float64) (int32, float64) {
	cx, cy := g.cellCoord(px, py)
	best := int32(-1)
	bestDist2 := math.Inf(1)

	maxRing := g.cols
	if g.rows > maxRing {
		maxRing = g.rows
	}

	for ring := 0; ring <= maxRing; ring++ {
		if ring > 0 {
			innerRadius := float64(ring-1) * g.cellSize
			if innerRadius*innerRadius > bestDist2 {
				break
			}
		}
		g.scanRing(sites, cx, cy, ring, px, py, &best, &bestDist2)
	}
	return best, bestDist2
}

func (g *grid) scanRing(sites *voronoi.SiteCollection, cx, cy, ring int, px, py float64, best *int32, bestDist2 *float64) bool {
	found := false
	visit := func(gx, gy int) {
		if gx < 0 || gx >= g.cols || gy < 0 || gy >= g.rows {
			return
		}
		for _, si := range g.cells[gy*g.cols+gx] {
			pos := sites.Position(int(si))
			d2 := squaredDist(px, py, pos.X, pos.Y)
			if d2 < *bestDist2 || (d2 == *bestDist2 && si < *best) {
				*bestDist2 = d2
				*best = si
			}
			found = true
		}
	}

	if ring == 0 {
		visit(cx, cy)
		return found
	}
	for gx := cx - ring; gx <= cx+ring; gx++ {
		visit(gx, cy-ring)
		visit(gx, cy+ring)
	}
	for gy := cy - ring + 1; gy <= cy+ring-1; gy++ {
		visit(cx-ring, gy)
		visit(cx+ring, gy)
	}
	return found
}
