package cpu

import (
	"runtime"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/parallel"
)

// cellStats accumulates the per-cell sums needed to produce mean color
// and centroid; area is the pixel count.
type cellStats struct {
	rsum, gsum, bsum int64
	xsum, ysum       int64
	area             int32
}

// statsPool carries the strip reduction below across frames so that
// Compute doesn't pay worker start-up cost every call.
var statsPool = parallel.NewWorkerPool(runtime.GOMAXPROCS(0))

// accumulate computes per-cell color/area/centroid statistics from a
// completed cellOf assignment. The image is partitioned into horizontal
// strips, one per worker, each producing an independent partial
// cellStats slice; partials are summed sequentially at the end. The
// flood itself (bucketQueueFlood) is strictly sequential — only this
// reduction is safe to parallelize.
func accumulate(img *voronoi.Image, n int, cellOf []int32) []cellStats {
	w, h := img.W, img.H

	workers := runtime.GOMAXPROCS(0)
	if workers > h {
		workers = h
	}
	if workers < 1 {
		workers = 1
	}
	rowsPer := (h + workers - 1) / workers

	partials := make([][]cellStats, workers)
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
		stats := make([]cellStats, n)
		partials[wi] = stats
		work = append(work, func() {
			for y := y0; y < y1; y++ {
				rowBase := y * w
				for x := 0; x < w; x++ {
					site := cellOf[rowBase+x]
					if site < 0 {
						continue
					}
					r, g, b := img.AtXY(x, y)
					s := &stats[site]
					s.rsum += int64(r)
					s.gsum += int64(g)
					s.bsum += int64(b)
					s.xsum += int64(x)
					s.ysum += int64(y)
					s.area++
				}
			}
		})
	}
	statsPool.ExecuteAll(work)

	total := make([]cellStats, n)
	for _, p := range partials {
		if p == nil {
			continue
		}
		for i := 0; i < n; i++ {
			total[i].rsum += p[i].rsum
			total[i].gsum += p[i].gsum
			total[i].bsum += p[i].bsum
			total[i].xsum += p[i].xsum
			total[i].ysum += p[i].ysum
			total[i].area += p[i].area
		}
	}
	return total
}

// fillResult writes cellStats into res. A cell that won zero pixels
// (possible when two sites share a home pixel) takes the site's own
// position as its centroid and the color of the pixel under the site,
// or mid-gray (128, 128, 128) if the site lies outside the image.
func fillResult(res *voronoi.Result, img *voronoi.Image, sites *voronoi.SiteCollection, stats []cellStats) {
	w, h := img.W, img.H
	for i, s := range stats {
		if s.area > 0 {
			res.CellColor[i] = [3]uint8{
				uint8(s.rsum / int64(s.area)),
				uint8(s.gsum / int64(s.area)),
				uint8(s.bsum / int64(s.area)),
			}
			res.CellCentroid[i] = voronoi.Position{
				X: float64(s.xsum) / float64(s.area),
				Y: float64(s.ysum) / float64(s.area),
			}
			res.CellArea[i] = s.area
			continue
		}
		pos := sites.Position(i)
		res.CellColor[i] = [3]uint8{128, 128, 128}
		if pos.X >= 0 && pos.Y >= 0 && int(pos.X) < w && int(pos.Y) < h {
			r, g, b := img.AtXY(int(pos.X), int(pos.Y))
			res.CellColor[i] = [3]uint8{r, g, b}
		}
		res.CellCentroid[i] = pos
		res.CellArea[i] = 0
	}
}
