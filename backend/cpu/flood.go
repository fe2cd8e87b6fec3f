package cpu

import (
	"math"

	"github.com/gogpu/voronoi"
)

// floodResult is the output of a pure flood pass: which site owns each
// pixel, and the single pixel farthest (by squared distance) from its
// owning site.
type floodResult struct {
	cellOf        []int32
	farthestPixel int
	farthestDist2 float64
}

// bucketQueueFlood assigns every pixel of a W x H image to its nearest
// site using the bucket-queue jump-flood: a multi-source Dijkstra
// expansion where edge weight between 4-connected pixels is implicit in
// the true squared Euclidean distance from each pixel to its
// originating site, and the frontier is ordered by an integer-bucketed
// priority queue instead of a binary heap.
//
// This is the default "cpu" backend algorithm.
func bucketQueueFlood(img *voronoi.Image, sites *voronoi.SiteCollection) floodResult {
	w, h := img.W, img.H
	n := sites.Len()

	cellOf := make([]int32, w*h)
	for i := range cellOf {
		cellOf[i] = -1
	}
	bestDist := make([]float64, w*h)
	for i := range bestDist {
		bestDist[i] = math.Inf(1)
	}
	// bestSite records which site holds bestDist, so an equal-distance
	// candidate from a lower-indexed site can still win the tie.
	bestSite := make([]int32, w*h)

	q := newBucketQueue(w*w + h*h)

	for i := 0; i < n; i++ {
		pos := sites.Position(i)
		hx := clampInt(int(pos.X), 0, w-1)
		hy := clampInt(int(pos.Y), 0, h-1)
		pixel := hy*w + hx
		d2 := squaredDist(float64(hx)+0.5, float64(hy)+0.5, pos.X, pos.Y)
		if d2 < bestDist[pixel] {
			bestDist[pixel] = d2
			bestSite[pixel] = int32(i)
			q.push(d2, pixel, int32(i))
		}
	}

	farthestPixel := -1
	farthestDist2 := -1.0

	for {
		e, ok := q.pop()
		if !ok {
			break
		}
		if cellOf[e.pixel] != -1 {
			continue
		}
		cellOf[e.pixel] = e.site
		if e.dist2 > farthestDist2 {
			farthestDist2 = e.dist2
			farthestPixel = e.pixel
		}

		pos := sites.Position(int(e.site))
		x, y := e.pixel%w, e.pixel/w
		relax(q, bestDist, bestSite, pos, e.site, x-1, y, w, h)
		relax(q, bestDist, bestSite, pos, e.site, x+1, y, w, h)
		relax(q, bestDist, bestSite, pos, e.site, x, y-1, w, h)
		relax(q, bestDist, bestSite, pos, e.site, x, y+1, w, h)
	}

	if farthestPixel < 0 {
		farthestPixel = 0
	}
	return floodResult{cellOf: cellOf, farthestPixel: farthestPixel, farthestDist2: farthestDist2}
}

// relax offers pixel (nx,ny) as a candidate owned by site, pushing it
// into q if the true distance from site improves on the pixel's current
// best known distance, or equals it and site has a lower index than the
// current holder (ties go to the lowest site index).
func relax(q *bucketQueue, bestDist []float64, bestSite []int32, pos voronoi.Position, site int32, nx, ny, w, h int) {
	if nx < 0 || nx >= w || ny < 0 || ny >= h {
		return
	}
	pixel := ny*w + nx
	d2 := squaredDist(float64(nx)+0.5, float64(ny)+0.5, pos.X, pos.Y)
	if d2 < bestDist[pixel] || (d2 == bestDist[pixel] && site < bestSite[pixel]) {
		bestDist[pixel] = d2
		bestSite[pixel] = site
		q.push(d2, pixel, site)
	}
}

func squaredDist(ax, ay, bx, by float64) float64 {
	dx, dy := ax-bx, ay-by
	return dx*dx + dy*dy
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
