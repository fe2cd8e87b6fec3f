package voronoi

import "math"

// SplitStrategy selects which site is split when growing the site count.
type SplitStrategy int

const (
	// SplitStrategyMax splits the site with the largest cell area that
	// has not yet been split this step, ties broken by lowest index.
	// Falls back to SplitStrategyRandom once every site has been split
	// in the current step. This is the default.
	SplitStrategyMax SplitStrategy = iota

	// SplitStrategyFar inserts the new site at the previous compute's
	// farthest point; the split source is that point's current owner.
	SplitStrategyFar

	// SplitStrategyRandom splits a uniformly random site.
	SplitStrategyRandom
)

// mergeSampleCap bounds the number of merge-candidate sites scanned when
// N exceeds it.
const mergeSampleCap = 100

// CountController gradually adjusts a SiteCollection's length toward a
// target count by splitting or merging sites at an exponential rate, as
// specified by a doubling time. It is stateful: it owns the fractional
// accumulator that persists across calls to Adjust.
type CountController struct {
	fractional float64
}

// Adjust moves sc's length one step closer to target. tau is the
// doubling time in seconds; dt is the step's time delta; cellAreas and
// prevCentroids are the previous compute's per-cell statistics (may be
// nil); farthest is the previous compute's farthest point; cellOf is the
// previous compute's per-pixel owner array, needed by SplitStrategyFar to
// find the farthest point's current owner (may be nil if that strategy
// is not in use). rng drives split velocity angles and any random
// fallback selection.
//
// If tau <= 0, the entire sc.Len() -> target transition happens in this
// one call (a batch split or merge), with no fractional accumulation.
//
// Adjust returns the indices of sites added (by split) and the indices
// that were removed (by merge, expressed as their index at time of
// removal — callers must account for the subsequent downward index
// shift when interpreting later entries).
func (c *CountController) Adjust(
	sc *SiteCollection,
	target int,
	tau, dt float64,
	strategy SplitStrategy,
	cellAreas []int32,
	prevCentroids []Position,
	farthest Position,
	cellOf []int32,
	w, h int,
	rng *PRNG,
) (added, removed []int) {
	target = clampInt(target, 0, sc.MaxSites)
	if target == sc.Len() {
		return nil, nil
	}

	if tau <= 0 {
		return c.batchAdjust(sc, target, strategy, cellAreas, farthest, cellOf, w, rng)
	}

	current := sc.Len()
	rate := math.Ln2 / tau
	if current < target {
		// Growing: scale the continuous count (sites plus pending splits)
		// by 2^(dt/tau), so the count doubles in exactly tau seconds.
		c.fractional += (float64(current) + c.fractional) * math.Expm1(rate*dt)
	} else {
		c.fractional += float64(current) * rate * dt
	}

	splitThisStep := make(map[int]bool)

	for c.fractional >= 1 && sc.Len() != target {
		c.fractional--

		if sc.Len() < target {
			childIdx := c.split(sc, strategy, cellAreas, farthest, cellOf, w, splitThisStep, rng)
			added = append(added, childIdx)
		} else {
			removedIdx := c.merge(sc, rng)
			removed = append(removed, removedIdx)
		}
	}

	if sc.Len() == target {
		c.fractional = 0
	}
	return added, removed
}

// batchAdjust performs the entire current -> target transition in one
// call, used when tau <= 0 ("doubling_time = 0" case).
func (c *CountController) batchAdjust(
	sc *SiteCollection,
	target int,
	strategy SplitStrategy,
	cellAreas []int32,
	farthest Position,
	cellOf []int32,
	w int,
	rng *PRNG,
) (added, removed []int) {
	c.fractional = 0
	splitThisStep := make(map[int]bool)
	for sc.Len() < target {
		childIdx := c.split(sc, strategy, cellAreas, farthest, cellOf, w, splitThisStep, rng)
		added = append(added, childIdx)
	}
	for sc.Len() > target {
		removedIdx := c.merge(sc, rng)
		removed = append(removed, removedIdx)
	}
	return added, removed
}

// split performs one split according to strategy, returning the new
// child's index (always sc.Len()-1 after the call, since the child is
// appended).
func (c *CountController) split(
	sc *SiteCollection,
	strategy SplitStrategy,
	cellAreas []int32,
	farthest Position,
	cellOf []int32,
	w int,
	splitThisStep map[int]bool,
	rng *PRNG,
) int {
	src := c.chooseSplitSource(sc, strategy, cellAreas, farthest, cellOf, w, splitThisStep, rng)
	splitThisStep[src] = true

	pos := sc.Position(src)
	if strategy == SplitStrategyFar && cellOf != nil && w > 0 {
		pos = farthest
	}
	angle := rng.Range(0, 2*math.Pi)
	ux, uy := math.Cos(angle), math.Sin(angle)

	sc.SetVelocity(src, ux, uy)
	return sc.Append(pos, -ux, -uy)
}

func (c *CountController) chooseSplitSource(
	sc *SiteCollection,
	strategy SplitStrategy,
	cellAreas []int32,
	farthest Position,
	cellOf []int32,
	w int,
	splitThisStep map[int]bool,
	rng *PRNG,
) int {
	switch strategy {
	case SplitStrategyFar:
		if cellOf != nil && w > 0 {
			fx, fy := int(farthest.X), int(farthest.Y)
			idx := fy*w + fx
			if idx >= 0 && idx < len(cellOf) {
				owner := int(cellOf[idx])
				if owner >= 0 && owner < sc.Len() {
					return owner
				}
			}
		}
		return rng.IntRange(sc.Len())

	case SplitStrategyRandom:
		return rng.IntRange(sc.Len())

	default: // SplitStrategyMax
		// Sites appended earlier in this call have no area yet; only
		// indices covered by cellAreas are candidates.
		if len(cellAreas) > 0 {
			best := -1
			var bestArea int32 = -1
			for i := 0; i < len(cellAreas) && i < sc.Len(); i++ {
				if splitThisStep[i] {
					continue
				}
				if cellAreas[i] > bestArea {
					bestArea = cellAreas[i]
					best = i
				}
			}
			if best >= 0 {
				return best
			}
		}
		// Every site already split this step, or no areas available.
		return rng.IntRange(sc.Len())
	}
}

// merge removes the site whose nearest neighbor is closest (densest
// packed), sampling mergeSampleCap candidates when sc.Len() exceeds it.
// Returns the removed site's index (at time of removal).
func (c *CountController) merge(sc *SiteCollection, rng *PRNG) int {
	n := sc.Len()
	if n <= 1 {
		if n == 1 {
			sc.RemoveAt(0)
			return 0
		}
		return -1
	}

	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	if n > mergeSampleCap {
		sampled := make([]int, mergeSampleCap)
		for i := range sampled {
			sampled[i] = rng.IntRange(n)
		}
		candidates = sampled
	}

	best := candidates[0]
	bestDist := math.Inf(1)
	for _, i := range candidates {
		pi := sc.Position(i)
		nearest := math.Inf(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d := pi.DistSq(sc.Position(j))
			if d < nearest {
				nearest = d
			}
		}
		if nearest < bestDist {
			bestDist = nearest
			best = i
		}
	}

	sc.RemoveAt(best)
	return best
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
