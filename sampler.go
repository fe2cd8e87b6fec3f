package voronoi

import "math"

// SiteSampler produces an initial set of N sites from an image, biased by
// brightness (or its inverse), via deterministic rejection sampling with
// post-selection spatial suppression.
type SiteSampler struct{}

// Sample draws n distinct sites from img. When inverseBias is false,
// bright pixels are favored; when true, dark pixels are favored. seed
// drives the PRNG, so Sample is deterministic and idempotent: sampling
// with the same (img, seed, inverseBias) twice yields the identical
// ordered list.
//
// Sample fails with ErrInvalidConfig if n is non-positive, if img is
// unset, or if the image doesn't have enough pixels to produce n distinct
// sites (W*H < n) — the caller error the loop cannot otherwise recover
// from, the Failure modes.
func (SiteSampler) Sample(img *Image, n int, inverseBias bool, seed uint32) ([]Position, error) {
	if !img.Valid() {
		return nil, configErrorf("sampler: image not set or empty")
	}
	total := img.W * img.H
	if n <= 0 {
		return nil, configErrorf("sampler: n must be positive, got %d", n)
	}
	if n > total {
		return nil, configErrorf("sampler: n=%d exceeds pixel count %d", n, total)
	}

	weights := make([]int, total)
	for i := 0; i < total; i++ {
		b := img.Brightness(i)
		if inverseBias {
			weights[i] = 257 - b
		} else {
			weights[i] = b
		}
	}

	accepted := make([]bool, total)
	positions := make([]Position, 0, n)
	rng := NewPRNG(seed)
	log := Logger()

	for draws := 0; len(positions) < n; draws++ {
		if draws > 0 && draws%4096 == 0 && draws > 8*total {
			log.Debug("voronoi: sampler slow progress",
				"draws", draws, "accepted", len(positions), "target", n)
		}

		idx := rng.IntRange(total)
		u := rng.Range(0, 256)
		if u > float64(weights[idx]) {
			continue
		}
		if accepted[idx] {
			continue
		}

		accepted[idx] = true
		positions = append(positions, pixelCenter(idx, img.W))
		suppressNeighborhood(weights, idx, img.W, img.H)
	}

	return positions, nil
}

// pixelCenter converts a row-major pixel index into the continuous
// coordinate of its pixel center, (x+0.5, y+0.5).
func pixelCenter(idx, w int) Position {
	x := idx % w
	y := idx / w
	return Position{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// suppressNeighborhood zeroes weights[idx] and halves (integer divide)
// every weight in the axis-aligned (2r+1)x(2r+1) square around idx's
// pixel that lies within [0,w) x [0,h), where
// r = max(1, floor(log2(weightBeforeZeroing)) + 1).
func suppressNeighborhood(weights []int, idx, w, h int) {
	before := weights[idx]
	weights[idx] = 0

	r := 1
	if before > 1 {
		r = int(math.Log2(float64(before))) + 1
		if r < 1 {
			r = 1
		}
	}

	x0, y0 := idx%w, idx/w
	for dy := -r; dy <= r; dy++ {
		ny := y0 + dy
		if ny < 0 || ny >= h {
			continue
		}
		row := ny * w
		for dx := -r; dx <= r; dx++ {
			nx := x0 + dx
			if nx < 0 || nx >= w {
				continue
			}
			weights[row+nx] /= 2
		}
	}
}
