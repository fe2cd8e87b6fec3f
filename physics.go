package voronoi

import "math"

// Physics advances site positions and velocities under an
// Ornstein-Uhlenbeck steered random walk, with an optional Lloyd-style
// centroid pull and reflective boundary handling.
type Physics struct{}

// Step advances every site in sc by dt seconds at scalar speed
// (pixels/second), using rng for the stochastic wander term.
//
//   - theta ("drift") and sigma ("wander") are the O-U parameters; both
//     must be >= 0.
//   - pull is the Lloyd centroid-pull strength; pull > 0 activates
//     steering toward each site's centroid from the previous frame,
//     scaling the drift term's contribution. When pull <= 0, or
//     prevCentroids is nil or shorter than sc.Len(), the drift term is
//     zero for that site (steering target equals current velocity).
//   - w, h are the image dimensions, used for reflective boundaries.
//
// Step never fails: out-of-range positions are clamped, not rejected.
func (Physics) Step(sc *SiteCollection, rng *PRNG, speed, dt, pull, theta, sigma float64, prevCentroids []Position, w, h float64) {
	havePull := pull > 0 && len(prevCentroids) >= sc.Len()

	for i := 0; i < sc.Len(); i++ {
		vx, vy := sc.VXs[i], sc.VYs[i]

		var driftX, driftY float64
		if havePull {
			pos := sc.Position(i)
			c := prevCentroids[i]
			tx, ty := c.X-pos.X, c.Y-pos.Y
			if tu := unitize(tx, ty); tu != nil {
				tx, ty = tu[0], tu[1]
				driftX = theta * pull * (tx - vx)
				driftY = theta * pull * (ty - vy)
			}
		}

		// Perpendicular unit vector for wander, rotate v by +90 degrees.
		nx, ny := -vy, vx

		g := rng.Gaussian()
		wanderScale := sigma * g * math.Sqrt(dt)

		nvx := vx + driftX*dt + wanderScale*nx
		nvy := vy + driftY*dt + wanderScale*ny

		if u := unitize(nvx, nvy); u != nil {
			nvx, nvy = u[0], u[1]
		} else {
			// Degenerate (zero-length) update: keep previous direction.
			nvx, nvy = vx, vy
		}
		sc.VXs[i], sc.VYs[i] = nvx, nvy

		movement := speed * dt
		nx2 := sc.Xs[i] + nvx*movement
		ny2 := sc.Ys[i] + nvy*movement

		nx2, flippedX := reflect(nx2, w)
		if flippedX {
			sc.VXs[i] = -sc.VXs[i]
		}
		ny2, flippedY := reflect(ny2, h)
		if flippedY {
			sc.VYs[i] = -sc.VYs[i]
		}
		sc.Xs[i], sc.Ys[i] = nx2, ny2
	}
}

// reflect mirrors v back into [0, max) if it overshot either edge, and
// reports whether a reflection (and thus a velocity flip) occurred. The
// overshoot distance is preserved (reflected), not clamped away, so a
// site moving off one edge reappears the same distance inside it.
func reflect(v, max float64) (float64, bool) {
	if max <= 0 {
		return 0, false
	}
	flipped := false
	if v < 0 {
		v = -v
		flipped = true
	} else if v >= max {
		v = 2*max - v
		flipped = true
	}
	// Safety clamp in case a very large displacement overshot past the
	// mirrored range too (movement > max); never leave [0, max).
	v = clampCoord(v, max)
	return v, flipped
}

// unitize normalizes (x, y) to unit length, returning nil if the vector
// is degenerate (zero length).
func unitize(x, y float64) *[2]float64 {
	n := math.Hypot(x, y)
	if n == 0 {
		return nil
	}
	return &[2]float64{x / n, y / n}
}
