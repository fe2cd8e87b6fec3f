package voronoi

import "math"

// DefaultMaxSites is the default cap on SiteCollection length (N_max).
const DefaultMaxSites = 20000

// Position is a continuous 2D image coordinate.
type Position struct {
	X, Y float64
}

// DistSq returns the squared Euclidean distance to another position.
func (p Position) DistSq(o Position) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// SiteCollection is an ordered sequence of sites stored as parallel
// struct-of-arrays (positions and velocities), for cache locality in the
// physics and compute paths; sites are never stored as an array of
// per-site structs. Sites are addressed by a dense 0-based index; order matters
// for color stability across frames. Insertion and deletion occur only
// through CountController's split/merge operations, which preserve index
// stability for sites that are not split/removed in a given step.
type SiteCollection struct {
	Xs, Ys   []float64
	VXs, VYs []float64

	// MaxSites is this collection's N_max. CountController.Adjust never
	// grows Len() past it; NewSiteCollection and Append do not check it.
	MaxSites int
}

// NewSiteCollection builds a collection from positions, assigning each
// site a random unit-velocity direction drawn from a PRNG seeded by seed
// (sub-seeded per index so velocity assignment is an independent stream
// from whatever produced positions).
func NewSiteCollection(positions []Position, seed uint32) *SiteCollection {
	n := len(positions)
	sc := &SiteCollection{
		Xs:       make([]float64, n),
		Ys:       make([]float64, n),
		VXs:      make([]float64, n),
		VYs:      make([]float64, n),
		MaxSites: DefaultMaxSites,
	}
	base := NewPRNG(seed)
	for i, p := range positions {
		sc.Xs[i] = p.X
		sc.Ys[i] = p.Y
		rng := base.Sub(uint32(i))
		angle := rng.Next() * 2 * math.Pi
		sc.VXs[i] = math.Cos(angle)
		sc.VYs[i] = math.Sin(angle)
	}
	return sc
}

// Len returns the current site count N.
func (sc *SiteCollection) Len() int {
	return len(sc.Xs)
}

// Position returns the position of site i.
func (sc *SiteCollection) Position(i int) Position {
	return Position{X: sc.Xs[i], Y: sc.Ys[i]}
}

// Positions returns a freshly allocated slice of all site positions, in
// index order. Used by ComputeBackend implementations, which take sites
// by value to avoid aliasing SiteCollection's internal slices.
func (sc *SiteCollection) Positions() []Position {
	out := make([]Position, sc.Len())
	for i := range out {
		out[i] = sc.Position(i)
	}
	return out
}

// Velocity returns the unit-velocity direction of site i.
func (sc *SiteCollection) Velocity(i int) (vx, vy float64) {
	return sc.VXs[i], sc.VYs[i]
}

// SetPosition overwrites the position of site i.
func (sc *SiteCollection) SetPosition(i int, p Position) {
	sc.Xs[i] = p.X
	sc.Ys[i] = p.Y
}

// SetVelocity overwrites the unit-velocity of site i.
func (sc *SiteCollection) SetVelocity(i int, vx, vy float64) {
	sc.VXs[i] = vx
	sc.VYs[i] = vy
}

// Append adds a new site at the end (index Len()), returning its index.
// The caller is responsible for honoring MaxSites.
func (sc *SiteCollection) Append(p Position, vx, vy float64) int {
	sc.Xs = append(sc.Xs, p.X)
	sc.Ys = append(sc.Ys, p.Y)
	sc.VXs = append(sc.VXs, vx)
	sc.VYs = append(sc.VYs, vy)
	return sc.Len() - 1
}

// RemoveAt deletes site i, shifting every subsequent index down by one.
func (sc *SiteCollection) RemoveAt(i int) {
	sc.Xs = append(sc.Xs[:i], sc.Xs[i+1:]...)
	sc.Ys = append(sc.Ys[:i], sc.Ys[i+1:]...)
	sc.VXs = append(sc.VXs[:i], sc.VXs[i+1:]...)
	sc.VYs = append(sc.VYs[:i], sc.VYs[i+1:]...)
}

// Clamp clips every site position into [0, w) x [0, h), leaving velocity
// untouched. Used after SetImage changes the image dimensions out from
// under previously-placed sites.
func (sc *SiteCollection) Clamp(w, h float64) {
	for i := range sc.Xs {
		sc.Xs[i] = clampCoord(sc.Xs[i], w)
		sc.Ys[i] = clampCoord(sc.Ys[i], h)
	}
}

func clampCoord(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= max {
		return math.Nextafter(max, 0)
	}
	return v
}

// Clone returns a deep copy of sc, used by HistoryRing snapshots.
func (sc *SiteCollection) Clone() *SiteCollection {
	return &SiteCollection{
		Xs:       append([]float64(nil), sc.Xs...),
		Ys:       append([]float64(nil), sc.Ys...),
		VXs:      append([]float64(nil), sc.VXs...),
		VYs:      append([]float64(nil), sc.VYs...),
		MaxSites: sc.MaxSites,
	}
}
