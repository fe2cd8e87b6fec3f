package voronoi

// Result is the per-frame output of a ComputeBackend, discarded or cached
// by the host. Each Compute call allocates a new Result and returns a
// pointer to it; the Engine also keeps that pointer as LastResult, so
// callers must not mutate it.
type Result struct {
	// CellOf holds, for each pixel (row-major, W*H long), the index of
	// the site that owns it. Never negative after a successful compute.
	CellOf []int32

	// CellColor holds the mean RGB of the source pixels each cell owns.
	// An empty cell falls back to the RGB at its site's pixel if in
	// bounds, otherwise to mid-gray (128, 128, 128).
	CellColor [][3]uint8

	// CellArea holds the pixel count per cell. Sum(CellArea) == W*H.
	CellArea []int32

	// CellCentroid holds the mean (x, y) of each cell's pixels.
	CellCentroid []Position

	// FarthestPoint is the pixel whose nearest site is maximally distant;
	// a natural seed location for "insert-far" split strategies.
	FarthestPoint Position

	W, H int
}

// NewResult allocates a Result sized for n sites over a w x h image.
func NewResult(w, h, n int) *Result {
	return &Result{
		CellOf:       make([]int32, w*h),
		CellColor:    make([][3]uint8, n),
		CellArea:     make([]int32, n),
		CellCentroid: make([]Position, n),
		W:            w,
		H:            h,
	}
}
