package voronoi

// Image is an immutable (within one compute call) RGBA raster: width W,
// height H, and a row-major array of W*H RGBA octets. Only the RGB
// channels are read by this package; alpha is ignored.
type Image struct {
	W, H int
	Pix  []uint8 // len == W*H*4
}

// NewImage wraps pix as a W x H RGBA image. pix must have length W*H*4 and
// is not copied; the caller must not mutate it while an Engine call that
// reads it is in flight.
func NewImage(pix []uint8, w, h int) *Image {
	return &Image{W: w, H: h, Pix: pix}
}

// Valid reports whether the image has non-zero, consistent dimensions.
func (img *Image) Valid() bool {
	return img != nil && img.W > 0 && img.H > 0 && len(img.Pix) >= img.W*img.H*4
}

// At returns the RGB triple at pixel index i (row-major, 0 <= i < W*H).
func (img *Image) At(i int) (r, g, b uint8) {
	o := i * 4
	return img.Pix[o], img.Pix[o+1], img.Pix[o+2]
}

// AtXY returns the RGB triple at column x, row y.
func (img *Image) AtXY(x, y int) (r, g, b uint8) {
	return img.At(y*img.W + x)
}

// Brightness is the brightness of pixel i: its red channel value plus
// one, range 1..256. This deliberate choice (red channel only, not
// luminance) is preserved for sampling-result compatibility.
func (img *Image) Brightness(i int) int {
	o := i * 4
	return int(img.Pix[o]) + 1
}
