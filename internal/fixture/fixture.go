// Package fixture generates small synthetic RGBA images for tests:
// smooth gradients and blocky noise, both built by scaling a tiny seed
// image up to the requested dimensions via golang.org/x/image/draw, so
// tests exercise realistic multi-pixel brightness gradients without
// each one hand-rolling pixel math.
package fixture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/voronoi"
)

// Gradient builds a w x h RGB image that ramps from corner (0,0) to
// corner (w,h), by scaling a 2x2 seed image with bilinear
// interpolation. Useful for sampler bias tests, where a known
// brightness direction lets a test assert which half of the image
// accumulated more sites.
func Gradient(w, h int, from, to color.RGBA) *voronoi.Image {
	seed := image.NewRGBA(image.Rect(0, 0, 2, 2))
	seed.Set(0, 0, from)
	seed.Set(1, 0, lerpColor(from, to, 0.5))
	seed.Set(0, 1, lerpColor(from, to, 0.5))
	seed.Set(1, 1, to)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), seed, seed.Bounds(), draw.Over, nil)
	return toVoronoiImage(dst)
}

// Noise builds a w x h RGB image of blocky pseudo-random brightness, by
// generating a small low-resolution tile with a voronoi.PRNG (so it's
// deterministic and reproducible across test runs) and nearest-
// neighbor scaling it up. blockSize is the low-resolution tile's pixel
// size on each axis before scaling (e.g. 8 for an 8x8 seed tile).
func Noise(w, h, blockSize int, seed uint32) *voronoi.Image {
	if blockSize < 1 {
		blockSize = 1
	}
	tileW, tileH := (w+blockSize-1)/blockSize, (h+blockSize-1)/blockSize
	if tileW < 1 {
		tileW = 1
	}
	if tileH < 1 {
		tileH = 1
	}

	tile := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
	rng := voronoi.NewPRNG(seed)
	for y := 0; y < tileH; y++ {
		for x := 0; x < tileW; x++ {
			v := uint8(rng.Range(0, 256))
			tile.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), tile, tile.Bounds(), draw.Over, nil)
	return toVoronoiImage(dst)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

func toVoronoiImage(img *image.RGBA) *voronoi.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		srcOff := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[srcOff:srcOff+w*4])
	}
	return voronoi.NewImage(pix, w, h)
}
