package cpu

import (
	"testing"

	"github.com/gogpu/voronoi"
)

func checkerboardImage(w, h int) *voronoi.Image {
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			v := uint8((x*37 + y*91) % 256)
			pix[o], pix[o+1], pix[o+2], pix[o+3] = v, v, v, 255
		}
	}
	return voronoi.NewImage(pix, w, h)
}

func gridSites(n, w, h int) *voronoi.SiteCollection {
	positions := make([]voronoi.Position, n)
	for i := 0; i < n; i++ {
		positions[i] = voronoi.Position{
			X: float64((i*37)%w) + 0.5,
			Y: float64((i*53)%h) + 0.5,
		}
	}
	return voronoi.NewSiteCollection(positions, 1)
}

func TestBackendAssignsEveryPixel(t *testing.T) {
	img := checkerboardImage(32, 24)
	sites := gridSites(12, 32, 24)

	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	res, err := b.Compute(img, sites)
	if err != nil {
		t.Fatal(err)
	}

	var totalArea int64
	for _, a := range res.CellArea {
		totalArea += int64(a)
	}
	if totalArea != int64(32*24) {
		t.Fatalf("sum of cell areas = %d, want %d", totalArea, 32*24)
	}
	for _, c := range res.CellOf {
		if c < 0 || int(c) >= sites.Len() {
			t.Fatalf("cellOf contains out-of-range site %d", c)
		}
	}
}

func TestMergedMatchesMultiPass(t *testing.T) {
	img := checkerboardImage(40, 30)
	sites := gridSites(20, 40, 30)

	merged := NewBackend()
	multi := NewMultiPassBackend()
	if err := merged.Init(); err != nil {
		t.Fatal(err)
	}
	if err := multi.Init(); err != nil {
		t.Fatal(err)
	}

	r1, err := merged.Compute(img, sites)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := multi.Compute(img, sites)
	if err != nil {
		t.Fatal(err)
	}

	for i := range r1.CellOf {
		if r1.CellOf[i] != r2.CellOf[i] {
			t.Fatalf("pixel %d: merged assigns site %d, multipass assigns site %d", i, r1.CellOf[i], r2.CellOf[i])
		}
	}
	for i := range r1.CellArea {
		if r1.CellArea[i] != r2.CellArea[i] {
			t.Fatalf("cell %d: merged area %d != multipass area %d", i, r1.CellArea[i], r2.CellArea[i])
		}
	}
}

func TestGridMatchesBucketQueue(t *testing.T) {
	img := checkerboardImage(40, 30)
	sites := gridSites(20, 40, 30)

	bq := NewBackend()
	gb := NewGridBackend()
	if err := bq.Init(); err != nil {
		t.Fatal(err)
	}
	if err := gb.Init(); err != nil {
		t.Fatal(err)
	}

	r1, err := bq.Compute(img, sites)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := gb.Compute(img, sites)
	if err != nil {
		t.Fatal(err)
	}

	for i := range r1.CellOf {
		if r1.CellOf[i] != r2.CellOf[i] {
			t.Fatalf("pixel %d: bucket-queue assigns site %d, grid assigns site %d", i, r1.CellOf[i], r2.CellOf[i])
		}
	}
}

func TestComputeRejectsTooManySites(t *testing.T) {
	img := checkerboardImage(4, 4)
	sites := gridSites(17, 4, 4)

	b := NewBackend()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Compute(img, sites); err == nil {
		t.Fatal("expected error for N > W*H")
	}
}

func TestComputeRequiresInit(t *testing.T) {
	img := checkerboardImage(4, 4)
	sites := gridSites(2, 4, 4)

	b := NewBackend()
	if _, err := b.Compute(img, sites); err == nil {
		t.Fatal("expected error calling Compute before Init")
	}
}
