package voronoi

import "testing"

func grayImage(w, h int, v uint8) *Image {
	pix := make([]uint8, w*h*4)
	for i := 0; i < w*h; i++ {
		o := i * 4
		pix[o], pix[o+1], pix[o+2], pix[o+3] = v, v, v, 255
	}
	return NewImage(pix, w, h)
}

func gradientImage(w, h int) *Image {
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 256 / w)
			o := (y*w + x) * 4
			pix[o], pix[o+1], pix[o+2], pix[o+3] = v, v, v, 255
		}
	}
	return NewImage(pix, w, h)
}

func TestSampleDeterministic(t *testing.T) {
	img := gradientImage(20, 20)
	var s SiteSampler
	a, err := s.Sample(img, 30, false, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Sample(img, 30, false, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("len mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSampleRejectsTooManySites(t *testing.T) {
	img := grayImage(2, 2, 100)
	var s SiteSampler
	if _, err := s.Sample(img, 5, false, 1); err == nil {
		t.Fatal("expected error when n exceeds pixel count")
	}
}

func TestSampleRejectsZero(t *testing.T) {
	img := grayImage(4, 4, 100)
	var s SiteSampler
	if _, err := s.Sample(img, 0, false, 1); err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestSampleBiasDirection(t *testing.T) {
	img := gradientImage(10, 10)
	var s SiteSampler
	bright, err := s.Sample(img, 10, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	dark, err := s.Sample(img, 10, true, 1)
	if err != nil {
		t.Fatal(err)
	}

	meanX := func(positions []Position) float64 {
		sum := 0.0
		for _, p := range positions {
			sum += p.X
		}
		return sum / float64(len(positions))
	}

	if meanX(bright) <= meanX(dark) {
		t.Fatalf("mean x of bright-biased sample (%v) not > dark-biased (%v)", meanX(bright), meanX(dark))
	}
}

func TestSampleProducesDistinctPositions(t *testing.T) {
	img := gradientImage(16, 16)
	var s SiteSampler
	positions, err := s.Sample(img, 40, false, 9)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[Position]bool)
	for _, p := range positions {
		if seen[p] {
			t.Fatalf("duplicate position %v", p)
		}
		seen[p] = true
	}
}
