package cpu

import "testing"

func TestAccumulateByPixelIndexMatchesAccumulate(t *testing.T) {
	img := checkerboardImage(37, 29)
	sites := gridSites(15, 37, 29)

	flood := bucketQueueFlood(img, sites)
	n := sites.Len()

	want := accumulate(img, n, flood.cellOf)
	got := accumulateByPixelIndex(img, n, flood.cellOf)

	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("cell %d: accumulate=%+v accumulateByPixelIndex=%+v", i, want[i], got[i])
		}
	}
}
