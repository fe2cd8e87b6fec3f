package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/voronoi"
)

type mockDevice struct{}

func (mockDevice) Poll(wait bool) {}
func (mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

type mockProvider struct{}

func (mockProvider) Device() gpucontext.Device            { return mockDevice{} }
func (mockProvider) Queue() gpucontext.Queue               { return mockQueue{} }
func (mockProvider) Adapter() gpucontext.Adapter           { return mockAdapter{} }
func (mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock", Type: gpucontext.AdapterTypeUnknown}
}

func TestInitWithoutDeviceFails(t *testing.T) {
	b := NewBackend()
	if err := b.Init(); !errors.Is(err, ErrNoDevice) {
		t.Fatalf("Init() without a device provider = %v, want ErrNoDevice", err)
	}
}

func TestInitWithDeviceSucceeds(t *testing.T) {
	b := NewBackend(WithDeviceProvider(mockProvider{}))
	if err := b.Init(); err != nil {
		t.Fatalf("Init() with a device provider: %v", err)
	}
}

func TestEncodeDecodeSiteIndexRoundTrip(t *testing.T) {
	for _, idx := range []int32{0, 1, 255, 256, 65535, 65536, maxEncodableSites - 1} {
		r, g, b := encodeSiteIndex(idx)
		got := decodeSiteIndex(r, g, b)
		if got != idx {
			t.Errorf("encode/decode(%d) = %d", idx, got)
		}
	}
}

func TestComputeAssignsEveryPixel(t *testing.T) {
	w, h := 20, 16
	pix := make([]uint8, w*h*4)
	for i := range pix {
		pix[i] = uint8(i % 256)
	}
	img := voronoi.NewImage(pix, w, h)

	positions := make([]voronoi.Position, 8)
	for i := range positions {
		positions[i] = voronoi.Position{X: float64((i*3)%w) + 0.5, Y: float64((i*5)%h) + 0.5}
	}
	sites := voronoi.NewSiteCollection(positions, 7)

	b := NewBackend(WithDeviceProvider(mockProvider{}))
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	res, err := b.Compute(img, sites)
	if err != nil {
		t.Fatal(err)
	}

	var total int64
	for _, a := range res.CellArea {
		total += int64(a)
	}
	if total != int64(w*h) {
		t.Fatalf("sum of cell areas = %d, want %d", total, w*h)
	}
}

func TestGenerateConeMeshHasApexAndClosedFan(t *testing.T) {
	verts := GenerateConeMesh(4.0)
	if len(verts) != siteSegments+2 {
		t.Fatalf("len(verts) = %d, want %d", len(verts), siteSegments+2)
	}
	if verts[0] != (ConeVertex{}) {
		t.Fatalf("apex vertex = %+v, want origin", verts[0])
	}
	first, last := verts[1], verts[len(verts)-1]
	if first.X != last.X || first.Y != last.Y {
		t.Fatalf("fan not closed: first=%+v last=%+v", first, last)
	}
}
