package backend

import (
	"testing"

	"github.com/gogpu/voronoi"
)

type fakeBackend struct {
	name string
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Init() error  { return nil }
func (f *fakeBackend) Close()       {}
func (f *fakeBackend) Compute(_ *voronoi.Image, _ *voronoi.SiteCollection) (*voronoi.Result, error) {
	return nil, nil
}

func TestRegisterGetUnregister(t *testing.T) {
	Register("fake", func() ComputeBackend { return &fakeBackend{name: "fake"} })
	defer Unregister("fake")

	if !IsRegistered("fake") {
		t.Fatal("expected fake to be registered")
	}
	b := Get("fake")
	if b == nil || b.Name() != "fake" {
		t.Fatalf("Get(fake) = %v", b)
	}

	Unregister("fake")
	if IsRegistered("fake") {
		t.Fatal("expected fake to be unregistered")
	}
	if Get("fake") != nil {
		t.Fatal("expected Get(fake) to be nil after unregister")
	}
}

func TestDefaultPriority(t *testing.T) {
	Register("cpu-grid", func() ComputeBackend { return &fakeBackend{name: "cpu-grid"} })
	Register("cpu", func() ComputeBackend { return &fakeBackend{name: "cpu"} })
	Register("wgpu", func() ComputeBackend { return &fakeBackend{name: "wgpu"} })
	defer Unregister("cpu-grid")
	defer Unregister("cpu")
	defer Unregister("wgpu")

	if got := Default().Name(); got != "wgpu" {
		t.Fatalf("Default() = %q, want wgpu", got)
	}

	Unregister("wgpu")
	if got := Default().Name(); got != "cpu" {
		t.Fatalf("Default() after removing wgpu = %q, want cpu", got)
	}
}

func TestAvailable(t *testing.T) {
	Register("fake1", func() ComputeBackend { return &fakeBackend{name: "fake1"} })
	Register("fake2", func() ComputeBackend { return &fakeBackend{name: "fake2"} })
	defer Unregister("fake1")
	defer Unregister("fake2")

	names := Available()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["fake1"] || !found["fake2"] {
		t.Fatalf("Available() = %v, missing fake1/fake2", names)
	}
}
