// Package backend defines the ComputeBackend abstraction shared by the
// CPU and GPU Voronoi compute implementations, plus a name-keyed
// registry for selecting between them at runtime.
//
// # Backend registration
//
// Concrete backends register themselves via a blank import:
//
//	import _ "github.com/gogpu/voronoi/backend/cpu"
//	import _ "github.com/gogpu/voronoi/backend/gpu"
//
// # Backend selection
//
//	b := backend.Default() // highest-priority registered backend
//	// or:
//	b := backend.Get("cpu")
//
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	result, err := b.Compute(img, sites)
//
// # Available backends
//
//   - "cpu": bucket-queue jump-flood (always available)
//   - "cpu-grid": supplemental uniform-grid nearest-site search
//   - "wgpu": cone-rendering GPU backend; Init fails unless a device
//     provider is injected, and the backend does not fall back by
//     itself (voronoi.WithFallbackBackend lets the Engine switch to
//     "cpu" in that case)
package backend
