// Package gpu provides the cone-rendering GPU Voronoi compute backend.
// Each site is rasterized as an inverted cone (apex at the site's
// position, height decreasing linearly with distance); a depth test
// across all cones assigns each pixel to the tallest (nearest) site,
// and the site index is encoded into the color attachment as a
// base-256 three-digit number so it survives an 8-bit-per-channel
// readback.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrNoDevice is returned by Init when no DeviceProvider has been
// injected. The caller (typically Engine) is expected to fall back to
// the "cpu" backend in this case.
var ErrNoDevice = errors.New("gpu: no device provider configured")

// colorFormat and depthFormat are the attachment formats the cone
// rasterization pass renders into. RGBA8Unorm holds the base-256
// site-index encoding in its R/G/B channels; the depth attachment
// holds negated cone height (so a standard less-than depth comparison
// selects the tallest/nearest cone).
const (
	colorFormat = gputypes.TextureFormatRGBA8Unorm
	depthFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// Backend computes Voronoi frames by rasterizing one inverted cone per
// site against a depth buffer, on a GPU device supplied by the host.
//
// Following the pattern this domain's other GPU-backed packages use
// (render.DeviceHandle), Backend never creates its own device — it
// receives one via WithDeviceProvider and only ever calls into it.
type Backend struct {
	provider    gpucontext.DeviceProvider
	ready       bool
	shaderSPIRV []uint32
}

// GPUOption configures a Backend before Init.
type GPUOption func(*Backend)

// WithDeviceProvider injects the GPU device and queue the backend
// renders with. Required: Init fails with ErrNoDevice without one.
func WithDeviceProvider(p gpucontext.DeviceProvider) GPUOption {
	return func(b *Backend) {
		b.provider = p
	}
}

// NewBackend constructs the "wgpu" backend. Without WithDeviceProvider,
// Init will fail and the caller should fall back to "cpu".
func NewBackend(opts ...GPUOption) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Name() string { return "wgpu" }

// Init validates that a device provider is available and compiles the
// cone rasterization shader to SPIR-V. It does not allocate any
// per-frame resources; those are sized against the image on the first
// Compute call, since Init is not told the frame dimensions.
func (b *Backend) Init() error {
	if b.provider == nil {
		return ErrNoDevice
	}
	if b.provider.Device() == nil || b.provider.Queue() == nil {
		return fmt.Errorf("gpu: device provider returned a nil device or queue")
	}
	spirv, err := compileConeShader()
	if err != nil {
		return err
	}
	b.shaderSPIRV = spirv
	b.ready = true
	return nil
}

func (b *Backend) Close() {
	b.ready = false
	b.provider = nil
}
