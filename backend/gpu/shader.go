package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// coneShaderWGSL is the vertex/fragment pair a real device build would
// submit for the cone rasterization pass described in cone.go: each
// instance draws one site's cone mesh, the fragment shader writes the
// base-256 site-index encoding (encodeSiteIndex) to the color
// attachment, and the hardware depth test keeps the tallest (nearest)
// cone at each pixel.
const coneShaderWGSL = `
struct VertexIn {
	@location(0) position: vec3<f32>,
};

struct InstanceIn {
	@location(1) site_apex: vec2<f32>,
	@location(2) site_color: vec3<f32>,
};

struct VertexOut {
	@builtin(position) clip_position: vec4<f32>,
	@location(0) site_color: vec3<f32>,
};

@vertex
fn vs_main(vert: VertexIn, inst: InstanceIn) -> VertexOut {
	var out: VertexOut;
	let world = vec2<f32>(vert.position.x + inst.site_apex.x, vert.position.y + inst.site_apex.y);
	out.clip_position = vec4<f32>(world, vert.position.z, 1.0);
	out.site_color = inst.site_color;
	return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
	return vec4<f32>(in.site_color, 1.0);
}
`

// compileConeShader compiles coneShaderWGSL to SPIR-V, the same
// WGSL-to-SPIR-V step the device-backed shader pipelines in this
// domain perform before handing words to the driver: naga.Compile
// returns the module as a byte slice, which SPIR-V consumers expect
// as a little-endian stream of 32-bit words.
//
// Compilation needs no device or adapter, so it runs during Init and
// catches a malformed shader before the backend reports itself ready,
// rather than on the first frame.
func compileConeShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(coneShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("gpu: compiling cone shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpu: compiled cone shader is not word-aligned (%d bytes)", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		o := i * 4
		words[i] = uint32(spirvBytes[o]) |
			uint32(spirvBytes[o+1])<<8 |
			uint32(spirvBytes[o+2])<<16 |
			uint32(spirvBytes[o+3])<<24
	}
	return words, nil
}
