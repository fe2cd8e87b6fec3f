package voronoi

import "math"

// defaultFrameDt is the per-step time delta PlanPhases chunks phase
// durations into, when a phase specifies a total duration rather than
// an explicit step count — 30 fps, the live-canvas baseline this
// package targets.
const defaultFrameDt = 1.0 / 30.0

// Phase is one segment of a video-renderer's animation schedule. At
// most one of (N, Dt) together, T, or Fade is populated per phase:
//
//   - Grow: N is the target site count, Dt is the phase's total
//     duration; PlanPhases derives the doubling time needed to reach N
//     by the end of Dt and emits one StepRequest per frame.
//   - Hold: T is the phase's duration; sites evolve under physics only,
//     with no count change.
//   - Fade: Fade is the phase's duration; the host blends the Voronoi
//     frame toward (or away from) the source image over this time. The
//     core does not perform the blend — only reports the per-frame
//     progress fraction.
type Phase struct {
	N    int
	Dt   float64
	T    float64
	Fade float64
}

// StepRequest is one frame's worth of driving arguments for Engine,
// produced by PlanPhases.
type StepRequest struct {
	// Kind identifies the phase this request came from: "grow", "hold",
	// or "fade".
	Kind string

	// Dt is the physics step size for this frame, in seconds.
	Dt float64

	// Tau is the doubling time to pass to Engine.AdjustCount. Zero
	// outside grow phases.
	Tau float64

	// TargetN is the site count to pass to Engine.AdjustCount. Zero
	// outside grow phases.
	TargetN int

	// FadeFrac is this frame's blend progress, in [0, 1], for a fade
	// phase; the host uses it to mix the Voronoi frame with the source
	// image. Zero outside fade phases.
	FadeFrac float64
}

// PlanPhases turns a phase list into the sequence of per-frame
// arguments a host feeds to Engine.Step and Engine.AdjustCount,
// starting from a site count of currentN. It performs no I/O and holds
// no Engine reference — a pure scheduling helper, not a driver.
func PlanPhases(phases []Phase, currentN int) []StepRequest {
	var out []StepRequest
	n := currentN

	for _, p := range phases {
		switch {
		case p.N != 0 && p.Dt > 0:
			out = append(out, planGrow(p, n)...)
			n = p.N
		case p.T > 0:
			out = append(out, planHold(p)...)
		case p.Fade > 0:
			out = append(out, planFade(p)...)
		}
	}
	return out
}

func frameCount(totalDt float64) int {
	n := int(math.Round(totalDt / defaultFrameDt))
	if n < 1 {
		n = 1
	}
	return n
}

func planGrow(p Phase, currentN int) []StepRequest {
	steps := frameCount(p.Dt)
	stepDt := p.Dt / float64(steps)

	var tau float64
	if p.N != currentN && currentN > 0 && p.N > 0 {
		ratio := float64(p.N) / float64(currentN)
		log2 := math.Log2(ratio)
		if log2 != 0 {
			tau = p.Dt / math.Abs(log2)
		}
	}

	reqs := make([]StepRequest, steps)
	for i := range reqs {
		reqs[i] = StepRequest{Kind: "grow", Dt: stepDt, Tau: tau, TargetN: p.N}
	}
	return reqs
}

func planHold(p Phase) []StepRequest {
	steps := frameCount(p.T)
	stepDt := p.T / float64(steps)
	reqs := make([]StepRequest, steps)
	for i := range reqs {
		reqs[i] = StepRequest{Kind: "hold", Dt: stepDt}
	}
	return reqs
}

func planFade(p Phase) []StepRequest {
	steps := frameCount(p.Fade)
	stepDt := p.Fade / float64(steps)
	reqs := make([]StepRequest, steps)
	for i := range reqs {
		reqs[i] = StepRequest{Kind: "fade", Dt: stepDt, FadeFrac: float64(i+1) / float64(steps)}
	}
	return reqs
}
