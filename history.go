package voronoi

// minHistoryFrames is the floor on HistoryRing's capacity regardless of
// site count.
const minHistoryFrames = 50

// historyByteBudget is the approximate memory budget (2 MiB) a
// HistoryRing's capacity is sized against.
const historyByteBudget = 2 * 1024 * 1024

// bytesPerSitePerFrame is the per-site, per-frame storage cost the
// max_frames formula assumes. A snapshot actually stores four float64
// SoA columns (32 bytes per site), so a full ring can exceed the budget.
const bytesPerSitePerFrame = 20

// maxFramesFor computes max_frames = max(50, floor(2MiB / (20*N))).
func maxFramesFor(n int) int {
	if n <= 0 {
		n = 1
	}
	v := historyByteBudget / (bytesPerSitePerFrame * n)
	if v < minHistoryFrames {
		v = minHistoryFrames
	}
	return v
}

// HistoryRing is a bounded, bidirectional FIFO of site-position (and
// velocity) snapshots, supporting step-back / step-forward / resume-
// from-head scrubbing. It never stores compute results (cell_of,
// colors, ...) — only enough state to resume physics deterministically.
type HistoryRing struct {
	frames    []*SiteCollection
	cursor    int
	maxFrames int
}

// NewHistoryRing creates a ring sized for sites sites, using the
// max_frames formula above.
func NewHistoryRing(sites int) *HistoryRing {
	return &HistoryRing{maxFrames: maxFramesFor(sites)}
}

// Reset clears the ring and reseeds it with a single snapshot of sc's
// current state, with the cursor at that frame. Called whenever site
// count, image, or seed changes (mutating operations invalidate history).
func (h *HistoryRing) Reset(sc *SiteCollection) {
	h.maxFrames = maxFramesFor(sc.Len())
	h.frames = []*SiteCollection{sc.Clone()}
	h.cursor = 0
}

// AtHead reports whether the cursor is at the most recently appended
// frame.
func (h *HistoryRing) AtHead() bool {
	return h.cursor == len(h.frames)-1
}

// Append records a new frame (e.g. after a physics step taken at the
// head) and advances the cursor to it, trimming the oldest frame from
// the front if the ring would exceed maxFrames.
func (h *HistoryRing) Append(sc *SiteCollection) {
	h.frames = append(h.frames, sc.Clone())
	if len(h.frames) > h.maxFrames {
		h.frames = h.frames[1:]
	}
	h.cursor = len(h.frames) - 1
}

// StepBack moves the cursor one frame earlier and returns that frame's
// snapshot. ok is false if already at the earliest frame.
func (h *HistoryRing) StepBack() (sc *SiteCollection, ok bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.frames[h.cursor].Clone(), true
}

// AdvanceCursor moves the cursor one frame later without running physics
// and returns that frame's snapshot. ok is false if already at the head
// (the caller must instead run physics and Append).
func (h *HistoryRing) AdvanceCursor() (sc *SiteCollection, ok bool) {
	if h.AtHead() {
		return nil, false
	}
	h.cursor++
	return h.frames[h.cursor].Clone(), true
}

// Current returns a clone of the frame at the cursor.
func (h *HistoryRing) Current() *SiteCollection {
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[h.cursor].Clone()
}

// Len reports the number of frames currently retained.
func (h *HistoryRing) Len() int {
	return len(h.frames)
}

// Cursor reports the current cursor position (0-based, from the front of
// the retained frames).
func (h *HistoryRing) Cursor() int {
	return h.cursor
}
