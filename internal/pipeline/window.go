package pipeline

import "github.com/aethersense/aethersense/internal/model"

// window is the Pipeline Engine's fixed-capacity FIFO ring of FrameSignals
// (spec.md §3, §9 "Window storage"). It is cleared wholesale on a
// subcarrier-count change rather than tracking per-subcarrier ring views,
// since W stays in the low hundreds.
type window struct {
	capacity int
	entries  []model.FrameSignals
}

func newWindow(capacity int) *window {
	return &window{capacity: capacity, entries: make([]model.FrameSignals, 0, capacity)}
}

// subcarrierCount returns the shared sc of the window's entries, or 0 if
// empty.
func (w *window) subcarrierCount() int {
	if len(w.entries) == 0 {
		return 0
	}
	return w.entries[0].SubcarrierCount()
}

// clear empties the window, e.g. on a shape change.
func (w *window) clear() {
	w.entries = w.entries[:0]
}

// push appends fs, evicting the oldest entry if the window is now over
// capacity (FIFO).
func (w *window) push(fs model.FrameSignals) {
	w.entries = append(w.entries, fs)
	if len(w.entries) > w.capacity {
		w.entries = w.entries[1:]
	}
}

func (w *window) full() bool {
	return len(w.entries) == w.capacity
}

func (w *window) fillRatio() float32 {
	return float32(len(w.entries)) / float32(w.capacity)
}

// timestamps returns the window's timestamp series in FIFO order.
func (w *window) timestamps() []uint64 {
	ts := make([]uint64, len(w.entries))
	for i, e := range w.entries {
		ts[i] = e.TimestampNs
	}
	return ts
}

// transpose returns [subcarrier][time] amplitude and phase series.
func (w *window) transpose() (amplitudeBySC, phaseBySC [][]float64) {
	sc := w.subcarrierCount()
	amplitudeBySC = make([][]float64, sc)
	phaseBySC = make([][]float64, sc)
	for s := 0; s < sc; s++ {
		amp := make([]float64, len(w.entries))
		phi := make([]float64, len(w.entries))
		for t, e := range w.entries {
			amp[t] = e.AmplitudeBySC[s]
			phi[t] = e.PhaseBySC[s]
		}
		amplitudeBySC[s] = amp
		phaseBySC[s] = phi
	}
	return amplitudeBySC, phaseBySC
}
