// Package model defines the data entities shared across AetherSense's
// components, per the data model in spec.md §3.
package model

// Sample is a single complex CSI reading for one (rx, tx, subcarrier) link.
type Sample struct {
	Re float32
	Im float32
}

// Frame is one raw CSI record produced by the Recovery Stream Reader and
// consumed exactly once by the Pipeline Engine.
type Frame struct {
	TimestampNs     uint64
	CenterFreqHz    uint64
	RxCount         uint8
	TxCount         uint8
	SubcarrierCount uint16
	// Data is ordered ((rx*TxCount + tx)*SubcarrierCount + sc), length
	// RxCount*TxCount*SubcarrierCount. Preserving this exact ordering is
	// required to reproduce golden decisions (spec.md §9, open question a).
	Data []Sample
}

// Valid reports whether Data's length matches the declared link/subcarrier
// shape. A Frame failing this check is corrupt, never delivered (spec.md §8).
func (f *Frame) Valid() bool {
	want := int(f.RxCount) * int(f.TxCount) * int(f.SubcarrierCount)
	return len(f.Data) == want
}

// FrameSignals is the per-subcarrier amplitude/phase reduction of a Frame,
// computed by averaging magnitude across all rx×tx links and taking the
// phase of the complex sum across those links.
type FrameSignals struct {
	TimestampNs  uint64
	AmplitudeBySC []float64
	PhaseBySC     []float64
}

// SubcarrierCount returns the shared subcarrier count of this signal set.
func (fs *FrameSignals) SubcarrierCount() int { return len(fs.AmplitudeBySC) }

// Decision is the hysteretic presence/energy result emitted once per full
// window. Decisions are not persisted.
type Decision struct {
	TimestampNs     uint64
	EnergyMotion    float32
	EnergyBreathing float32
	Present         bool
}

// StreamStats is the Recovery Stream Reader's counter bag. Mutated by the
// reader only; read by a metrics sink as a snapshot.
type StreamStats struct {
	RecordsTotal             uint64
	RecordsCorruptTotal      uint64
	RecordsPartialTotal      uint64
	RotationsDetectedTotal   uint64
	CheckpointWritesTotal    uint64
	CheckpointResumeTotal    uint64
	ConsecutiveErrorsCurrent uint64
}

// Checkpoint is the reader's resume state: a signature tying it to a
// specific file plus the last accepted byte offset and frame timestamp.
type Checkpoint struct {
	Signature     string
	Offset        int64
	LastTimestamp uint64
}
