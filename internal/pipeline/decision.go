package pipeline

// presenceState is the Decision Engine's two-state hysteresis machine
// (spec.md §4.4).
type presenceState int

const (
	stateAbsent presenceState = iota
	statePresent
)

// decisionEngine holds a minimum-dwell hysteresis over a scalar energy
// input, suppressing chatter around a single threshold.
type decisionEngine struct {
	thresholdOff float64
	thresholdOn  float64
	holdFrames   int

	state       presenceState
	holdCounter int
}

func newDecisionEngine(thresholdOff, thresholdOn float64, holdFrames int) *decisionEngine {
	return &decisionEngine{thresholdOff: thresholdOff, thresholdOn: thresholdOn, holdFrames: holdFrames, state: stateAbsent}
}

// update applies one energy observation and returns whether presence is
// now asserted, per spec.md §4.4's exact transition order: evaluate the
// transition first, then decrement any still-positive hold counter.
func (d *decisionEngine) update(e float64) bool {
	switch {
	case d.state == statePresent && e < d.thresholdOff && d.holdCounter <= 0:
		d.state = stateAbsent
		d.holdCounter = d.holdFrames
	case d.state == stateAbsent && e >= d.thresholdOn && d.holdCounter <= 0:
		d.state = statePresent
		d.holdCounter = d.holdFrames
	}
	if d.holdCounter > 0 {
		d.holdCounter--
	}
	return d.state == statePresent
}
