package pipeline

import "testing"

// TestDecisionEngineHysteresisTrace is end-to-end scenario 4 from spec.md §8.
func TestDecisionEngineHysteresisTrace(t *testing.T) {
	d := newDecisionEngine(0.5, 1.0, 2)
	inputs := []float64{0.2, 1.2, 0.4, 0.4, 0.4, 1.1}
	want := []bool{false, true, true, false, false, true}

	for i, e := range inputs {
		got := d.update(e)
		if got != want[i] {
			t.Errorf("update(%v) at step %d = %v, want %v", e, i, got, want[i])
		}
	}
}

// TestDecisionEngineHoldSuppressesTransitions is spec.md §8's hold-counter
// property: once hold_counter > 0, no transition occurs for the next
// hold_counter updates regardless of input.
func TestDecisionEngineHoldSuppressesTransitions(t *testing.T) {
	d := newDecisionEngine(0.5, 1.0, 3)
	if !d.update(2.0) {
		t.Fatal("expected transition to Present")
	}
	// hold_counter is now 2 after the post-transition decrement; the next
	// two updates must not transition even though the input crosses off.
	for i := 0; i < 2; i++ {
		if !d.update(0.0) {
			t.Errorf("update %d should still report Present while holding", i)
		}
	}
	if d.update(0.0) {
		t.Error("expected transition to Absent once the hold expires")
	}
}
