package dsp

import (
	"math"
	"testing"
)

// TestDetrendIdempotent is spec.md §8's idempotence property: applying
// Detrend twice stays within 1e-5 of applying it once.
func TestDetrendIdempotent(t *testing.T) {
	x := []float64{1, 3, 2, 5, 4, 7, 6, 9}
	once := Detrend(x)
	twice := Detrend(once)
	for i := range once {
		if math.Abs(once[i]-twice[i]) > 1e-5 {
			t.Errorf("Detrend not idempotent at %d: once=%v twice=%v", i, once[i], twice[i])
		}
	}
}

func TestDetrendShortInputUnchanged(t *testing.T) {
	x := []float64{5}
	out := Detrend(x)
	if len(out) != 1 || out[0] != 5 {
		t.Errorf("Detrend with length<2 should be unchanged, got %v", out)
	}
}

func TestRemoveLinearTrend(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	out := RemoveLinearTrend(x)
	for _, v := range out {
		if math.Abs(v) > 1e-9 {
			t.Errorf("expected all zeros after removing exact line, got %v", out)
			break
		}
	}
}
