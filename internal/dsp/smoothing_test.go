package dsp

import "testing"

func TestEmaSmoothIdentityAtAlphaOne(t *testing.T) {
	x := []float64{1, 5, 2, 9, 3}
	out := EmaSmooth(x, 1.0)
	for i := range x {
		if out[i] != x[i] {
			t.Errorf("EmaSmooth(x,1.0)[%d] = %v, want %v", i, out[i], x[i])
		}
	}
}

func TestMedianSmoothIdentityAtKOne(t *testing.T) {
	x := []float64{1, 5, 2, 9, 3}
	out := MedianSmooth(x, 1)
	for i := range x {
		if out[i] != x[i] {
			t.Errorf("MedianSmooth(x,1)[%d] = %v, want %v", i, out[i], x[i])
		}
	}
}
