package dsp

import (
	"reflect"
	"testing"
)

// TestTopKVariance is end-to-end scenario 6 from spec.md §8.
func TestTopKVariance(t *testing.T) {
	series := [][]float64{
		{1, 1, 1, 1},
		{1, 3, 1, 3},
		{1, 6, 1, 6},
		{1, 2, 1, 2},
	}
	got := TopKVariance(series, 2)
	want := []int{2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKVariance = %v, want %v", got, want)
	}
}

func TestTopKVarianceClampsToAvailable(t *testing.T) {
	series := [][]float64{{1, 2, 3}}
	got := TopKVariance(series, 5)
	if len(got) != 1 {
		t.Errorf("expected 1 index when k exceeds sc, got %v", got)
	}
}
