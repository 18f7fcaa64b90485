package dsp

import "testing"

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{1, 3, 2}, 2},
		{[]float64{1, 2, 3, 4}, 2.5},
	}
	for _, c := range cases {
		if got := Median(c.in); got != c.want {
			t.Errorf("Median(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMedianDeltaSeconds(t *testing.T) {
	if got := MedianDeltaSeconds([]uint64{1}); got != 0 {
		t.Errorf("single timestamp should be 0, got %v", got)
	}
	ts := []uint64{0, 1_000_000_000, 2_000_000_000, 3_000_000_000}
	if got := MedianDeltaSeconds(ts); got != 1 {
		t.Errorf("MedianDeltaSeconds(%v) = %v, want 1", ts, got)
	}
}

func TestJitterRatioZeroMedian(t *testing.T) {
	if got := JitterRatio([]uint64{0, 1, 2}, 0); got != 0 {
		t.Errorf("JitterRatio with medianDt<=0 should be 0, got %v", got)
	}
}

func TestJitterMetricFewPoints(t *testing.T) {
	if got := JitterMetric([]uint64{1}); got != 0 {
		t.Errorf("JitterMetric with <2 deltas should be 0, got %v", got)
	}
}
