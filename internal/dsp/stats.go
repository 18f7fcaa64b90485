// Package dsp implements the pure numeric primitives the Pipeline Engine
// composes per frame (spec.md §4.2). Every function here allocates its
// output rather than mutating its input, unless the doc comment says
// otherwise.
package dsp

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the median of v without mutating it. Even lengths use the
// arithmetic mean of the two middle elements. An empty slice returns 0.
func Median(v []float64) float64 {
	n := len(v)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Variance wraps gonum/stat's unbiased (n-1) sample variance for the
// unweighted case, used by TopKVariance.
func Variance(v []float64) float64 {
	if len(v) < 2 {
		return 0
	}
	return stat.Variance(v, nil)
}

// Mean wraps gonum/stat's mean, used by RemoveCommonPhaseError's non-robust
// branch.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}

// interArrivalSeconds returns the pairwise ts[i+1]-ts[i] deltas in seconds.
func interArrivalSeconds(ts []uint64) []float64 {
	if len(ts) < 2 {
		return nil
	}
	out := make([]float64, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		out[i-1] = float64(ts[i]-ts[i-1]) / 1e9
	}
	return out
}

// MedianDeltaSeconds returns the median of pairwise inter-frame deltas in
// seconds. Fewer than 2 timestamps returns 0.
func MedianDeltaSeconds(ts []uint64) float64 {
	dt := interArrivalSeconds(ts)
	if dt == nil {
		return 0
	}
	return Median(dt)
}

// JitterRatio returns the maximum relative deviation of any inter-arrival
// interval from medianDt. Undefined (medianDt <= 0) returns 0.
func JitterRatio(ts []uint64, medianDt float64) float64 {
	if medianDt <= 0 {
		return 0
	}
	dt := interArrivalSeconds(ts)
	var worst float64
	for _, d := range dt {
		r := absF(d-medianDt) / medianDt
		if r > worst {
			worst = r
		}
	}
	return worst
}

// JitterMetric returns the standard deviation of inter-arrival intervals
// divided by their median — the gating signal for window acceptance.
func JitterMetric(ts []uint64) float64 {
	dt := interArrivalSeconds(ts)
	if len(dt) < 2 {
		return 0
	}
	med := Median(dt)
	if med <= 0 {
		return 0
	}
	return stat.StdDev(dt, nil) / med
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
