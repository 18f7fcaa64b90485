package dsp

import "math"

// UnwrapPhase returns the running sum of phi's deltas, each shifted by a
// multiple of 2π so that |delta| <= π, removing artificial 2π jumps.
func UnwrapPhase(phi []float64) []float64 {
	if len(phi) == 0 {
		return nil
	}
	out := make([]float64, len(phi))
	out[0] = phi[0]
	for i := 1; i < len(phi); i++ {
		delta := phi[i] - phi[i-1]
		for delta > math.Pi {
			delta -= 2 * math.Pi
		}
		for delta < -math.Pi {
			delta += 2 * math.Pi
		}
		out[i] = out[i-1] + delta
	}
	return out
}

// RemoveCommonPhaseError subtracts, at each time index, either the median
// (robust) or the mean across subcarriers from phaseBySC[sc][t]. phaseBySC
// is indexed [subcarrier][time]; all inner slices must share length.
func RemoveCommonPhaseError(phaseBySC [][]float64, robust bool) [][]float64 {
	sc := len(phaseBySC)
	if sc == 0 {
		return nil
	}
	w := len(phaseBySC[0])
	out := make([][]float64, sc)
	for i := range out {
		out[i] = make([]float64, w)
	}

	column := make([]float64, sc)
	for t := 0; t < w; t++ {
		for s := 0; s < sc; s++ {
			column[s] = phaseBySC[s][t]
		}
		var cpe float64
		if robust {
			cpe = Median(column)
		} else {
			cpe = Mean(column)
		}
		for s := 0; s < sc; s++ {
			out[s][t] = phaseBySC[s][t] - cpe
		}
	}
	return out
}
