package dsp

import "gonum.org/v1/gonum/stat"

// Detrend subtracts the least-squares linear fit of x over the index domain
// [0, len(x)). Sequences shorter than 2 are returned unchanged (a copy).
func Detrend(x []float64) []float64 {
	n := len(x)
	if n < 2 {
		return append([]float64(nil), x...)
	}
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(idx, x, nil, false)

	out := make([]float64, n)
	for i := range x {
		fit := alpha + beta*float64(i)
		out[i] = x[i] - fit
	}
	return out
}

// RemoveLinearTrend subtracts the straight line joining the first and last
// sample of series, independent of any least-squares fit.
func RemoveLinearTrend(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return append([]float64(nil), series...)
	}
	slope := (series[n-1] - series[0]) / float64(n-1)
	out := make([]float64, n)
	for i := range series {
		line := series[0] + slope*float64(i)
		out[i] = series[i] - line
	}
	return out
}
