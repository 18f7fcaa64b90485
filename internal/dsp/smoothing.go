package dsp

// EmaSmooth applies an exponential moving average: y[0]=x[0], y[i] =
// alpha*x[i] + (1-alpha)*y[i-1]. alpha must be in (0,1].
func EmaSmooth(x []float64, alpha float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	out := make([]float64, len(x))
	out[0] = x[0]
	for i := 1; i < len(x); i++ {
		out[i] = alpha*x[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MedianSmooth applies a symmetric median filter of odd kernel size k.
// Near the edges, only the available samples within the window are used.
// k below 1 is treated as 1, and k = 1 returns a copy of x.
func MedianSmooth(x []float64, k int) []float64 {
	if len(x) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	half := k / 2
	out := make([]float64, len(x))
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(x) {
			hi = len(x)
		}
		out[i] = Median(x[lo:hi])
	}
	return out
}
