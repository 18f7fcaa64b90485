package dsp

import "math"

const madEpsilon = 1e-9

// FilterOutliers scans x with a symmetric window >= 3 (truncated at the
// boundaries), replacing any point whose deviation from the local median
// exceeds k scaled MADs. The "hampel" method replaces with the local
// median; any other method ("mad") replaces with the average of the
// immediate neighbors, clamped at the boundaries.
func FilterOutliers(x []float64, method string, k float64, window int) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	if window < 3 {
		window = 3
	}
	half := window / 2

	out := make([]float64, n)
	copy(out, x)

	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > n {
			hi = n
		}
		local := x[lo:hi]
		med := Median(local)

		devs := make([]float64, len(local))
		for j, v := range local {
			devs[j] = math.Abs(v - med)
		}
		mad := Median(devs)
		scale := mad
		if scale < madEpsilon {
			scale = madEpsilon
		}

		if math.Abs(x[i]-med)/scale <= k {
			continue
		}

		if method == "hampel" {
			out[i] = med
			continue
		}

		switch {
		case i == 0:
			out[i] = x[minInt(1, n-1)]
		case i == n-1:
			out[i] = x[maxInt(n-2, 0)]
		default:
			out[i] = (x[i-1] + x[i+1]) / 2
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
