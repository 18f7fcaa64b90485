package dsp

// ResampleToUniformGrid derives step = the median inter-sample delta of ts
// (in the same units as ts), then for each i in [0, len(x)) evaluates the
// target time t0 + i*step, advancing a source cursor while the next source
// timestamp is still behind t, and interpolates x at that target time.
// Output length equals input length and starts at ts[0] — the grid ends at
// ts[0]+(n-1)*step, so a small suffix of the original span is lost when the
// median delta is shorter than the mean delta; that is retained
// intentionally (spec.md §9, open question c).
func ResampleToUniformGrid(ts []uint64, x []float64, method string) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	if n == 1 || len(ts) != n {
		return append([]float64(nil), x...)
	}

	step := medianDeltaRaw(ts)
	if step <= 0 {
		return append([]float64(nil), x...)
	}

	t0 := float64(ts[0])
	out := make([]float64, n)
	src := 0
	for i := 0; i < n; i++ {
		target := t0 + float64(i)*step
		for src < n-2 && float64(ts[src+1]) < target {
			src++
		}
		if src >= n-1 {
			out[i] = x[n-1]
			continue
		}

		t0s, t1s := float64(ts[src]), float64(ts[src+1])
		switch method {
		case "nearest":
			if target-t0s <= t1s-target {
				out[i] = x[src]
			} else {
				out[i] = x[src+1]
			}
		default: // "linear"
			span := t1s - t0s
			if span <= 0 {
				out[i] = x[src]
				continue
			}
			a := (target - t0s) / span
			out[i] = x[src] + a*(x[src+1]-x[src])
		}
	}
	return out
}

// medianDeltaRaw is MedianDeltaSeconds without the /1e9 scaling, so the
// returned step is in the same units as the input timestamps.
func medianDeltaRaw(ts []uint64) float64 {
	if len(ts) < 2 {
		return 0
	}
	dt := make([]float64, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		dt[i-1] = float64(ts[i] - ts[i-1])
	}
	return Median(dt)
}
