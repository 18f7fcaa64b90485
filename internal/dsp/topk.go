package dsp

import "sort"

// TopKVariance returns the min(k, len(seriesBySC)) subcarrier indices with
// the highest time-series variance, sorted descending by variance with
// ties broken by ascending index.
func TopKVariance(seriesBySC [][]float64, k int) []int {
	sc := len(seriesBySC)
	if sc == 0 {
		return nil
	}
	if k > sc {
		k = sc
	}

	type scored struct {
		idx int
		v   float64
	}
	scores := make([]scored, sc)
	for i, series := range seriesBySC {
		scores[i] = scored{idx: i, v: Variance(series)}
	}
	sort.Slice(scores, func(a, b int) bool {
		if scores[a].v != scores[b].v {
			return scores[a].v > scores[b].v
		}
		return scores[a].idx < scores[b].idx
	})

	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = scores[i].idx
	}
	return out
}
