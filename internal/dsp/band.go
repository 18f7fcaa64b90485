package dsp

// BandEnergy sums spec[i]^2 over bins whose physical frequency fs*i/N falls
// within [lo, hi]. N is the FFT length the magnitude spectrum was computed
// over (spec has length N/2).
func BandEnergy(spec []float64, fs, lo, hi float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	var energy float64
	for i, mag := range spec {
		freq := fs * float64(i) / float64(n)
		if freq >= lo && freq <= hi {
			energy += mag * mag
		}
	}
	return energy
}
