package dsp

import (
	"math"
	"math/cmplx"
)

// NextPow2 returns the smallest power of 2 >= n (minimum 1).
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// MagnitudeSpectrum returns |X[i]| for i in [0, N/2) of the radix-2 FFT of
// x. If zeroPadPow2, x is zero-padded up to the next power of 2 first; if
// not and len(x) is already a power of 2, the FFT runs on x directly. A
// non-power-of-2 length with zeroPadPow2 false is still padded up — the
// radix-2 butterfly network has no other way to run — rather than erroring,
// per spec.md's "finite fallback, not error" posture for edge cases.
func MagnitudeSpectrum(x []float64, zeroPadPow2 bool) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	target := n
	if zeroPadPow2 || (n&(n-1)) != 0 {
		target = NextPow2(n)
	}

	buf := make([]complex128, target)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}
	fftInPlace(buf)

	half := target / 2
	out := make([]float64, half)
	for i := 0; i < half; i++ {
		out[i] = cmplx.Abs(buf[i])
	}
	return out
}

// fftInPlace computes the iterative radix-2 Cooley-Tukey FFT of a, whose
// length must be a power of 2, via bit-reversal permutation followed by
// butterfly passes whose twiddle factors are generated per stage by
// repeated multiplication with e^{-2πi/length}.
func fftInPlace(a []complex128) {
	n := len(a)
	if n <= 1 {
		return
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wlen := cmplx.Rect(1, angle)
		for i := 0; i < n; i += length {
			w := complex(1.0, 0.0)
			half := length / 2
			for j := 0; j < half; j++ {
				u := a[i+j]
				v := a[i+j+half] * w
				a[i+j] = u + v
				a[i+j+half] = u - v
				w *= wlen
			}
		}
	}
}
