// Package pipeline implements the stateful sliding-window DSP orchestration
// (spec.md §4.3) that turns a sequence of Frames into hysteretic presence
// Decisions, plus the Decision Engine (spec.md §4.4) it drives.
package pipeline

import (
	"math"
	"time"

	"github.com/aethersense/aethersense/internal/aetherr"
	"github.com/aethersense/aethersense/internal/config"
	"github.com/aethersense/aethersense/internal/dsp"
	"github.com/aethersense/aethersense/internal/metrics"
	"github.com/aethersense/aethersense/internal/model"
)

// Pipeline owns the sliding window and decision state for one CSI stream.
// It is single-threaded cooperative: Process runs to completion with no
// internal suspension (spec.md §5).
type Pipeline struct {
	cfg config.DSP
	win *window
	dec *decisionEngine
}

// New constructs a Pipeline from the dsp and decision config subtrees.
func New(dspCfg config.DSP, decCfg config.Decision) *Pipeline {
	return &Pipeline{
		cfg: dspCfg,
		win: newWindow(dspCfg.WindowFrames),
		dec: newDecisionEngine(decCfg.ThresholdOff, decCfg.ThresholdOn, decCfg.HoldFrames),
	}
}

// Process runs the per-frame protocol of spec.md §4.3 and returns a
// Decision once the window is full and accepted, or nil while it's still
// filling, was shape-reset, or was rejected by the jitter gate.
func (p *Pipeline) Process(frame *model.Frame, m *metrics.RuntimeMetrics) (*model.Decision, error) {
	start := time.Now()

	if frame == nil || len(frame.Data) == 0 {
		return nil, aetherr.New(aetherr.InvalidArgument, "pipeline: empty frame")
	}

	if p.win.subcarrierCount() != 0 && p.win.subcarrierCount() != int(frame.SubcarrierCount) {
		p.win.clear()
		m.IncShapeChange()
		return nil, nil
	}

	fs := computeFrameSignals(frame)
	p.win.push(fs)
	m.SetWindowFillRatio(p.win.fillRatio())

	if !p.win.full() {
		return nil, nil
	}

	ts := p.win.timestamps()
	if dsp.JitterMetric(ts) > p.cfg.Resampling.RejectJitterRatio {
		m.IncWindowsRejected()
		return nil, nil
	}

	amplitudeBySC, phaseBySC := p.win.transpose()
	phaseBySC = dsp.RemoveCommonPhaseError(phaseBySC, true)

	for s := range amplitudeBySC {
		amplitudeBySC[s] = dsp.ResampleToUniformGrid(ts, amplitudeBySC[s], p.cfg.Resampling.Method)
		amplitudeBySC[s] = dsp.FilterOutliers(amplitudeBySC[s], p.cfg.Outlier.Method, p.cfg.Outlier.K, p.cfg.Outlier.Window)

		phaseBySC[s] = dsp.ResampleToUniformGrid(ts, phaseBySC[s], p.cfg.Resampling.Method)
		phaseBySC[s] = dsp.UnwrapPhase(phaseBySC[s])
		phaseBySC[s] = dsp.Detrend(phaseBySC[s])
	}

	topK := dsp.TopKVariance(amplitudeBySC, p.cfg.TopKSubcarriers)
	aggregated := aggregateMean(phaseBySC, topK)

	var smoothed []float64
	if p.cfg.Smoothing.Type == "median" {
		smoothed = dsp.MedianSmooth(aggregated, p.cfg.Smoothing.Kernel)
	} else {
		smoothed = dsp.EmaSmooth(aggregated, p.cfg.Smoothing.Alpha)
	}

	medianDt := dsp.MedianDeltaSeconds(ts)
	sampleRate := 0.0
	if medianDt > 0 {
		sampleRate = 1.0 / medianDt
	}

	windowed := dsp.ApplyWindow(smoothed, p.cfg.FFT.Window)
	spectrum := dsp.MagnitudeSpectrum(windowed, p.cfg.FFT.ZeroPadPow2)
	// MagnitudeSpectrum pads to the next power of 2 whenever zero-pad is
	// requested or the input isn't already one; fft_len must track that
	// same padded length for BandEnergy's bin->frequency mapping to agree
	// with what the spectrum actually holds.
	fftLen := len(windowed)
	n := fftLen
	if p.cfg.FFT.ZeroPadPow2 || (n&(n-1)) != 0 {
		fftLen = dsp.NextPow2(n)
	}

	energyMotion := dsp.BandEnergy(spectrum, sampleRate, p.cfg.Bands.Motion.LowHz, p.cfg.Bands.Motion.HighHz, fftLen)
	var energyBreathing float64
	if p.cfg.Bands.Breathing.Enabled {
		energyBreathing = dsp.BandEnergy(spectrum, sampleRate, p.cfg.Bands.Breathing.LowHz, p.cfg.Bands.Breathing.HighHz, fftLen)
	}

	present := p.dec.update(energyMotion)

	m.RecordLatencyMicros(float64(time.Since(start).Microseconds()))
	m.IncFramesProcessed()

	return &model.Decision{
		TimestampNs:     frame.TimestampNs,
		EnergyMotion:    float32(energyMotion),
		EnergyBreathing: float32(energyBreathing),
		Present:         present,
	}, nil
}

// computeFrameSignals reduces a Frame's per-link complex samples to one
// amplitude and one phase value per subcarrier (spec.md §4.3 step 3):
// amplitude is the mean |c| across all rx×tx links, phase is the phase of
// the complex sum across links.
func computeFrameSignals(frame *model.Frame) model.FrameSignals {
	sc := int(frame.SubcarrierCount)
	links := int(frame.RxCount) * int(frame.TxCount)

	amp := make([]float64, sc)
	phi := make([]float64, sc)

	for s := 0; s < sc; s++ {
		var sumRe, sumIm, sumMag float64
		for link := 0; link < links; link++ {
			// ordering (rx*tx_count + tx)*sc_count + sc, spec.md §9 open
			// question a: link already folds (rx,tx) into one axis here.
			v := frame.Data[link*sc+s]
			re, im := float64(v.Re), float64(v.Im)
			sumRe += re
			sumIm += im
			sumMag += math.Hypot(re, im)
		}
		amp[s] = sumMag / float64(links)
		phi[s] = math.Atan2(sumIm, sumRe)
	}

	return model.FrameSignals{TimestampNs: frame.TimestampNs, AmplitudeBySC: amp, PhaseBySC: phi}
}

// aggregateMean averages the series selected by indices into one 1-D
// signal of the same length (spec.md §4.3 step 9).
func aggregateMean(seriesBySC [][]float64, indices []int) []float64 {
	if len(indices) == 0 || len(seriesBySC) == 0 {
		return nil
	}
	n := len(seriesBySC[indices[0]])
	out := make([]float64, n)
	for _, idx := range indices {
		s := seriesBySC[idx]
		for i := 0; i < n && i < len(s); i++ {
			out[i] += s[i]
		}
	}
	for i := range out {
		out[i] /= float64(len(indices))
	}
	return out
}
