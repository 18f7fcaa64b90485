// Package config loads and validates the AetherSense configuration schema
// (spec.md §6). Loading itself is intentionally thin — a single JSON decode,
// the way xtaci/kcptun's server/config.go loads its own Config — the
// interesting work is Validate.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/aethersense/aethersense/internal/aetherr"
)

// IO holds the Recovery Stream Reader's configuration (spec.md §6).
type IO struct {
	Format               string `json:"format"`
	Mode                 string `json:"mode"`
	StartPosition        string `json:"start_position"`
	RotateHandling       string `json:"rotate_handling"`
	MaxCorruptRatio      float64 `json:"max_corrupt_ratio"`
	MaxPartialLineBytes  int     `json:"max_partial_line_bytes"`
	PollIntervalMs       int     `json:"poll_interval_ms"`
	MaxConsecutiveErrors int     `json:"max_consecutive_errors"`
	CheckpointPath       string  `json:"checkpoint_path"`
}

// Smoothing holds dsp.smoothing.* (spec.md §6).
type Smoothing struct {
	Type   string  `json:"type"`
	Alpha  float64 `json:"alpha"`
	Kernel int     `json:"kernel"`
}

// FFT holds dsp.fft.* (spec.md §6).
type FFT struct {
	Window      string `json:"window"`
	ZeroPadPow2 bool   `json:"zero_pad_pow2"`
}

// Resampling holds dsp.resampling.* (spec.md §6).
type Resampling struct {
	Method           string  `json:"method"`
	RejectJitterRatio float64 `json:"reject_jitter_ratio"`
}

// Outlier holds dsp.outlier.* (spec.md §6).
type Outlier struct {
	Method string  `json:"method"`
	K      float64 `json:"k"`
	Window int     `json:"window"`
}

// Band is a single [low_hz, high_hz] band; both edges are inclusive.
type Band struct {
	Enabled bool    `json:"enabled"`
	LowHz   float64 `json:"low_hz"`
	HighHz  float64 `json:"high_hz"`
}

// Bands holds dsp.bands.* (spec.md §6). Motion is always enabled.
type Bands struct {
	Motion    Band `json:"motion"`
	Breathing Band `json:"breathing"`
}

// DSP holds the dsp.* subtree (spec.md §6).
type DSP struct {
	WindowFrames    int        `json:"window_frames"`
	TopKSubcarriers int        `json:"topk_subcarriers"`
	Smoothing       Smoothing  `json:"smoothing"`
	FFT             FFT        `json:"fft"`
	Resampling      Resampling `json:"resampling"`
	Outlier         Outlier    `json:"outlier"`
	Bands           Bands      `json:"bands"`
}

// Decision holds decision.* (spec.md §6).
type Decision struct {
	ThresholdOff float64 `json:"threshold_off"`
	ThresholdOn  float64 `json:"threshold_on"`
	HoldFrames   int     `json:"hold_frames"`
}

// Runtime holds runtime.* (spec.md §6).
type Runtime struct {
	RingBufferCapacityFrames int     `json:"ring_buffer_capacity_frames"`
	MaxBatchFrames           int     `json:"max_batch_frames"`
	Clock                    string  `json:"clock"`
	MaxJitterRatio           float64 `json:"max_jitter_ratio"`
	Backpressure             string  `json:"backpressure"`
	ReportEverySeconds       int     `json:"report_every_seconds"`
}

// Config is the full AetherSense configuration tree.
type Config struct {
	IO       IO       `json:"io"`
	DSP      DSP      `json:"dsp"`
	Decision Decision `json:"decision"`
	Runtime  Runtime  `json:"runtime"`
}

// Default returns a Config populated with reasonable defaults, overridden by
// a loaded file or CLI flags.
func Default() Config {
	return Config{
		IO: IO{
			Format:               "csv",
			Mode:                 "file",
			StartPosition:        "begin",
			RotateHandling:       "reopen",
			MaxCorruptRatio:      0.25,
			MaxPartialLineBytes:  1 << 20,
			PollIntervalMs:       200,
			MaxConsecutiveErrors: 10,
			CheckpointPath:       "",
		},
		DSP: DSP{
			WindowFrames:    64,
			TopKSubcarriers: 8,
			Smoothing:       Smoothing{Type: "ema", Alpha: 0.3, Kernel: 3},
			FFT:             FFT{Window: "hann", ZeroPadPow2: true},
			Resampling:      Resampling{Method: "linear", RejectJitterRatio: 0.5},
			Outlier:         Outlier{Method: "hampel", K: 3, Window: 5},
			Bands: Bands{
				Motion:    Band{Enabled: true, LowHz: 0.2, HighHz: 2.5},
				Breathing: Band{Enabled: false, LowHz: 0.1, HighHz: 0.5},
			},
		},
		Decision: Decision{ThresholdOff: 0.5, ThresholdOn: 1.0, HoldFrames: 5},
		Runtime: Runtime{
			RingBufferCapacityFrames: 256,
			MaxBatchFrames:           64,
			Clock:                    "from_input",
			MaxJitterRatio:           0.5,
			Backpressure:             "block",
			ReportEverySeconds:       30,
		},
	}
}

// Load reads and JSON-decodes path into cfg, overwriting any field present
// in the file. Mirrors xtaci/kcptun's parseJSONConfig shape.
func Load(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return aetherr.Wrap(aetherr.IoError, err, "opening config file")
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return aetherr.Wrap(aetherr.InvalidConfig, err, "decoding config file")
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// Validate checks the enumerated-option and range constraints from spec.md
// §6, returning the first violation found as an InvalidConfig error.
func Validate(cfg *Config) error {
	io := cfg.IO
	if !oneOf(io.Format, "csv", "jsonl") {
		return aetherr.New(aetherr.InvalidConfig, "io.format must be csv or jsonl")
	}
	if !oneOf(io.Mode, "file", "tail") {
		return aetherr.New(aetherr.InvalidConfig, "io.mode must be file or tail")
	}
	if !oneOf(io.StartPosition, "begin", "end", "checkpoint") {
		return aetherr.New(aetherr.InvalidConfig, "io.start_position must be begin, end, or checkpoint")
	}
	if !oneOf(io.RotateHandling, "reopen", "error") {
		return aetherr.New(aetherr.InvalidConfig, "io.rotate_handling must be reopen or error")
	}
	if io.MaxCorruptRatio < 0 || io.MaxCorruptRatio > 1 {
		return aetherr.New(aetherr.InvalidConfig, "io.max_corrupt_ratio must be in [0,1]")
	}
	if io.MaxPartialLineBytes <= 0 {
		return aetherr.New(aetherr.InvalidConfig, "io.max_partial_line_bytes must be > 0")
	}
	if io.PollIntervalMs <= 0 {
		return aetherr.New(aetherr.InvalidConfig, "io.poll_interval_ms must be > 0")
	}
	if io.MaxConsecutiveErrors <= 0 {
		return aetherr.New(aetherr.InvalidConfig, "io.max_consecutive_errors must be > 0")
	}

	dsp := cfg.DSP
	if dsp.WindowFrames < 16 {
		return aetherr.New(aetherr.InvalidConfig, "dsp.window_frames must be >= 16")
	}
	if dsp.TopKSubcarriers < 1 {
		return aetherr.New(aetherr.InvalidConfig, "dsp.topk_subcarriers must be >= 1")
	}
	switch dsp.Smoothing.Type {
	case "ema":
		if dsp.Smoothing.Alpha <= 0 || dsp.Smoothing.Alpha > 1 {
			return aetherr.New(aetherr.InvalidConfig, "dsp.smoothing.alpha must be in (0,1]")
		}
	case "median":
		if dsp.Smoothing.Kernel < 3 || dsp.Smoothing.Kernel%2 == 0 {
			return aetherr.New(aetherr.InvalidConfig, "dsp.smoothing.kernel must be odd and >= 3")
		}
	default:
		return aetherr.New(aetherr.InvalidConfig, "dsp.smoothing.type must be ema or median")
	}
	if !oneOf(dsp.FFT.Window, "hann", "hamming") {
		return aetherr.New(aetherr.InvalidConfig, "dsp.fft.window must be hann or hamming")
	}
	if !oneOf(dsp.Resampling.Method, "linear", "nearest") {
		return aetherr.New(aetherr.InvalidConfig, "dsp.resampling.method must be linear or nearest")
	}
	if dsp.Resampling.RejectJitterRatio < 0 {
		return aetherr.New(aetherr.InvalidConfig, "dsp.resampling.reject_jitter_ratio must be >= 0")
	}
	if !oneOf(dsp.Outlier.Method, "mad", "hampel") {
		return aetherr.New(aetherr.InvalidConfig, "dsp.outlier.method must be mad or hampel")
	}
	if dsp.Outlier.K <= 0 {
		return aetherr.New(aetherr.InvalidConfig, "dsp.outlier.k must be > 0")
	}
	if dsp.Outlier.Window < 3 {
		return aetherr.New(aetherr.InvalidConfig, "dsp.outlier.window must be >= 3")
	}
	if dsp.Bands.Motion.LowHz <= 0 || dsp.Bands.Motion.LowHz >= dsp.Bands.Motion.HighHz {
		return aetherr.New(aetherr.InvalidConfig, "dsp.bands.motion.low_hz must be > 0 and < high_hz")
	}
	if dsp.Bands.Breathing.Enabled && (dsp.Bands.Breathing.LowHz <= 0 || dsp.Bands.Breathing.LowHz >= dsp.Bands.Breathing.HighHz) {
		return aetherr.New(aetherr.InvalidConfig, "dsp.bands.breathing.low_hz must be > 0 and < high_hz")
	}

	dec := cfg.Decision
	if !(dec.ThresholdOff < dec.ThresholdOn) {
		return aetherr.New(aetherr.InvalidConfig, "decision.threshold_off must be < decision.threshold_on")
	}
	if dec.HoldFrames < 0 {
		return aetherr.New(aetherr.InvalidConfig, "decision.hold_frames must be >= 0")
	}

	rt := cfg.Runtime
	if rt.RingBufferCapacityFrames < 8 {
		return aetherr.New(aetherr.InvalidConfig, "runtime.ring_buffer_capacity_frames must be >= 8")
	}
	if rt.MaxBatchFrames <= 0 || rt.MaxBatchFrames > rt.RingBufferCapacityFrames {
		return aetherr.New(aetherr.InvalidConfig, "runtime.max_batch_frames must be in (0, ring_buffer_capacity_frames]")
	}
	if !oneOf(rt.Clock, "monotonic", "from_input") {
		return aetherr.New(aetherr.InvalidConfig, "runtime.clock must be monotonic or from_input")
	}
	if rt.MaxJitterRatio < 0 || rt.MaxJitterRatio > 1 {
		return aetherr.New(aetherr.InvalidConfig, "runtime.max_jitter_ratio must be in [0,1]")
	}
	if !oneOf(rt.Backpressure, "block", "drop_oldest", "drop_newest") {
		return aetherr.New(aetherr.InvalidConfig, "runtime.backpressure must be block, drop_oldest, or drop_newest")
	}
	if rt.ReportEverySeconds <= 0 {
		return aetherr.New(aetherr.InvalidConfig, "runtime.report_every_seconds must be > 0")
	}

	return nil
}

// LoadAndValidate loads path (when non-empty) over Default and validates
// the result.
func LoadAndValidate(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := Load(&cfg, path); err != nil {
			return cfg, errors.Wrap(err, "LoadAndValidate")
		}
	}
	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
