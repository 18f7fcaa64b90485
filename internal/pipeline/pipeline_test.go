package pipeline

import (
	"math"
	"testing"

	"github.com/aethersense/aethersense/internal/config"
	"github.com/aethersense/aethersense/internal/metrics"
	"github.com/aethersense/aethersense/internal/model"
)

func motionFrame(t *testing.T, ts uint64, sc int, phase float64) *model.Frame {
	t.Helper()
	data := make([]model.Sample, sc)
	for i := range data {
		data[i] = model.Sample{Re: float32(math.Cos(phase)), Im: float32(math.Sin(phase))}
	}
	return &model.Frame{
		TimestampNs:     ts,
		CenterFreqHz:    5800000000,
		RxCount:         1,
		TxCount:         1,
		SubcarrierCount: uint16(sc),
		Data:            data,
	}
}

func TestProcessRejectsEmptyFrame(t *testing.T) {
	pl := New(config.Default().DSP, config.Default().Decision)
	m := metrics.New()
	_, err := pl.Process(&model.Frame{}, m)
	if err == nil {
		t.Fatal("expected error for empty frame")
	}
}

func TestProcessEmitsNilWhileFilling(t *testing.T) {
	cfg := config.Default()
	pl := New(cfg.DSP, cfg.Decision)
	m := metrics.New()

	decision, err := pl.Process(motionFrame(t, 0, 4, 0), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != nil {
		t.Error("expected no decision while window is still filling")
	}
}

func TestProcessClearsOnShapeChange(t *testing.T) {
	cfg := config.Default()
	pl := New(cfg.DSP, cfg.Decision)
	m := metrics.New()

	if _, err := pl.Process(motionFrame(t, 0, 4, 0), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decision, err := pl.Process(motionFrame(t, 1_000_000_000, 8, 0), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != nil {
		t.Error("expected nil decision on shape change")
	}
	snap := m.Snapshot()
	if snap.ShapeChangeTotal != 1 {
		t.Errorf("expected shape_change_total=1, got %d", snap.ShapeChangeTotal)
	}
}

func TestProcessEmitsDecisionOnceWindowFull(t *testing.T) {
	cfg := config.Default()
	cfg.DSP.WindowFrames = 16
	pl := New(cfg.DSP, cfg.Decision)
	m := metrics.New()

	var last *model.Decision
	for i := 0; i < 16; i++ {
		d, err := pl.Process(motionFrame(t, uint64(i)*33_333_333, 4, float64(i)*0.4), m)
		if err != nil {
			t.Fatalf("unexpected error at frame %d: %v", i, err)
		}
		if d != nil {
			last = d
		}
	}
	if last == nil {
		t.Fatal("expected a decision once the window filled")
	}
}
