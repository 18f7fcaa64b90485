package pipeline

import (
	"reflect"
	"testing"

	"github.com/aethersense/aethersense/internal/model"
)

func fs(ts uint64, sc int) model.FrameSignals {
	amp := make([]float64, sc)
	phi := make([]float64, sc)
	for i := range amp {
		amp[i] = float64(i)
	}
	return model.FrameSignals{TimestampNs: ts, AmplitudeBySC: amp, PhaseBySC: phi}
}

func TestWindowFIFOEviction(t *testing.T) {
	w := newWindow(2)
	w.push(fs(1, 3))
	w.push(fs(2, 3))
	if !w.full() {
		t.Fatal("expected window full at capacity")
	}
	w.push(fs(3, 3))
	ts := w.timestamps()
	want := []uint64{2, 3}
	if !reflect.DeepEqual(ts, want) {
		t.Errorf("expected FIFO eviction, got timestamps %v want %v", ts, want)
	}
}

func TestWindowClear(t *testing.T) {
	w := newWindow(4)
	w.push(fs(1, 3))
	w.clear()
	if w.subcarrierCount() != 0 {
		t.Errorf("expected subcarrierCount 0 after clear, got %d", w.subcarrierCount())
	}
	if w.full() {
		t.Error("expected not full after clear")
	}
}

func TestWindowTranspose(t *testing.T) {
	w := newWindow(2)
	w.push(fs(1, 2))
	w.push(fs(2, 2))
	amp, phi := w.transpose()
	if len(amp) != 2 || len(phi) != 2 {
		t.Fatalf("expected 2 subcarrier series, got amp=%d phi=%d", len(amp), len(phi))
	}
	if len(amp[0]) != 2 {
		t.Errorf("expected time series length 2, got %d", len(amp[0]))
	}
}
