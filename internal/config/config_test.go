package config

import "testing"

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := Validate(&cfg); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := Default()
	cfg.IO.Format = "xml"
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for unsupported io.format")
	}
}

func TestValidateRejectsInvertedThresholds(t *testing.T) {
	cfg := Default()
	cfg.Decision.ThresholdOff = 1.0
	cfg.Decision.ThresholdOn = 0.5
	if err := Validate(&cfg); err == nil {
		t.Error("expected error when threshold_off >= threshold_on")
	}
}

func TestValidateRejectsSmallWindow(t *testing.T) {
	cfg := Default()
	cfg.DSP.WindowFrames = 4
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for window_frames < 16")
	}
}

func TestValidateRejectsBatchOverCapacity(t *testing.T) {
	cfg := Default()
	cfg.Runtime.MaxBatchFrames = cfg.Runtime.RingBufferCapacityFrames + 1
	if err := Validate(&cfg); err == nil {
		t.Error("expected error when max_batch_frames exceeds capacity")
	}
}
