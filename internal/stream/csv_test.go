package stream

import "testing"

// TestParseCSVLineSingleFrame is end-to-end scenario 1 from spec.md §8.
func TestParseCSVLineSingleFrame(t *testing.T) {
	line := "1000000000,5800000000,1,1,2,0.1;0.2,0.0;0.0"
	frame, err := parseCSVLine(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.TimestampNs != 1000000000 || frame.CenterFreqHz != 5800000000 {
		t.Errorf("unexpected header fields: %+v", frame)
	}
	if frame.RxCount != 1 || frame.TxCount != 1 || frame.SubcarrierCount != 2 {
		t.Errorf("unexpected shape: %+v", frame)
	}
	if len(frame.Data) != 2 || frame.Data[0].Re != 0.1 || frame.Data[1].Re != 0.2 {
		t.Errorf("unexpected data: %+v", frame.Data)
	}
}

func TestParseCSVLineWrongFieldCount(t *testing.T) {
	if _, err := parseCSVLine("1,2,3"); err == nil {
		t.Error("expected error for wrong field count")
	}
}

func TestParseCSVLineShapeMismatch(t *testing.T) {
	// declares sc=3 but only supplies 2 re/im values
	line := "1,2,1,1,3,0.1;0.2,0.0;0.0"
	if _, err := parseCSVLine(line); err == nil {
		t.Error("expected error for data length not matching rx*tx*sc")
	}
}
