package stream

import "testing"

func TestParseJSONLLineValid(t *testing.T) {
	line := `{"timestamp_ns":1000000000,"center_freq_hz":5800000000,"rx":1,"tx":1,"subcarrier_count":2,"data_re":[0.1,0.2],"data_im":[0.0,0.0]}`
	frame, err := parseJSONLLine(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frame.Data) != 2 || frame.Data[0].Re != 0.1 {
		t.Errorf("unexpected data: %+v", frame.Data)
	}
}

func TestParseJSONLLineMissingKey(t *testing.T) {
	line := `{"timestamp_ns":1,"center_freq_hz":2,"rx":1,"tx":1,"data_re":[0.1],"data_im":[0.0]}`
	if _, err := parseJSONLLine(line); err == nil {
		t.Error("expected error for missing subcarrier_count key")
	}
}

func TestParseJSONLLineLengthMismatch(t *testing.T) {
	line := `{"timestamp_ns":1,"center_freq_hz":2,"rx":1,"tx":1,"subcarrier_count":2,"data_re":[0.1,0.2],"data_im":[0.0]}`
	if _, err := parseJSONLLine(line); err == nil {
		t.Error("expected error for data_re/data_im length mismatch")
	}
}

func TestParseJSONLLineMalformed(t *testing.T) {
	if _, err := parseJSONLLine("not json"); err == nil {
		t.Error("expected decode error for malformed JSON")
	}
}
