package stream

import (
	"path/filepath"
	"testing"

	"github.com/aethersense/aethersense/internal/model"
)

func TestFileSignatureStableAcrossCalls(t *testing.T) {
	a := fileSignature("/tmp/x.csv", "csv", 100)
	b := fileSignature("/tmp/x.csv", "csv", 100)
	if a != b {
		t.Errorf("signature should be stable for identical inputs: %v vs %v", a, b)
	}
}

func TestFileSignatureChangesWithSize(t *testing.T) {
	a := fileSignature("/tmp/x.csv", "csv", 100)
	b := fileSignature("/tmp/x.csv", "csv", 200)
	if a == b {
		t.Error("signature should change when size changes (e.g. after truncation)")
	}
}

func TestWriteAndReadCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint")
	want := model.Checkpoint{Signature: "abc123", Offset: 4096, LastTimestamp: 9999}

	if err := writeCheckpoint(path, want); err != nil {
		t.Fatalf("writeCheckpoint: %v", err)
	}
	got, ok := readCheckpoint(path)
	if !ok {
		t.Fatal("expected checkpoint to be readable after write")
	}
	if got != want {
		t.Errorf("round-trip mismatch: got %+v want %+v", got, want)
	}
}

func TestReadCheckpointMissingFile(t *testing.T) {
	if _, ok := readCheckpoint("/nonexistent/path/checkpoint"); ok {
		t.Error("expected ok=false for missing checkpoint file")
	}
}

func TestWriteCheckpointEmptyPathIsNoop(t *testing.T) {
	if err := writeCheckpoint("", model.Checkpoint{}); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
