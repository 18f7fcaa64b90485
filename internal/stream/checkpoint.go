package stream

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/aethersense/aethersense/internal/model"
)

// signatureSalt is a fixed domain separator for the checkpoint signature
// derivation, the same role xtaci/kcptun's client/main.go SALT constant
// plays for its pbkdf2 key expansion.
const signatureSalt = "aethersense-checkpoint"

// fileSignature derives a cheap, collision-unlikely encoding of file
// identity from path, record format and size (spec.md §3, §9), reusing the teacher's own
// pbkdf2.Key(pass, salt, iter, keyLen, hash) call shape — here with a
// single iteration, since this is an identity fingerprint, not a secret
// key derivation.
func fileSignature(path, format string, size int64) string {
	pass := []byte(path)
	salt := []byte(fmt.Sprintf("%s:%s:%d", signatureSalt, format, size))
	sum := pbkdf2.Key(pass, salt, 1, 20, sha1.New)
	return hex.EncodeToString(sum)
}

// readCheckpoint best-effort loads "signature offset last_timestamp_ns"
// from path. ok is false if the file is absent or malformed.
func readCheckpoint(path string) (cp model.Checkpoint, ok bool) {
	if path == "" {
		return cp, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cp, false
	}
	fields := strings.Fields(string(data))
	if len(fields) != 3 {
		return cp, false
	}
	offset, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return cp, false
	}
	ts, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return cp, false
	}
	return model.Checkpoint{Signature: fields[0], Offset: offset, LastTimestamp: ts}, true
}

// writeCheckpoint truncate-and-rewrites path with the current checkpoint.
// Failure is non-fatal (spec.md §7): callers log and continue.
func writeCheckpoint(path string, cp model.Checkpoint) error {
	if path == "" {
		return nil
	}
	line := fmt.Sprintf("%s %d %d\n", cp.Signature, cp.Offset, cp.LastTimestamp)
	return os.WriteFile(path, []byte(line), 0o644)
}
