// Package stream implements the Recovery Stream Reader (spec.md §4.1): a
// lazy sequence of validated Frame records recovered from a possibly
// corrupt, possibly rotated, file or tailed file.
package stream

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/aethersense/aethersense/internal/aetherr"
	"github.com/aethersense/aethersense/internal/config"
	"github.com/aethersense/aethersense/internal/model"
)

// corruptWindowSize is the rolling tally period for the corrupt-ratio guard
// (spec.md §3: "reset every 64 observations").
const corruptWindowSize = 64

// State is the reader's per-handle lifecycle position (spec.md §4.1).
type State int

const (
	StateOpened State = iota
	StateStreaming
	StateWaitingForData
	StateRotated
	StateClosedEOF
	StateClosedFatal
)

// Result is what Next returns: either a parsed Frame, an in-band
// empty/EOF-in-tail indication (both nil), or EOF=true marking file-mode
// exhaustion. A non-nil error from Next is always fatal.
type Result struct {
	Frame *model.Frame
	EOF   bool
}

// Reader turns path into a recovering sequence of Frames per spec.md §4.1.
type Reader struct {
	cfg  config.IO
	path string

	file *os.File
	br   *bufio.Reader

	partial       []byte
	bytesConsumed int64

	lastSignature string
	watcher       *rotationWatcher

	mu    sync.Mutex
	stats model.StreamStats

	corruptObserved int
	corruptCount    int

	state State
}

// Open opens path per io.start_position and (in tail mode) arms an
// optional rotation watcher.
func Open(cfg config.IO, path string) (*Reader, error) {
	r := &Reader{cfg: cfg, path: path}

	f, err := os.Open(path)
	if err != nil {
		return nil, aetherr.Wrap(aetherr.IoError, err, "open")
	}
	r.file = f
	r.br = bufio.NewReader(f)

	size, statErr := fileSize(f)
	if statErr != nil {
		f.Close()
		return nil, aetherr.Wrap(aetherr.IoError, statErr, "stat")
	}

	switch r.cfg.StartPosition {
	case "checkpoint":
		sig := fileSignature(path, cfg.Format, size)
		if cp, ok := readCheckpoint(cfg.CheckpointPath); ok && cp.Signature == sig {
			if _, err := f.Seek(cp.Offset, io.SeekStart); err != nil {
				f.Close()
				return nil, aetherr.Wrap(aetherr.IoError, err, "seek to checkpoint offset")
			}
			r.bytesConsumed = cp.Offset
			r.stats.CheckpointResumeTotal++
		}
	case "end":
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, aetherr.Wrap(aetherr.IoError, err, "seek to end")
		}
		r.bytesConsumed = size
	}

	r.lastSignature = fileSignature(path, cfg.Format, size)
	r.state = StateStreaming

	if cfg.Mode == "tail" {
		r.watcher = newRotationWatcher(path)
	}
	return r, nil
}

// Stats returns a snapshot of the reader's counters.
func (r *Reader) Stats() model.StreamStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Close releases the file handle and any rotation watcher.
func (r *Reader) Close() error {
	r.watcher.close()
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Next returns the next parsed Frame, an in-band empty indication (tail
// mode awaiting data, or a transient read retry), a file-mode EOF marker,
// or a fatal error (ParseError over the corrupt-ratio bound, or IoError
// past max_consecutive_errors / a rejected rotation).
func (r *Reader) Next() (Result, error) {
	for {
		if err := r.checkRotation(); err != nil {
			r.state = StateClosedFatal
			return Result{}, err
		}

		line, readErr := r.br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			r.mu.Lock()
			r.stats.ConsecutiveErrorsCurrent++
			exceeded := int(r.stats.ConsecutiveErrorsCurrent) > r.cfg.MaxConsecutiveErrors
			r.mu.Unlock()
			if exceeded {
				r.state = StateClosedFatal
				return Result{}, aetherr.Wrap(aetherr.IoError, readErr, "read: too many consecutive errors")
			}
			return Result{}, nil
		}

		if readErr == io.EOF {
			if len(line) > 0 {
				r.partial = append(r.partial, line...)
				r.mu.Lock()
				r.stats.RecordsPartialTotal++
				r.mu.Unlock()
				if len(r.partial) > r.cfg.MaxPartialLineBytes {
					r.partial = nil
					if fatal := r.observe(true); fatal {
						r.state = StateClosedFatal
						return Result{}, aetherr.New(aetherr.ParseError, "corrupt ratio exceeded max_corrupt_ratio (partial line overflow)")
					}
				}
			}

			if r.cfg.Mode == "tail" {
				r.state = StateWaitingForData
				r.waitForData()
				r.state = StateStreaming
				return Result{}, nil
			}

			r.state = StateClosedEOF
			return Result{EOF: true}, nil
		}

		// Complete line.
		full := line
		if len(r.partial) > 0 {
			full = string(r.partial) + line
			r.partial = nil
		}
		r.bytesConsumed += int64(len(full))
		full = strings.TrimRight(full, "\r\n")
		if full == "" {
			continue
		}

		frame, parseErr := r.parse(full)
		if parseErr != nil {
			if fatal := r.observe(true); fatal {
				r.state = StateClosedFatal
				return Result{}, aetherr.New(aetherr.ParseError, "corrupt ratio exceeded max_corrupt_ratio")
			}
			continue
		}

		r.mu.Lock()
		r.stats.RecordsTotal++
		r.stats.ConsecutiveErrorsCurrent = 0
		r.mu.Unlock()
		if fatal := r.observe(false); fatal {
			r.state = StateClosedFatal
			return Result{}, aetherr.New(aetherr.ParseError, "corrupt ratio exceeded max_corrupt_ratio")
		}

		cp := model.Checkpoint{Signature: r.lastSignature, Offset: r.bytesConsumed, LastTimestamp: frame.TimestampNs}
		if err := writeCheckpoint(r.cfg.CheckpointPath, cp); err == nil && r.cfg.CheckpointPath != "" {
			r.mu.Lock()
			r.stats.CheckpointWritesTotal++
			r.mu.Unlock()
		}

		return Result{Frame: frame}, nil
	}
}

// observe tallies one line (corrupt or accepted) into the rolling 64-line
// window (spec.md §3: "rolling tally reset every 64 observations"). The
// ratio is only evaluated once a window completes, so a handful of early
// corrupt lines can't trip the gate before there's a meaningful sample —
// this is what lets a looser max_corrupt_ratio ride out a corrupt lines
// all clustered at the very start of the stream while a stricter one still
// catches it at the same window boundary.
func (r *Reader) observe(corrupt bool) (fatal bool) {
	if corrupt {
		r.mu.Lock()
		r.stats.RecordsCorruptTotal++
		r.mu.Unlock()
		r.corruptCount++
	}
	r.corruptObserved++

	if r.corruptObserved < corruptWindowSize {
		return false
	}
	ratio := float64(r.corruptCount) / float64(r.corruptObserved)
	r.corruptObserved = 0
	r.corruptCount = 0
	return ratio > r.cfg.MaxCorruptRatio
}

func (r *Reader) parse(line string) (*model.Frame, error) {
	switch r.cfg.Format {
	case "jsonl":
		return parseJSONLLine(line)
	default:
		return parseCSVLine(line)
	}
}

// checkRotation computes the cheap (path, format, size) signature before every
// read and reacts per io.rotate_handling when it changes (spec.md §4.1).
func (r *Reader) checkRotation() error {
	size, err := fileSize(r.file)
	if err != nil {
		return aetherr.Wrap(aetherr.IoError, err, "stat during rotation check")
	}
	sig := fileSignature(r.path, r.cfg.Format, size)
	if sig == r.lastSignature {
		return nil
	}

	r.mu.Lock()
	r.stats.RotationsDetectedTotal++
	r.mu.Unlock()

	if r.cfg.RotateHandling == "error" {
		return aetherr.New(aetherr.IoError, "file rotated and rotate_handling is error")
	}

	r.state = StateRotated
	newFile, err := os.Open(r.path)
	if err != nil {
		return aetherr.Wrap(aetherr.IoError, err, "reopen after rotation")
	}
	r.file.Close()
	r.file = newFile
	r.br = bufio.NewReader(newFile)
	r.partial = nil
	r.bytesConsumed = 0

	newSize, err := fileSize(newFile)
	if err != nil {
		return aetherr.Wrap(aetherr.IoError, err, "stat reopened file")
	}
	r.lastSignature = fileSignature(r.path, r.cfg.Format, newSize)
	r.state = StateOpened
	return nil
}

// waitForData sleeps poll_interval_ms, waking early if the optional
// rotation watcher fires first.
func (r *Reader) waitForData() {
	timer := time.NewTimer(time.Duration(r.cfg.PollIntervalMs) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.watcher.wake():
	}
}

func fileSize(f *os.File) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "stat")
	}
	return info.Size(), nil
}
