package stream

import (
	"strconv"
	"strings"

	"github.com/aethersense/aethersense/internal/aetherr"
	"github.com/aethersense/aethersense/internal/model"
)

// parseCSVLine parses the 7-field CSV record grammar from spec.md §6:
// ts_ns,freq_hz,rx,tx,sc,re0;re1;...,im0;im1;...
func parseCSVLine(line string) (*model.Frame, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 7 {
		return nil, aetherr.New(aetherr.ParseError, "csv: expected 7 fields")
	}

	ts, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: timestamp_ns")
	}
	freq, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: center_freq_hz")
	}
	rx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 8)
	if err != nil {
		return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: rx")
	}
	tx, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 8)
	if err != nil {
		return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: tx")
	}
	sc, err := strconv.ParseUint(strings.TrimSpace(fields[4]), 10, 16)
	if err != nil {
		return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: sc")
	}

	reParts := strings.Split(fields[5], ";")
	imParts := strings.Split(fields[6], ";")
	if len(reParts) != len(imParts) {
		return nil, aetherr.New(aetherr.ParseError, "csv: re/im length mismatch")
	}

	data := make([]model.Sample, len(reParts))
	for i := range reParts {
		re, err := strconv.ParseFloat(strings.TrimSpace(reParts[i]), 64)
		if err != nil {
			return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: re value")
		}
		im, err := strconv.ParseFloat(strings.TrimSpace(imParts[i]), 64)
		if err != nil {
			return nil, aetherr.Wrap(aetherr.ParseError, err, "csv: im value")
		}
		data[i] = model.Sample{Re: float32(re), Im: float32(im)}
	}

	frame := &model.Frame{
		TimestampNs:     ts,
		CenterFreqHz:    freq,
		RxCount:         uint8(rx),
		TxCount:         uint8(tx),
		SubcarrierCount: uint16(sc),
		Data:            data,
	}
	if !frame.Valid() {
		return nil, aetherr.New(aetherr.ParseError, "csv: data length does not match rx*tx*sc")
	}
	return frame, nil
}
