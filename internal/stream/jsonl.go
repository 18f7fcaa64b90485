package stream

import (
	"encoding/json"

	"github.com/aethersense/aethersense/internal/aetherr"
	"github.com/aethersense/aethersense/internal/model"
)

// jsonlRecord mirrors the JSONL record grammar from spec.md §6. Pointer
// fields let a missing key be distinguished from an explicit zero, per
// spec.md §4.1's "missing keys ... ⇒ corrupt" rule.
type jsonlRecord struct {
	TimestampNs     *uint64   `json:"timestamp_ns"`
	CenterFreqHz    *uint64   `json:"center_freq_hz"`
	Rx              *uint8    `json:"rx"`
	Tx              *uint8    `json:"tx"`
	SubcarrierCount *uint16   `json:"subcarrier_count"`
	DataRe          []float64 `json:"data_re"`
	DataIm          []float64 `json:"data_im"`
}

// parseJSONLLine parses one JSONL record. JSON decoding is deliberately
// permissive per spec.md §4.1: missing keys, bad numbers, or an re/im
// length mismatch are all just corrupt, not a panic.
func parseJSONLLine(line string) (*model.Frame, error) {
	var rec jsonlRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, aetherr.Wrap(aetherr.ParseError, err, "jsonl: decode")
	}
	if rec.TimestampNs == nil || rec.CenterFreqHz == nil || rec.Rx == nil ||
		rec.Tx == nil || rec.SubcarrierCount == nil {
		return nil, aetherr.New(aetherr.ParseError, "jsonl: missing required key")
	}
	if len(rec.DataRe) != len(rec.DataIm) {
		return nil, aetherr.New(aetherr.ParseError, "jsonl: data_re/data_im length mismatch")
	}

	data := make([]model.Sample, len(rec.DataRe))
	for i := range rec.DataRe {
		data[i] = model.Sample{Re: float32(rec.DataRe[i]), Im: float32(rec.DataIm[i])}
	}

	frame := &model.Frame{
		TimestampNs:     *rec.TimestampNs,
		CenterFreqHz:    *rec.CenterFreqHz,
		RxCount:         *rec.Rx,
		TxCount:         *rec.Tx,
		SubcarrierCount: *rec.SubcarrierCount,
		Data:            data,
	}
	if !frame.Valid() {
		return nil, aetherr.New(aetherr.ParseError, "jsonl: data length does not match rx*tx*sc")
	}
	return frame, nil
}
