package metrics

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ReportCSV is the metrics reporting surface spec.md calls an external
// collaborator — built the same way xtaci/kcptun's std/snmp.go builds its
// SnmpLogger: a ticker, a time-formatted rotating filename, a CSV row per
// tick, a header written only into an empty file.
//
// It reads from m; it never mutates it. Call it from its own goroutine and
// cancel it by closing stop.
func ReportCSV(m *RuntimeMetrics, path string, every time.Duration, stop <-chan struct{}) {
	if path == "" || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := appendReportRow(m, path); err != nil {
				log.Println("metrics: report:", err)
			}
		}
	}
}

func appendReportRow(m *RuntimeMetrics, path string) error {
	dir, file := filepath.Split(path)
	name := time.Now().Format(file)

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
		header := []string{
			"unix", "frames_read_total", "frames_processed_total", "frames_dropped_total",
			"windows_rejected_total", "shape_change_total", "window_fill_ratio",
			"latency_p50_us", "latency_p95_us", "latency_p99_us",
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	snap := m.Snapshot()
	row := []string{
		fmt.Sprint(time.Now().Unix()),
		fmt.Sprint(snap.FramesReadTotal),
		fmt.Sprint(snap.FramesProcessedTotal),
		fmt.Sprint(snap.FramesDroppedTotal),
		fmt.Sprint(snap.WindowsRejectedTotal),
		fmt.Sprint(snap.ShapeChangeTotal),
		fmt.Sprint(snap.WindowFillRatio),
		fmt.Sprint(snap.LatencyP50Micros),
		fmt.Sprint(snap.LatencyP95Micros),
		fmt.Sprint(snap.LatencyP99Micros),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
