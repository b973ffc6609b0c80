package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harmolab/mixprep/internal/model"
)

// Format selects the artifact encoding.
type Format int

const (
	// FormatCSV writes a tabular artifact with a fixed column order.
	FormatCSV Format = iota

	// FormatJSON writes a structured artifact.
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "csv"
}

// ParseFormat maps a settings/flag value to a Format. Unrecognized
// values fall back to CSV.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatCSV
}

// csvColumns is the fixed CSV header, in order.
var csvColumns = []string{
	"original_filename", "filename", "path", "bpm", "key", "confidence",
	"duration_seconds", "size_mb", "renamed", "timestamp",
}

// Writer persists run results as one timestamped artifact per run.
type Writer struct {
	format Format

	// now stamps artifact names; overridable in tests.
	now func() time.Time
}

// NewWriter creates a Writer for the given format.
func NewWriter(format Format) *Writer {
	return &Writer{format: format, now: time.Now}
}

// Write stores the results inside folder and returns the artifact
// path. Callers should not invoke Write for empty result sets; a run
// that found nothing produces no artifact.
func (w *Writer) Write(folder string, results []model.TrackResult) (string, error) {
	stamp := w.now().Format("20060102_150405")

	switch w.format {
	case FormatJSON:
		path := filepath.Join(folder, fmt.Sprintf("music_analysis_%s.json", stamp))
		return path, w.writeJSON(path, results)
	default:
		path := filepath.Join(folder, fmt.Sprintf("music_analysis_%s.csv", stamp))
		return path, w.writeCSV(path, results)
	}
}

func (w *Writer) writeCSV(path string, results []model.TrackResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}

	for _, r := range results {
		bpm := ""
		if r.HasBPM() {
			bpm = strconv.Itoa(r.BPM)
		}
		// The confidence column holds the raw template correlation;
		// the qualitative tier only appears in the summary and JSON.
		confidence := ""
		if r.HasKey() {
			confidence = fmt.Sprintf("%.3f", r.Score)
		}
		row := []string{
			r.OriginalFilename,
			r.Filename,
			r.Path,
			bpm,
			r.Key,
			confidence,
			fmt.Sprintf("%.2f", r.DurationSeconds),
			fmt.Sprintf("%.2f", r.SizeMB),
			strconv.FormatBool(r.Renamed),
			r.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeJSON(path string, results []model.TrackResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}
