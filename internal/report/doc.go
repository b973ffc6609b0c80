// Package report persists run results and presents the human-readable
// summary.
//
// # Artifacts
//
// Writer produces one timestamped artifact per run inside the analyzed
// folder, either tabular (CSV) or structured (JSON):
//
//	writer := report.NewWriter(report.FormatCSV)
//	path, err := writer.Write(folder, results)
//	// folder/music_analysis_20240115_093042.csv
//
// CSV columns are fixed: original_filename, filename, path, bpm, key,
// confidence, duration_seconds, size_mb, renamed, timestamp.
//
// # Summary
//
// WriteSummary prints the aggregate view a run ends with: BPM
// statistics, a key histogram sorted by descending count, rename
// counters and a truncated per-file listing.
package report
