package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/harmolab/mixprep/internal/model"
)

// WriteSummary prints the end-of-run summary: BPM statistics, key
// histogram, rename counters and a truncated per-file table.
func WriteSummary(w io.Writer, results []model.TrackResult, stats model.RunStatistics) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results to display")
		return
	}

	rule := strings.Repeat("=", 100)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ANALYSIS SUMMARY")
	fmt.Fprintln(w, rule)

	var bpms []float64
	var keys []string
	for _, r := range results {
		if r.HasBPM() {
			bpms = append(bpms, float64(r.BPM))
		}
		if r.HasKey() {
			keys = append(keys, r.Key)
		}
	}

	if len(bpms) > 0 {
		min, max := bpms[0], bpms[0]
		for _, b := range bpms {
			if b < min {
				min = b
			}
			if b > max {
				max = b
			}
		}
		fmt.Fprintln(w, "\nBPM")
		fmt.Fprintf(w, "  Average: %.2f\n", stat.Mean(bpms, nil))
		fmt.Fprintf(w, "  Min: %.0f\n", min)
		fmt.Fprintf(w, "  Max: %.0f\n", max)
		fmt.Fprintf(w, "  Std Dev: %.2f\n", stat.PopStdDev(bpms, nil))
	}

	if len(keys) > 0 {
		fmt.Fprintln(w, "\nKeys Found:")
		for _, kc := range keyHistogram(keys) {
			fmt.Fprintf(w, "  %s: %dx\n", kc.label, kc.count)
		}
	}

	fmt.Fprintln(w, "\nRename Summary:")
	fmt.Fprintf(w, "  Total files: %d\n", len(results))
	fmt.Fprintf(w, "  Renamed: %d\n", stats.Renamed)
	fmt.Fprintf(w, "  Errors: %d\n", stats.RenameErrors)
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nDETAILS:")
	tableRule := strings.Repeat("-", 120)
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "%-30s %-40s %-7s %-12s\n", "Original File", "New File", "BPM", "Key")
	fmt.Fprintln(w, tableRule)

	for _, r := range results {
		bpm := "N/A"
		if r.HasBPM() {
			bpm = fmt.Sprintf("%d", r.BPM)
		}
		keyLabel := "N/A"
		if r.HasKey() {
			keyLabel = r.Key
		}
		fmt.Fprintf(w, "%-30s %-40s %-7s %-12s\n",
			truncate(r.OriginalFilename, 30),
			truncate(r.Filename, 40),
			bpm,
			keyLabel,
		)
	}
	fmt.Fprintln(w, tableRule)
}

type keyCount struct {
	label string
	count int
}

// keyHistogram counts key labels and orders them by descending count,
// label ascending within a count for stable output.
func keyHistogram(keys []string) []keyCount {
	counts := make(map[string]int)
	for _, k := range keys {
		counts[k]++
	}

	hist := make([]keyCount, 0, len(counts))
	for label, count := range counts {
		hist = append(hist, keyCount{label: label, count: count})
	}
	sort.Slice(hist, func(i, j int) bool {
		if hist[i].count != hist[j].count {
			return hist[i].count > hist[j].count
		}
		return hist[i].label < hist[j].label
	})
	return hist
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
