package audio

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harmolab/mixprep/internal/model"
)

// SetListWriter generates an M3U playlist of analyzed tracks ordered
// by ascending BPM, the order a DJ would typically play them in.
//
// Tracks without a tempo are omitted. Within the same BPM the original
// enumeration order (filename order) is kept.
//
// Example:
//
//	writer := NewSetListWriter(true)
//	content := writer.Content(results)
//	os.WriteFile(filepath.Join(folder, "setlist.m3u"), []byte(content), 0644)
type SetListWriter struct {
	extended bool // include #EXTINF lines with duration and title
}

// NewSetListWriter creates a SetListWriter. extended selects the
// extended M3U format with #EXTINF metadata lines.
func NewSetListWriter(extended bool) *SetListWriter {
	return &SetListWriter{extended: extended}
}

// Content generates the playlist content for one run's results.
//
// Returns the playlist as a string, ready to be written to a file.
// Paths in the playlist are relative (just the filename), assuming the
// playlist lives in the analyzed folder.
func (w *SetListWriter) Content(results []model.TrackResult) string {
	tracks := make([]model.TrackResult, 0, len(results))
	for _, r := range results {
		if r.HasBPM() {
			tracks = append(tracks, r)
		}
	}
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].BPM < tracks[j].BPM
	})

	var sb strings.Builder

	if w.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if w.extended {
			title := strings.TrimSuffix(track.Filename, filepath.Ext(track.Filename))
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", int(track.DurationSeconds), title))
		}
		sb.WriteString(track.Filename + "\n")
	}

	return sb.String()
}
