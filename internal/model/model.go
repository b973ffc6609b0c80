package model

import (
	"strings"
	"time"
)

// FeatureVector is a normalized 12-dimensional pitch-class energy
// profile (one energy per semitone, C through B). Vectors handed to
// the classifier are expected to be L2-normalized.
type FeatureVector [12]float64

// Confidence is the qualitative tier assigned to a key classification.
type Confidence int

const (
	// ConfidenceLow indicates a best correlation of 0.5 or below.
	ConfidenceLow Confidence = iota

	// ConfidenceMedium indicates a best correlation above 0.5.
	ConfidenceMedium

	// ConfidenceHigh indicates a best correlation above 0.8.
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "High"
	case ConfidenceMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// Classification is the tonal classifier's verdict for one track.
type Classification struct {
	// Key is the classic key label, e.g. "C" or "A#m".
	Key string

	// Score is the correlation of the feature vector with the winning
	// template (dot product of two unit vectors).
	Score float64

	// Tier is the qualitative confidence derived from Score.
	Tier Confidence
}

// Notation selects how key labels are written into filenames.
type Notation int

const (
	// NotationClassic writes letter-name labels ("Am", "F#").
	NotationClassic Notation = iota

	// NotationAlphanumeric writes Camelot wheel positions ("8A", "2B").
	NotationAlphanumeric
)

func (n Notation) String() string {
	if n == NotationAlphanumeric {
		return "alphanumeric"
	}
	return "classic"
}

// ParseNotation maps a settings/flag value to a Notation.
// Unrecognized values fall back to classic.
func ParseNotation(s string) Notation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alphanumeric", "camelot":
		return NotationAlphanumeric
	default:
		return NotationClassic
	}
}

// ReplacePair is one ordered substitution applied to a base name.
type ReplacePair struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// RenamePolicy holds the operator's renaming options. Immutable for
// the duration of a run.
type RenamePolicy struct {
	// RenameEnabled gates all filesystem moves. When false the run is
	// analysis-only.
	RenameEnabled bool

	// Notation selects the key spelling written into filenames.
	Notation Notation

	// RemoveLiterals are exact substrings stripped from the base name,
	// in order.
	RemoveLiterals []string

	// ReplacePairs are substring substitutions applied sequentially;
	// later pairs see the result of earlier ones.
	ReplacePairs []ReplacePair
}

// TrackResult is the per-file record produced by a run.
//
// BPM of 0 and an empty Key mean the corresponding analysis stage
// failed for this file; the file is still reported. Score is the raw
// template correlation behind the classification; Confidence is its
// qualitative tier.
type TrackResult struct {
	OriginalFilename string    `json:"original_filename"`
	Filename         string    `json:"filename"`
	Path             string    `json:"path"`
	BPM              int       `json:"bpm,omitempty"`
	Key              string    `json:"key,omitempty"`
	Confidence       string    `json:"confidence,omitempty"`
	Score            float64   `json:"score,omitempty"`
	DurationSeconds  float64   `json:"duration_seconds"`
	SizeMB           float64   `json:"size_mb"`
	Renamed          bool      `json:"renamed"`
	Timestamp        time.Time `json:"timestamp"`
}

// HasBPM reports whether tempo analysis produced a value.
func (r TrackResult) HasBPM() bool { return r.BPM > 0 }

// HasKey reports whether key analysis produced a label.
func (r TrackResult) HasKey() bool { return r.Key != "" }

// RunStatistics are the aggregate counters for one run. Owned and
// updated exclusively by the orchestrator's collecting stage.
type RunStatistics struct {
	TotalFiles   int
	Renamed      int
	RenameErrors int
}

// supportedExts is the fixed set of container extensions the tool
// enumerates (lower case, including the dot).
var supportedExts = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".ogg":  {},
	".m4a":  {},
	".aac":  {},
}

// IsSupportedExt reports whether ext (any case, with leading dot)
// is an enumerable audio container extension.
func IsSupportedExt(ext string) bool {
	_, ok := supportedExts[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions returns the extension set as a sorted-insensitive
// copy for display purposes.
func SupportedExtensions() []string {
	return []string{".mp3", ".wav", ".flac", ".ogg", ".m4a", ".aac"}
}
