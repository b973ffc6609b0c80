// Package model defines the core data structures used throughout
// mixprep.
//
// # Classification
//
// Classification is the output of the tonal classifier for one track:
//
//	c := model.Classification{Key: "Am", Score: 0.91, Tier: model.ConfidenceHigh}
//
// # RenamePolicy
//
// RenamePolicy carries the operator's renaming options for a run.
// It is built once (from flags, the settings file, or the TUI) and is
// never mutated while a run is in flight:
//
//	policy := model.RenamePolicy{
//	    RenameEnabled:  true,
//	    Notation:       model.NotationAlphanumeric,
//	    RemoveLiterals: []string{"(Official Video)"},
//	    ReplacePairs:   []model.ReplacePair{{Old: "_", New: " "}},
//	}
//
// # TrackResult
//
// TrackResult is the per-file record assembled by the orchestrator:
// original and final names, BPM and key when analysis succeeded
// (zero value / empty string when it did not), duration, size, the
// rename outcome and a timestamp. Results are created once per file
// and never mutated afterwards.
package model
