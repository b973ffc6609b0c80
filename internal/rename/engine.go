package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harmolab/mixprep/internal/key"
	"github.com/harmolab/mixprep/internal/model"
)

// TitleWriter is the tag store the engine synchronizes after a rename.
type TitleWriter interface {
	// WriteTitle sets the title tag of the file at path. An error is
	// non-fatal to the rename.
	WriteTitle(path, title string) error
}

// Result reports the outcome of one rename.
type Result struct {
	// FinalPath is where the file lives after the operation. Equal to
	// the input path when no move was needed or the move failed.
	FinalPath string

	// Moved is true when a physical filesystem move happened.
	Moved bool

	// TagErr carries a tag-store failure, if any. A successful move
	// with a failed tag write is still a successful rename.
	TagErr error
}

// Engine renames files to their canonical classified name and keeps
// the title tag in sync.
//
// Rename's collision resolution is a check-then-move sequence: run all
// renames for one directory on a single goroutine.
type Engine struct {
	tags TitleWriter
}

// NewEngine creates an Engine writing title tags through tags.
func NewEngine(tags TitleWriter) *Engine {
	return &Engine{tags: tags}
}

// Rename moves the file at path to "<key> - <bpm> BPM - <cleaned
// original name><ext>" in the same directory, resolving name
// collisions with numeric suffixes, and writes the new stem as the
// file's title tag.
//
// If the original name already carries the target key and BPM as whole
// words, or the computed name equals the current one, no move is
// performed; the title tag is still refreshed. A returned error means
// the file was not moved and remains at path.
func (e *Engine) Rename(path, keyLabel string, bpm int, policy model.RenamePolicy) (Result, error) {
	res := Result{FinalPath: path}

	if _, err := os.Stat(path); err != nil {
		return res, fmt.Errorf("source file: %w", err)
	}
	if !key.IsValidLabel(keyLabel) {
		return res, fmt.Errorf("invalid key label %q", keyLabel)
	}
	if bpm <= 0 {
		return res, fmt.Errorf("invalid bpm %d", bpm)
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	displayKey, otherNotation := notationPair(keyLabel, policy.Notation)
	cleaned := CleanBaseName(stem, policy, otherNotation)

	// Already correctly named: key and BPM both present in the
	// original stem. Skip the move, refresh the tag.
	if containsWholeWord(stem, displayKey) && containsWholeWord(stem, strconv.Itoa(bpm)) {
		res.TagErr = e.tags.WriteTitle(path, stem)
		return res, nil
	}

	composed := Compose(displayKey, bpm, cleaned)
	finalName := composed

	candidate := filepath.Join(dir, finalName+ext)
	for counter := 1; candidate != path; counter++ {
		if _, err := os.Stat(candidate); err != nil {
			break
		}
		finalName = fmt.Sprintf("%s_%d", composed, counter)
		candidate = filepath.Join(dir, finalName+ext)
	}

	// The computed name is what the file is already called: tag only.
	if candidate == path {
		res.TagErr = e.tags.WriteTitle(path, finalName)
		return res, nil
	}

	if err := os.Rename(path, candidate); err != nil {
		return res, fmt.Errorf("move %s: %w", filepath.Base(path), err)
	}

	res.FinalPath = candidate
	res.Moved = true
	res.TagErr = e.tags.WriteTitle(candidate, finalName)
	return res, nil
}

// notationPair resolves the key spelling to write into the name and
// the spelling of the opposite notation to purge from it. The purge
// token is empty when the label has no distinct alternative spelling.
func notationPair(keyLabel string, notation model.Notation) (display, other string) {
	code := key.ToAlphanumeric(keyLabel)

	if notation == model.NotationAlphanumeric {
		// Writing the wheel code: stale classic labels get purged.
		return code, keyLabel
	}

	// Writing the classic label: stale wheel codes get purged, when
	// the label has one.
	if code != keyLabel {
		return keyLabel, code
	}
	return keyLabel, ""
}
