package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harmolab/mixprep/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Analysis settings
	Workers int `json:"workers"`

	// Rename settings
	RenameEnabled  bool                `json:"rename_enabled"`
	KeyNotation    string              `json:"key_notation"` // classic, alphanumeric
	RemoveLiterals []string            `json:"remove_literals"`
	ReplacePairs   []model.ReplacePair `json:"replace_pairs"`

	// Report settings
	ReportFormat string `json:"report_format"` // csv, json

	// Set list settings
	CreateSetList bool `json:"create_set_list"`
	M3UExtended   bool `json:"m3u_extended"`

	// Output settings
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Workers: 4,

		RenameEnabled: true,
		KeyNotation:   "classic",

		ReportFormat: "csv",

		CreateSetList: false,
		M3UExtended:   true,
	}
}

// Load reads settings from a JSON file. A missing file is not an
// error; defaults are returned.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.Workers < 1 {
		settings.Workers = 1
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToRenamePolicy converts settings to the immutable per-run policy.
func (s *Settings) ToRenamePolicy() model.RenamePolicy {
	return model.RenamePolicy{
		RenameEnabled:  s.RenameEnabled,
		Notation:       model.ParseNotation(s.KeyNotation),
		RemoveLiterals: s.RemoveLiterals,
		ReplacePairs:   s.ReplacePairs,
	}
}

// ParseRemoveList parses a comma-separated removal list, e.g.
// "Official Video, [HD]".
func ParseRemoveList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseReplaceList parses a comma-separated list of old:new pairs,
// e.g. "_: ,-:|". Entries without a colon or with an empty old side
// are skipped.
func ParseReplaceList(input string) []model.ReplacePair {
	var out []model.ReplacePair
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		oldStr, newStr, ok := strings.Cut(part, ":")
		if !ok || oldStr == "" {
			continue
		}
		out = append(out, model.ReplacePair{Old: oldStr, New: newStr})
	}
	return out
}
