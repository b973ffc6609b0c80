// Package config manages mixprep settings.
//
// Settings are stored as JSON. Load returns defaults when the file
// does not exist, so a settings file is never required:
//
//	settings, err := config.Load(path)
//	policy := settings.ToRenamePolicy()
//
// ParseRemoveList and ParseReplaceList parse the comma-separated
// option strings the CLI flags and the TUI use for the name-cleaning
// policy ("Official Video, [HD]" and "_: ,-:|" respectively).
package config
