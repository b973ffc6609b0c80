// Package rename computes canonical filenames from a track's
// classification and performs the conflict-aware, idempotent move.
//
// The name computation is a pure, ordered pipeline over the base name
// (CleanBaseName, Compose, SanitizeName) with no filesystem
// dependency, so it unit-tests without touching disk. The Engine then
// resolves collisions and performs the move as a single os.Rename,
// followed by a best-effort title-tag update.
//
// Renaming is idempotent: a file whose original name already carries
// the correct key and BPM tokens is never moved again.
//
// The Engine's existence-check-then-move sequence is not safe to run
// concurrently against the same directory; callers must funnel renames
// through a single goroutine (the orchestrator's collector does).
package rename
