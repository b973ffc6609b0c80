// Package analyze drives a full run: enumerate a folder, analyze each
// file, rename it, and persist the results.
//
// The Manager fans feature extraction out over a bounded worker pool
// (decoding and DSP dominate the run time), while renames, result
// collection and statistics stay on a single collecting goroutine.
// That keeps the rename engine's existence-check-then-move sequence
// serialized for the target directory and makes the statistics
// single-writer without locks.
//
// Operational output flows through a ProgressEvent callback, which the
// CLI prints and the TUI shows in its log tail. One file failing at
// any stage never aborts the batch; the file is reported with absent
// fields and processing continues.
package analyze
