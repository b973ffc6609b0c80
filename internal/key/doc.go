// Package key implements musical key classification and key notation.
//
// # Template bank
//
// The bank holds 24 unit-normalized 12-dimensional reference vectors:
// the Krumhansl major and minor pitch-class profiles, each rotated to
// every semitone. It is built once at process start and never mutated.
//
// # Classification
//
// Classify correlates a pitch-class feature vector against every
// template and returns the best-matching key label together with the
// correlation score and a qualitative confidence tier:
//
//	c := key.Classify(chroma)
//	fmt.Println(c.Key, c.Tier) // e.g. "Am High"
//
// # Camelot notation
//
// ToAlphanumeric and FromAlphanumeric translate between classic key
// labels ("Am") and Camelot wheel positions ("8A"). Labels without a
// wheel position pass through unchanged.
package key
