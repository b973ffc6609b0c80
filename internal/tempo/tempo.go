// Package tempo normalizes raw tempo estimates from the feature
// provider.
//
// Beat trackers frequently lock onto half or double the perceived
// tempo (an octave error). Normalize folds implausible estimates back
// into the usual musical range:
//
//	tempo.Normalize(65.4)  // 130 (half-time detection, doubled)
//	tempo.Normalize(220.0) // 110 (double-time detection, halved)
//	tempo.Normalize(140.9) // 140
package tempo

// Octave-correction thresholds. Estimates below lowBPM are assumed
// half-time, above highBPM double-time.
const (
	lowBPM  = 70
	highBPM = 200
)

// Normalize truncates a raw tempo estimate to an integer BPM and
// applies at most one octave correction: values below 70 are doubled,
// values above 200 are halved. The corrected value is intentionally
// not re-checked against the thresholds.
func Normalize(raw float64) int {
	bpm := int(raw)

	if bpm < lowBPM {
		return bpm * 2
	}
	if bpm > highBPM {
		return bpm / 2
	}
	return bpm
}
