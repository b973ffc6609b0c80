package feature

import (
	"errors"

	"github.com/harmolab/mixprep/internal/model"
)

var (
	// ErrUnsupportedCodec is returned when the provider cannot decode
	// the container format.
	ErrUnsupportedCodec = errors.New("feature: unsupported container format")

	// ErrEmptySignal is returned for files that decode to no samples
	// or to silence.
	ErrEmptySignal = errors.New("feature: empty or silent signal")
)

// Signal is a decoded audio stream: mono samples in [-1, 1] plus the
// sample rate and the full track duration in seconds.
type Signal struct {
	Samples    []float64
	SampleRate int
	Duration   float64
}

// Provider supplies the raw features per file. Implementations must be
// safe for concurrent use; the orchestrator calls them from parallel
// workers.
type Provider interface {
	// LoadSignal decodes the file at path into a mono signal.
	LoadSignal(path string) (*Signal, error)

	// RawTempo estimates the tempo of the signal in BPM. The estimate
	// is raw: octave errors are expected and corrected downstream.
	RawTempo(sig *Signal) (float64, error)

	// ChromaVector computes the L2-normalized pitch-class energy
	// profile of the signal.
	ChromaVector(sig *Signal) (model.FeatureVector, error)
}
