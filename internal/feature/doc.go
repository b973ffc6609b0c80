// Package feature extracts the audio features mixprep classifies on:
// a raw tempo estimate and a 12-dimensional pitch-class (chroma)
// energy vector.
//
// # Provider
//
// Provider is the interface the orchestrator consumes:
//
//	sig, err := provider.LoadSignal(path)
//	raw, err := provider.RawTempo(sig)
//	chroma, err := provider.ChromaVector(sig)
//
// Any error from a provider method means "no result" for that file;
// the batch carries on and reports the file with absent fields.
//
// # MP3Provider
//
// MP3Provider decodes MP3 containers natively. Other supported
// container extensions are still enumerated by the orchestrator but
// surface ErrUnsupportedCodec here, which downgrades to an
// analysis-skipped file.
//
// Chroma extraction follows the usual STFT recipe: Hann-windowed
// frames, FFT magnitudes folded onto the 12 semitone bins via MIDI
// note mapping, averaged over an excerpt taken from the center of the
// track, then L2-normalized. Tempo estimation autocorrelates the RMS
// energy envelope and picks the strongest periodicity in the 30-240
// BPM range.
package feature
