package feature

import "math"

// Beat-tracking parameters. The energy envelope uses short frames so
// beat-level periodicities survive; the search range deliberately
// exceeds the plausible musical range since octave errors are
// corrected downstream.
const (
	envelopeFrameSize = 1024
	envelopeHopSize   = 512

	minSearchBPM = 30.0
	maxSearchBPM = 240.0
)

// RawTempo estimates the dominant tempo of the signal in BPM by
// autocorrelating the RMS energy envelope and picking the strongest
// periodicity in the search range.
func (p *MP3Provider) RawTempo(sig *Signal) (float64, error) {
	if sig == nil || len(sig.Samples) == 0 {
		return 0, ErrEmptySignal
	}

	envelope := rmsEnvelope(sig.Samples, envelopeFrameSize, envelopeHopSize)
	if len(envelope) < 8 {
		return 0, ErrEmptySignal
	}

	// Remove the mean so the autocorrelation reflects periodicity
	// rather than overall loudness.
	mean := 0.0
	for _, e := range envelope {
		mean += e
	}
	mean /= float64(len(envelope))
	allSilent := true
	for i := range envelope {
		if envelope[i] > 0 {
			allSilent = false
		}
		envelope[i] -= mean
	}
	if allSilent {
		return 0, ErrEmptySignal
	}

	// Lag bounds for the BPM search range. One envelope step is
	// hopSize samples.
	framesPerSecond := float64(sig.SampleRate) / float64(envelopeHopSize)
	minLag := int(framesPerSecond * 60.0 / maxSearchBPM)
	maxLag := int(framesPerSecond * 60.0 / minSearchBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(envelope) {
		maxLag = len(envelope) - 1
	}
	if minLag > maxLag {
		return 0, ErrEmptySignal
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		corr := 0.0
		for i := 0; i+lag < len(envelope); i++ {
			corr += envelope[i] * envelope[i+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0, ErrEmptySignal
	}

	period := float64(bestLag) / framesPerSecond
	return 60.0 / period, nil
}

// rmsEnvelope computes the frame-wise RMS energy of the signal.
func rmsEnvelope(samples []float64, frameSize, hopSize int) []float64 {
	if len(samples) < frameSize {
		return nil
	}

	envelope := make([]float64, 0, (len(samples)-frameSize)/hopSize+1)
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		sum := 0.0
		for _, s := range samples[start : start+frameSize] {
			sum += s * s
		}
		envelope = append(envelope, math.Sqrt(sum/float64(frameSize)))
	}
	return envelope
}
