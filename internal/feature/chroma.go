package feature

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/harmolab/mixprep/internal/model"
)

// STFT parameters for chroma extraction.
const (
	chromaWindowSize = 4096
	chromaHopSize    = 1024

	// Frequency band folded onto the chroma bins. Below ~E2 the bin
	// resolution is too coarse to separate semitones; above 8 kHz only
	// noise and cymbals remain.
	chromaMinFreq = 80.0
	chromaMaxFreq = 8000.0
)

// ChromaVector computes the mean pitch-class energy profile over a
// center excerpt of the signal, L2-normalized.
//
// Each Hann-windowed frame's FFT magnitudes are squared and folded
// onto 12 semitone bins: bin = round(midi(f)) mod 12, with bin 0 = C.
func (p *MP3Provider) ChromaVector(sig *Signal) (model.FeatureVector, error) {
	var chroma model.FeatureVector

	if sig == nil || len(sig.Samples) == 0 {
		return chroma, ErrEmptySignal
	}

	samples := centerExcerpt(sig)
	if len(samples) < chromaWindowSize {
		// Short file: pad a single frame with silence.
		padded := make([]float64, chromaWindowSize)
		copy(padded, samples)
		samples = padded
	}

	window := hannWindow(chromaWindowSize)
	mapping := chromaMapping(chromaWindowSize, sig.SampleRate)
	frame := make([]float64, chromaWindowSize)

	frames := 0
	for start := 0; start+chromaWindowSize <= len(samples); start += chromaHopSize {
		for i := range frame {
			frame[i] = samples[start+i] * window[i]
		}

		spectrum := fft.FFTReal(frame)
		for bin := 0; bin <= chromaWindowSize/2; bin++ {
			pc := mapping[bin]
			if pc < 0 {
				continue
			}
			mag := cmplx.Abs(spectrum[bin])
			chroma[pc] += mag * mag
		}
		frames++
	}

	if frames == 0 {
		return model.FeatureVector{}, ErrEmptySignal
	}
	for i := range chroma {
		chroma[i] /= float64(frames)
	}

	norm := floats.Norm(chroma[:], 2)
	if norm == 0 {
		return model.FeatureVector{}, ErrEmptySignal
	}
	for i := range chroma {
		chroma[i] /= norm
	}

	return chroma, nil
}

// chromaMapping precomputes FFT bin -> pitch class for one window
// size and sample rate. Bins outside the folded band map to -1.
func chromaMapping(windowSize, sampleRate int) []int {
	mapping := make([]int, windowSize/2+1)
	resolution := float64(sampleRate) / float64(windowSize)

	for bin := range mapping {
		freq := float64(bin) * resolution
		if freq < chromaMinFreq || freq > chromaMaxFreq {
			mapping[bin] = -1
			continue
		}
		// MIDI note number: 69 + 12*log2(f/440), A4 = 69. MIDI note
		// mod 12 puts C on 0.
		midi := 69 + 12*math.Log2(freq/440.0)
		mapping[bin] = ((int(math.Round(midi)) % 12) + 12) % 12
	}
	return mapping
}

func hannWindow(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	return w
}
