package feature

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func sine(freq float64, rate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
	}
	return samples
}

func TestChromaMapping(t *testing.T) {
	mapping := chromaMapping(4096, 44100)

	if len(mapping) != 4096/2+1 {
		t.Fatalf("mapping length = %d", len(mapping))
	}
	if mapping[0] != -1 {
		t.Errorf("DC bin mapped to %d, want -1", mapping[0])
	}
	if mapping[len(mapping)-1] != -1 {
		t.Errorf("Nyquist bin mapped to %d, want -1", mapping[len(mapping)-1])
	}

	// Bin 41 sits at ~441 Hz, pitch class A.
	if mapping[41] != 9 {
		t.Errorf("bin 41 mapped to %d, want 9 (A)", mapping[41])
	}
	// Bin 24 sits at ~258 Hz, close to C4.
	if mapping[24] != 0 {
		t.Errorf("bin 24 mapped to %d, want 0 (C)", mapping[24])
	}
}

func TestChromaVector_PureTone(t *testing.T) {
	provider := NewMP3Provider()
	sig := &Signal{
		Samples:    sine(440, 44100, 2*44100),
		SampleRate: 44100,
		Duration:   2,
	}

	chroma, err := provider.ChromaVector(sig)
	if err != nil {
		t.Fatalf("ChromaVector failed: %v", err)
	}

	// A 440 Hz tone concentrates energy on pitch class A (bin 9).
	best := 0
	norm := 0.0
	for i, v := range chroma {
		norm += v * v
		if v > chroma[best] {
			best = i
		}
	}
	if best != 9 {
		t.Errorf("dominant bin = %d, want 9 (A); chroma = %v", best, chroma)
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("chroma norm^2 = %f, want 1", norm)
	}
}

func TestChromaVector_EmptySignal(t *testing.T) {
	provider := NewMP3Provider()

	if _, err := provider.ChromaVector(nil); !errors.Is(err, ErrEmptySignal) {
		t.Errorf("nil signal: err = %v, want ErrEmptySignal", err)
	}
	if _, err := provider.ChromaVector(&Signal{SampleRate: 44100}); !errors.Is(err, ErrEmptySignal) {
		t.Errorf("no samples: err = %v, want ErrEmptySignal", err)
	}
}

func TestRawTempo_ClickTrain(t *testing.T) {
	const rate = 44100
	// Clicks every half second: 120 BPM.
	samples := make([]float64, 30*rate)
	for start := 0; start < len(samples); start += rate / 2 {
		for i := start; i < start+100 && i < len(samples); i++ {
			samples[i] = 1
		}
	}
	provider := NewMP3Provider()

	bpm, err := provider.RawTempo(&Signal{Samples: samples, SampleRate: rate, Duration: 30})
	if err != nil {
		t.Fatalf("RawTempo failed: %v", err)
	}
	if bpm < 110 || bpm > 130 {
		t.Errorf("bpm = %.2f, want ~120", bpm)
	}
}

func TestRawTempo_Silence(t *testing.T) {
	provider := NewMP3Provider()
	sig := &Signal{Samples: make([]float64, 10*44100), SampleRate: 44100}

	if _, err := provider.RawTempo(sig); !errors.Is(err, ErrEmptySignal) {
		t.Errorf("err = %v, want ErrEmptySignal", err)
	}
}

func TestRmsEnvelope(t *testing.T) {
	// Constant amplitude 0.5 has RMS 0.5 in every frame.
	samples := make([]float64, 4096)
	for i := range samples {
		samples[i] = 0.5
	}

	envelope := rmsEnvelope(samples, 1024, 512)
	if len(envelope) != 7 {
		t.Fatalf("envelope length = %d, want 7", len(envelope))
	}
	for i, e := range envelope {
		if math.Abs(e-0.5) > 1e-12 {
			t.Errorf("envelope[%d] = %f, want 0.5", i, e)
		}
	}

	if got := rmsEnvelope(make([]float64, 100), 1024, 512); got != nil {
		t.Errorf("short input envelope = %v, want nil", got)
	}
}

func TestCenterExcerpt(t *testing.T) {
	const rate = 1000
	samples := make([]float64, 120*rate)
	for i := range samples {
		samples[i] = float64(i)
	}
	sig := &Signal{Samples: samples, SampleRate: rate}

	excerpt := centerExcerpt(sig)
	if len(excerpt) != 60*rate {
		t.Errorf("excerpt length = %d, want %d", len(excerpt), 60*rate)
	}
	if excerpt[0] != float64(30*rate) {
		t.Errorf("excerpt starts at sample %v, want %d", excerpt[0], 30*rate)
	}

	short := &Signal{Samples: make([]float64, 100), SampleRate: rate}
	if got := centerExcerpt(short); len(got) != 100 {
		t.Errorf("short excerpt length = %d, want all 100", len(got))
	}
}

func TestLoadSignal_RejectsNonMP3(t *testing.T) {
	provider := NewMP3Provider()

	_, err := provider.LoadSignal(filepath.Join(t.TempDir(), "track.wav"))
	if !errors.Is(err, ErrUnsupportedCodec) {
		t.Errorf("err = %v, want ErrUnsupportedCodec", err)
	}
}

func TestLoadSignal_MissingFile(t *testing.T) {
	provider := NewMP3Provider()

	if _, err := provider.LoadSignal(filepath.Join(t.TempDir(), "gone.mp3")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSignal_GarbageData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.mp3")
	if err := os.WriteFile(path, []byte("definitely not mpeg audio"), 0644); err != nil {
		t.Fatal(err)
	}
	provider := NewMP3Provider()

	if _, err := provider.LoadSignal(path); err == nil {
		t.Error("expected error for undecodable data")
	}
}
