package feature

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// excerptSeconds is how much audio, taken from the center of the
// track, feeds chroma extraction. Keys rarely change mid-track and the
// center avoids intros/outros.
const excerptSeconds = 60.0

// MP3Provider decodes MP3 files and computes features on the decoded
// PCM. The zero value is not usable; call NewMP3Provider.
type MP3Provider struct{}

// NewMP3Provider creates a Provider backed by native MP3 decoding.
func NewMP3Provider() *MP3Provider {
	return &MP3Provider{}
}

// LoadSignal decodes the MP3 at path into a mono signal. Non-MP3
// extensions return ErrUnsupportedCodec.
func (p *MP3Provider) LoadSignal(path string) (*Signal, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	rate := decoder.SampleRate()

	// go-mp3 emits interleaved stereo 16-bit little-endian PCM:
	// 4 bytes per sample frame.
	frames := decoder.Length() / 4
	samples := make([]float64, 0, frames)

	buf := make([]byte, 8192)
	for {
		n, err := decoder.Read(buf)
		for i := 0; i+3 < n; i += 4 {
			left := int16(buf[i]) | int16(buf[i+1])<<8
			right := int16(buf[i+2]) | int16(buf[i+3])<<8
			samples = append(samples, (float64(left)+float64(right))/2/32768.0)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}

	return &Signal{
		Samples:    samples,
		SampleRate: rate,
		Duration:   float64(len(samples)) / float64(rate),
	}, nil
}

// centerExcerpt returns up to excerptSeconds of samples taken from the
// middle of the signal.
func centerExcerpt(sig *Signal) []float64 {
	want := int(excerptSeconds * float64(sig.SampleRate))
	if len(sig.Samples) <= want {
		return sig.Samples
	}
	start := (len(sig.Samples) - want) / 2
	return sig.Samples[start : start+want]
}
