package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// ErrUnsupportedFormat is returned when the container has no writable
// metadata support. Callers treat it as non-fatal.
var ErrUnsupportedFormat = errors.New("audio: metadata not supported for container")

// Tagger writes title tags to audio files.
//
// Tagger uses the id3v2 library to update the TIT2 (Title) frame of
// MP3 files. Existing frames other than the title are preserved.
//
// Example:
//
//	tagger := NewTagger()
//	if err := tagger.WriteTitle(track.Path, newStem); err != nil {
//	    log.Printf("Failed to tag %s: %v", track.Path, err)
//	}
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// WriteTitle sets the title tag of the file at path.
//
// Only MP3 containers are supported; any other extension returns
// ErrUnsupportedFormat. Tags are parsed first so frames besides the
// title survive the save.
func (t *Tagger) WriteTitle(path, title string) error {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags: %w", err)
	}
	defer tag.Close()

	tag.SetTitle(title)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}
