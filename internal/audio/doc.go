// Package audio provides audio file metadata services: writing the
// title tag after a rename and generating an optional set-list
// playlist of analyzed tracks.
//
// # Title tagging
//
// Use the Tagger to keep a file's title tag in sync with its
// classified filename:
//
//	tagger := audio.NewTagger()
//	err := tagger.WriteTitle(path, "8A - 128 BPM - Deep House")
//
// Only MP3 containers carry ID3 tags; other formats return
// ErrUnsupportedFormat, which callers treat as non-fatal.
//
// # Set lists
//
// Generate an extended M3U playlist of the run's tracks ordered by
// ascending BPM:
//
//	writer := audio.NewSetListWriter(true)
//	content := writer.Content(results)
//	os.WriteFile(filepath.Join(folder, "setlist.m3u"), []byte(content), 0644)
package audio
