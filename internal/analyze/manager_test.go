package analyze

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/harmolab/mixprep/internal/config"
	"github.com/harmolab/mixprep/internal/feature"
	"github.com/harmolab/mixprep/internal/key"
	"github.com/harmolab/mixprep/internal/model"
	"github.com/harmolab/mixprep/internal/rename"
)

// fakeProvider serves canned features per file name. Files listed in
// broken fail to decode.
type fakeProvider struct {
	tempo  float64
	chroma model.FeatureVector
	broken map[string]bool
}

func (p *fakeProvider) LoadSignal(path string) (*feature.Signal, error) {
	if p.broken[filepath.Base(path)] {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), feature.ErrEmptySignal)
	}
	return &feature.Signal{Samples: make([]float64, 44100), SampleRate: 44100, Duration: 180}, nil
}

func (p *fakeProvider) RawTempo(sig *feature.Signal) (float64, error) {
	return p.tempo, nil
}

func (p *fakeProvider) ChromaVector(sig *feature.Signal) (model.FeatureVector, error) {
	return p.chroma, nil
}

// nopTags satisfies the engine's tag store without touching files.
type nopTags struct{}

func (nopTags) WriteTitle(path, title string) error { return nil }

func testSettings() *config.Settings {
	s := config.DefaultSettings()
	s.Workers = 2
	s.CreateSetList = false
	return s
}

// newTestManager wires a Manager to the fake provider and a no-op tag
// store.
func newTestManager(t *testing.T, settings *config.Settings, provider *fakeProvider) *Manager {
	t.Helper()
	m := NewManager(settings, nil)
	m.provider = provider
	m.engine = rename.NewEngine(nopTags{})
	return m
}

func seedFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func cMajorChroma() model.FeatureVector {
	return key.Bank()[0].Vector
}

func TestRun_FolderNotFound(t *testing.T) {
	m := newTestManager(t, testSettings(), &fakeProvider{})

	_, err := m.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("err = %v, want ErrFolderNotFound", err)
	}
}

func TestRun_NoAudioFiles(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "notes.txt", "cover.jpg")
	m := newTestManager(t, testSettings(), &fakeProvider{})

	_, err := m.Run(context.Background(), dir)
	if !errors.Is(err, ErrNoAudioFiles) {
		t.Errorf("err = %v, want ErrNoAudioFiles", err)
	}
}

func TestRun_AnalyzesAndRenames(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "b side.mp3", "a side.mp3")

	provider := &fakeProvider{tempo: 65.4, chroma: cMajorChroma()}
	m := newTestManager(t, testSettings(), provider)

	results, err := m.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	// Results come back ordered by original filename.
	if results[0].OriginalFilename != "a side.mp3" || results[1].OriginalFilename != "b side.mp3" {
		t.Errorf("result order = %q, %q", results[0].OriginalFilename, results[1].OriginalFilename)
	}

	first := results[0]
	if first.BPM != 130 {
		t.Errorf("BPM = %d, want 130 (doubled from 65.4)", first.BPM)
	}
	if first.Key != "C" {
		t.Errorf("Key = %q, want C", first.Key)
	}
	if first.Confidence != "High" {
		t.Errorf("Confidence = %q, want High", first.Confidence)
	}
	if math.Abs(first.Score-1.0) > 1e-9 {
		t.Errorf("Score = %v, want 1.0 for an exact profile match", first.Score)
	}
	if !first.Renamed {
		t.Error("Renamed = false, want true")
	}
	if first.Filename != "C - 130 BPM - a side.mp3" {
		t.Errorf("Filename = %q", first.Filename)
	}
	if _, err := os.Stat(filepath.Join(dir, "C - 130 BPM - a side.mp3")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}

	stats := m.Statistics()
	if stats.TotalFiles != 2 || stats.Renamed != 2 || stats.RenameErrors != 0 {
		t.Errorf("stats = %+v", stats)
	}

	processed, total := m.GetProgress()
	if processed != 2 || total != 2 {
		t.Errorf("progress = %d/%d, want 2/2", processed, total)
	}
}

func TestRun_FailedFileDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "good.mp3", "corrupt.mp3")

	provider := &fakeProvider{
		tempo:  128,
		chroma: cMajorChroma(),
		broken: map[string]bool{"corrupt.mp3": true},
	}
	m := newTestManager(t, testSettings(), provider)

	results, err := m.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	corrupt := results[0]
	if corrupt.OriginalFilename != "corrupt.mp3" {
		t.Fatalf("unexpected order: %q first", corrupt.OriginalFilename)
	}
	if corrupt.HasBPM() || corrupt.HasKey() {
		t.Error("failed file carries analysis fields")
	}
	if corrupt.Renamed {
		t.Error("failed file was renamed")
	}

	good := results[1]
	if !good.Renamed || good.BPM != 128 || good.Key != "C" {
		t.Errorf("good file result = %+v", good)
	}
	if m.Statistics().Renamed != 1 {
		t.Errorf("Renamed = %d, want 1", m.Statistics().Renamed)
	}
}

func TestRun_RenameDisabled(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "track.mp3")

	settings := testSettings()
	settings.RenameEnabled = false
	m := newTestManager(t, settings, &fakeProvider{tempo: 128, chroma: cMajorChroma()})

	results, err := m.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Renamed {
		t.Error("Renamed = true with renaming disabled")
	}
	if _, err := os.Stat(filepath.Join(dir, "track.mp3")); err != nil {
		t.Errorf("file was moved: %v", err)
	}
}

func TestRun_WritesReportArtifact(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "track.mp3")

	m := newTestManager(t, testSettings(), &fakeProvider{tempo: 128, chroma: cMajorChroma()})

	if _, err := m.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "music_analysis_*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("found %d report files, want 1", len(matches))
	}
}

func TestRun_WritesSetList(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "track.mp3")

	settings := testSettings()
	settings.CreateSetList = true
	m := newTestManager(t, settings, &fakeProvider{tempo: 128, chroma: cMajorChroma()})

	if _, err := m.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "setlist_*.m3u"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("found %d set list files, want 1", len(matches))
	}
}

func TestRun_CaseDistinctFilesBothProcessed(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "Track.mp3", "track.mp3")

	m := newTestManager(t, testSettings(), &fakeProvider{tempo: 128, chroma: cMajorChroma()})

	results, err := m.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (names differing only by case are distinct files)", len(results))
	}
	if results[0].OriginalFilename != "Track.mp3" || results[1].OriginalFilename != "track.mp3" {
		t.Errorf("processed %q and %q", results[0].OriginalFilename, results[1].OriginalFilename)
	}
	for _, r := range results {
		if !r.Renamed {
			t.Errorf("%s not renamed", r.OriginalFilename)
		}
	}
}

func TestRun_SkipsUnsupportedAndNested(t *testing.T) {
	dir := t.TempDir()
	seedFiles(t, dir, "track.mp3", "readme.md")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0755); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, testSettings(), &fakeProvider{tempo: 128, chroma: cMajorChroma()})

	results, err := m.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].OriginalFilename != "track.mp3" {
		t.Errorf("processed %q", results[0].OriginalFilename)
	}
}
