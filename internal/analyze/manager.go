package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harmolab/mixprep/internal/audio"
	"github.com/harmolab/mixprep/internal/config"
	"github.com/harmolab/mixprep/internal/feature"
	"github.com/harmolab/mixprep/internal/key"
	"github.com/harmolab/mixprep/internal/model"
	"github.com/harmolab/mixprep/internal/rename"
	"github.com/harmolab/mixprep/internal/report"
	"github.com/harmolab/mixprep/internal/tempo"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a run progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

var (
	// ErrFolderNotFound is returned when the target folder does not
	// exist or is not a directory.
	ErrFolderNotFound = errors.New("analyze: folder not found")

	// ErrNoAudioFiles is returned when the folder holds no supported
	// audio files.
	ErrNoAudioFiles = errors.New("analyze: no supported audio files in folder")
)

// analysis is one worker's output for one file. Pure data: workers
// never touch the filesystem beyond reading.
type analysis struct {
	idx      int
	name     string
	path     string
	sizeMB   float64
	duration float64
	bpm      int
	class    model.Classification
	hasKey   bool
}

// Manager coordinates a batch analysis run.
type Manager struct {
	settings *config.Settings
	policy   model.RenamePolicy
	provider feature.Provider
	engine   *rename.Engine
	reporter *report.Writer
	setlist  *audio.SetListWriter

	stats model.RunStatistics

	totalFiles     int32
	processedFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager from settings. onProgress may be nil.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		policy:     settings.ToRenamePolicy(),
		provider:   feature.NewMP3Provider(),
		engine:     rename.NewEngine(audio.NewTagger()),
		reporter:   report.NewWriter(report.ParseFormat(settings.ReportFormat)),
		onProgress: onProgress,
	}
	if settings.CreateSetList {
		m.setlist = audio.NewSetListWriter(settings.M3UExtended)
	}
	return m
}

// GetProgress returns processed and total file counts for the current
// run. Safe to call from another goroutine while Run is in flight.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.totalFiles)
}

// Statistics returns the aggregate counters of the finished run.
func (m *Manager) Statistics() model.RunStatistics {
	return m.stats
}

// Run analyzes every supported audio file in folder and returns one
// TrackResult per processed file, ordered by filename.
//
// A missing folder returns ErrFolderNotFound; a folder without
// supported files returns ErrNoAudioFiles. In both cases the result
// set is empty and no artifacts are written. Cancelling ctx stops the
// run between files; files already processed are still reported.
func (m *Manager) Run(ctx context.Context, folder string) ([]model.TrackResult, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}

	files, err := m.enumerate(folder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAudioFiles, folder)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d files to analyze", len(files)), Level: LevelInfo})
	atomic.StoreInt32(&m.totalFiles, int32(len(files)))
	atomic.StoreInt32(&m.processedFiles, 0)
	m.stats = model.RunStatistics{}

	slots := make([]model.TrackResult, len(files))
	filled := make([]bool, len(files))

	analyses := make(chan analysis)
	collectorDone := make(chan struct{})

	// Single collector: renames, result slots and statistics have one
	// writer only.
	go func() {
		defer close(collectorDone)
		for a := range analyses {
			slots[a.idx] = m.collect(a)
			filled[a.idx] = true
			atomic.AddInt32(&m.processedFiles, 1)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Workers)

	for i, name := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			a := m.analyzeFile(i, folder, name)
			select {
			case analyses <- a:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	runErr := g.Wait()
	close(analyses)
	<-collectorDone

	results := make([]model.TrackResult, 0, len(slots))
	for i, ok := range filled {
		if ok {
			results = append(results, slots[i])
		}
	}
	m.stats.TotalFiles = len(results)

	if len(results) > 0 {
		m.writeArtifacts(folder, results)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return results, runErr
	}
	return results, nil
}

// enumerate lists supported audio files in folder: case-insensitive
// extension match, sorted by name for a deterministic processing
// order. Names differing only by case are distinct files and all get
// processed.
func (m *Manager) enumerate(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !model.IsSupportedExt(filepath.Ext(name)) {
			continue
		}
		files = append(files, name)
	}

	sort.Strings(files)
	return files, nil
}

// analyzeFile runs the read-only analysis stages for one file. Any
// stage failing leaves the corresponding fields absent; nothing here
// is fatal to the batch.
func (m *Manager) analyzeFile(idx int, folder, name string) analysis {
	path := filepath.Join(folder, name)
	a := analysis{idx: idx, name: name, path: path}

	if info, err := os.Stat(path); err == nil {
		a.sizeMB = float64(info.Size()) / 1024 / 1024
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Analyzing: %s", name), Level: LevelVerbose})

	sig, err := m.provider.LoadSignal(path)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cannot analyze %s: %v", name, err), Level: LevelWarning})
		return a
	}
	a.duration = sig.Duration

	if raw, err := m.provider.RawTempo(sig); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Tempo detection failed for %s: %v", name, err), Level: LevelWarning})
	} else {
		a.bpm = tempo.Normalize(raw)
		m.progress(ProgressEvent{Message: fmt.Sprintf("BPM detected: %d (%s)", a.bpm, name), Level: LevelVerbose})
	}

	if chroma, err := m.provider.ChromaVector(sig); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Key detection failed for %s: %v", name, err), Level: LevelWarning})
	} else {
		a.class = key.Classify(chroma)
		a.hasKey = a.class.Key != ""
		m.progress(ProgressEvent{Message: fmt.Sprintf("Key: %s %s (%s)", a.class.Key, a.class.Tier, name), Level: LevelVerbose})
	}

	return a
}

// collect turns one analysis into a TrackResult, performing the rename
// when the policy and the analysis allow it. Runs only on the
// collector goroutine.
func (m *Manager) collect(a analysis) model.TrackResult {
	res := model.TrackResult{
		OriginalFilename: a.name,
		Filename:         a.name,
		Path:             a.path,
		BPM:              a.bpm,
		DurationSeconds:  a.duration,
		SizeMB:           a.sizeMB,
		Timestamp:        time.Now(),
	}
	if a.hasKey {
		res.Key = a.class.Key
		res.Confidence = a.class.Tier.String()
		res.Score = a.class.Score
	}

	if !m.policy.RenameEnabled || a.bpm <= 0 || !a.hasKey {
		return res
	}

	r, err := m.engine.Rename(a.path, a.class.Key, a.bpm, m.policy)
	if err != nil {
		m.stats.RenameErrors++
		m.progress(ProgressEvent{Message: fmt.Sprintf("Rename failed for %s: %v", a.name, err), Level: LevelError})
		return res
	}

	res.Renamed = true
	res.Path = r.FinalPath
	res.Filename = filepath.Base(r.FinalPath)
	m.stats.Renamed++

	if r.Moved {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Renamed: %s -> %s", a.name, res.Filename), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Already correct: %s", a.name), Level: LevelVerbose})
	}
	if r.TagErr != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Tag update failed for %s: %v", res.Filename, r.TagErr), Level: LevelWarning})
	}

	return res
}

// writeArtifacts persists the report and, when enabled, the set list.
func (m *Manager) writeArtifacts(folder string, results []model.TrackResult) {
	path, err := m.reporter.Write(folder, results)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving report: %v", err), Level: LevelError})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Results saved to: %s", path), Level: LevelInfo})
	}

	if m.setlist == nil {
		return
	}
	name := fmt.Sprintf("setlist_%s.m3u", time.Now().Format("20060102_150405"))
	setlistPath := filepath.Join(folder, name)
	if err := os.WriteFile(setlistPath, []byte(m.setlist.Content(results)), 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating set list: %v", err), Level: LevelWarning})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Set list saved to: %s", setlistPath), Level: LevelSuccess})
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
