// Package tui provides a Bubble Tea terminal user interface for
// mixprep: folder selection, rename options, live run progress and a
// completion summary.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harmolab/mixprep/internal/analyze"
	"github.com/harmolab/mixprep/internal/config"
	"github.com/harmolab/mixprep/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// Input focus positions on the setup screen. Tab cycles the three text
// inputs plus the options block, where the toggle keys are live.
const (
	focusFolder = iota
	focusRemove
	focusReplace
	focusOptions

	inputCount = 3
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateAnalyzing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   analyze.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	folder   textinput.Model
	remove   textinput.Model
	replace  textinput.Model
	focused  int
	spinner  spinner.Model
	progress progress.Model
	logs     []LogEntry
	results  []model.TrackResult
	stats    model.RunStatistics
	err      error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Run manager reference
	manager *analyze.Manager
	events  chan analyze.ProgressEvent

	// Run progress
	totalFiles     int32
	processedFiles int32

	// Options
	renameEnabled bool
	alphanumeric  bool
	setList       bool
	verbose       bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = defaultMusicDir()
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	rm := textinput.New()
	rm.Placeholder = "substrings to strip, e.g. Official Video, [HD]"
	rm.CharLimit = 500
	rm.Width = 60

	rp := textinput.New()
	rp.Placeholder = "old:new pairs, e.g. _: "
	rp.CharLimit = 500
	rp.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:         StateInput,
		folder:        ti,
		remove:        rm,
		replace:       rp,
		spinner:       sp,
		progress:      prog,
		logs:          make([]LogEntry, 0),
		renameEnabled: true,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func defaultMusicDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/music"
	}
	return home + "/Music"
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when a run progress event arrives.
	ProgressMsg struct {
		Event analyze.ProgressEvent
	}

	// RunDoneMsg is sent when the analysis run completes.
	RunDoneMsg struct {
		Results []model.TrackResult
		Stats   model.RunStatistics
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateAnalyzing {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && m.folder.Value() != "" {
				m.state = StateAnalyzing
				return m, tea.Batch(m.startRun(), m.tickProgress(), m.spinner.Tick)
			}

		case "tab", "shift+tab":
			if m.state == StateInput {
				if msg.String() == "tab" {
					m.focused = (m.focused + 1) % (inputCount + 1)
				} else {
					m.focused = (m.focused + inputCount) % (inputCount + 1)
				}
				m.syncFocus()
			}

		case "x":
			if m.state == StateInput && m.focused == focusOptions {
				m.renameEnabled = !m.renameEnabled
			}

		case "n":
			if m.state == StateInput && m.focused == focusOptions {
				m.alphanumeric = !m.alphanumeric
			}

		case "s":
			if m.state == StateInput && m.focused == focusOptions {
				m.setList = !m.setList
			}

		case "v":
			if m.state == StateInput && m.focused == focusOptions {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
			if m.state == StateInput && m.focused == focusOptions {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.results = nil
				m.stats = model.RunStatistics{}
				m.err = nil
				m.processedFiles = 0
				m.totalFiles = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.events = nil
				m.folder.SetValue("")
				m.focused = focusFolder
				m.syncFocus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == analyze.LevelVerbose && !m.verbose {
			return m, m.listenProgress()
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}
		cmds = append(cmds, m.listenProgress())

	case RunDoneMsg:
		m.results = msg.Results
		m.stats = msg.Stats
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateAnalyzing {
			processed, total := m.manager.GetProgress()
			m.processedFiles = processed
			m.totalFiles = total

			var percent float64
			if total > 0 {
				percent = float64(processed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Route input to whichever field has focus
	if m.state == StateInput {
		var cmd tea.Cmd
		switch m.focused {
		case focusFolder:
			m.folder, cmd = m.folder.Update(msg)
		case focusRemove:
			m.remove, cmd = m.remove.Update(msg)
		case focusReplace:
			m.replace, cmd = m.replace.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncFocus focuses the selected text input and blurs the others.
func (m *Model) syncFocus() {
	inputs := []*textinput.Model{&m.folder, &m.remove, &m.replace}
	for i, in := range inputs {
		if i == m.focused {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("mixprep"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Classify tracks by key and BPM, rename and retag them"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateAnalyzing:
		b.WriteString(m.viewAnalyzing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Music folder:"))
	b.WriteString("\n")
	b.WriteString(m.folder.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Remove from names (comma-separated):"))
	b.WriteString("\n")
	b.WriteString(m.remove.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Replace in names (old:new pairs):"))
	b.WriteString("\n")
	b.WriteString(m.replace.View())
	b.WriteString("\n\n")

	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	notation := "Classic (Cm)"
	if m.alphanumeric {
		notation = "Camelot (8A)"
	}

	options := "Options:"
	if m.focused == focusOptions {
		options = "Options (toggle keys active):"
	}
	b.WriteString(infoStyle.Render(options))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Rename files (x)\n", check(m.renameEnabled)))
	b.WriteString(fmt.Sprintf("  %s Create set list (s)\n", check(m.setList)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", check(m.verbose)))
	b.WriteString(fmt.Sprintf("  Key notation: %s (n)\n", keyStyle.Render(notation)))

	return b.String()
}

func (m Model) viewAnalyzing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Analyzing tracks..."))
	b.WriteString("\n\n")

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.processedFiles, m.totalFiles)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Analysis Complete!\n\n"+
			"Files: %d\n"+
			"Renamed: %d\n"+
			"Errors: %d",
		m.stats.TotalFiles,
		m.stats.Renamed,
		m.stats.RenameErrors,
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	// Tail of the per-file results
	shown := m.results
	if len(shown) > 5 {
		shown = shown[len(shown)-5:]
	}
	for _, r := range shown {
		label := "N/A"
		if r.HasKey() {
			label = r.Key
		}
		bpm := "N/A"
		if r.HasBPM() {
			bpm = fmt.Sprintf("%d", r.BPM)
		}
		b.WriteString(keyStyle.Render(fmt.Sprintf("  %s | %s BPM | %s", label, bpm, r.Filename)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case analyze.LevelError:
			style = errorStyle
			prefix = "✗"
		case analyze.LevelWarning:
			style = warningStyle
			prefix = "!"
		case analyze.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case analyze.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: next field • x/n/s/v: toggles (on options) • esc: quit"
	case StateAnalyzing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// startRun builds the manager from the selected options and runs the
// batch in the background.
func (m *Model) startRun() tea.Cmd {
	folder := m.folder.Value()

	settings := config.DefaultSettings()
	settings.RenameEnabled = m.renameEnabled
	settings.CreateSetList = m.setList
	settings.Verbose = m.verbose
	if m.alphanumeric {
		settings.KeyNotation = "alphanumeric"
	}
	if v := m.remove.Value(); v != "" {
		settings.RemoveLiterals = config.ParseRemoveList(v)
	}
	if v := m.replace.Value(); v != "" {
		settings.ReplacePairs = config.ParseReplaceList(v)
	}

	// Counters come in via TickMsg polling; log lines via the event
	// channel. A full channel drops events rather than stalling a
	// worker.
	events := make(chan analyze.ProgressEvent, 64)
	manager := analyze.NewManager(settings, func(event analyze.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})
	m.manager = manager
	m.events = events

	ctx := m.ctx
	run := func() tea.Msg {
		results, err := manager.Run(ctx, folder)
		close(events)
		return RunDoneMsg{
			Results: results,
			Stats:   manager.Statistics(),
			Err:     err,
		}
	}
	return tea.Batch(run, m.listenProgress())
}

// listenProgress waits for the next progress event. Re-armed from
// Update on every ProgressMsg; stops when the run closes the channel.
func (m Model) listenProgress() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
