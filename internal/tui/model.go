package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gpuperf/go-sample-check/internal/harness"
)

// =============================================================================
// Messages
// =============================================================================

// TickMsg is sent periodically to refresh elapsed times.
type TickMsg time.Time

// StageStartMsg marks a stage as running.
type StageStartMsg struct {
	Name string
}

// StageDoneMsg marks a stage as finished. Diagnostic is empty on
// success.
type StageDoneMsg struct {
	Name       string
	Diagnostic string
	Elapsed    time.Duration
}

// RunIterationMsg reports one benchmark execution in repeat mode.
type RunIterationMsg struct {
	Iteration int
	Elapsed   time.Duration
	Samples   int
}

// PipelineDoneMsg signals the pipeline finished; the program quits
// and the caller prints the diagnostic on plain stdout.
type PipelineDoneMsg struct {
	Diagnostic string
	Err        error
}

// =============================================================================
// Model
// =============================================================================

type stageState int

const (
	stagePending stageState = iota
	stageRunning
	stagePassed
	stageFailed
)

// stageView tracks the display state of one pipeline stage.
type stageView struct {
	name    string
	state   stageState
	started time.Time
	elapsed time.Duration
}

// Config holds TUI configuration.
type Config struct {
	Sample    string
	BuildPath string
	Repeat    int
}

// Model represents the TUI state.
type Model struct {
	sample    string
	buildPath string
	repeat    int

	stages []stageView

	iteration   int
	lastElapsed time.Duration
	samples     int

	diagnostic string
	err        error
	done       bool
	quitting   bool

	startTime time.Time
	width     int
	height    int
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		sample:    cfg.Sample,
		buildPath: cfg.BuildPath,
		repeat:    cfg.Repeat,
		stages: []stageView{
			{name: harness.StageConfigure},
			{name: harness.StageBuild},
			{name: harness.StageRun},
		},
		startTime: time.Now(),
		width:     80,
		height:    24,
	}
}

// =============================================================================
// Bubble Tea Interface
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case StageStartMsg:
		for i := range m.stages {
			if m.stages[i].name == msg.Name {
				m.stages[i].state = stageRunning
				m.stages[i].started = time.Now()
			}
		}

	case StageDoneMsg:
		for i := range m.stages {
			if m.stages[i].name == msg.Name {
				m.stages[i].elapsed = msg.Elapsed
				if msg.Diagnostic != "" {
					m.stages[i].state = stageFailed
				} else {
					m.stages[i].state = stagePassed
				}
			}
		}

	case RunIterationMsg:
		m.iteration = msg.Iteration
		m.lastElapsed = msg.Elapsed
		m.samples = msg.Samples

	case PipelineDoneMsg:
		m.done = true
		m.diagnostic = msg.Diagnostic
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// tickCmd schedules the next display refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Failed reports whether the pipeline produced a diagnostic or error.
func (m Model) Failed() bool {
	return m.diagnostic != "" || m.err != nil
}
