// Package ui provides the Bubble Tea interface for sermon.
package ui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sermon/internal/classify"
	"github.com/five82/sermon/internal/prefs"
	"github.com/five82/sermon/internal/render"
	"github.com/five82/sermon/internal/scroll"
	"github.com/five82/sermon/internal/state"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Lines       <-chan classify.Line // closed when ingestion stops
	BufferLimit int
	MainRatio   float64
	ThemeName   string
	LineNumbers bool
	PrefsPath   string
}

// Model is the root application state for Bubble Tea. It exclusively owns
// both scroll buffers.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	lines     <-chan classify.Line
	prefsPath string
	mainRatio float64

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	width       int
	height      int
	ready       bool
	showHelp    bool
	lineNumbers bool

	// Data state
	panes        *scroll.Panes
	snapshot     state.Snapshot
	haveSnapshot bool
	streamClosed bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ratio := opts.MainRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = render.DefaultMainRatio
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		lines:       opts.Lines,
		prefsPath:   prefsPath,
		mainRatio:   ratio,
		theme:       GetTheme(opts.ThemeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		lineNumbers: opts.LineNumbers,
		panes:       scroll.NewPanes(opts.BufferLimit),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(statusInterval)}
	if m.lines != nil {
		cmds = append(cmds, waitForLines(m.lines))
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case linesMsg:
		m.panes.RouteAll(msg.lines)
		if msg.closed {
			m.streamClosed = true
			return m, fetchSnapshotCmd(m.store)
		}
		return m, waitForLines(m.lines)

	case streamClosedMsg:
		m.streamClosed = true
		return m, fetchSnapshotCmd(m.store)

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(statusInterval))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.haveSnapshot = true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Connecting..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Scrolling is the only state the keys
// touch; ingestion is never involved.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	mainH := m.mainGeometry().Height
	diagH := m.diagGeometry().Height

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, m.keys.LineNumbers):
		m.lineNumbers = !m.lineNumbers
		m.savePrefs()

	case key.Matches(msg, m.keys.MainUp):
		m.panes.Main.ScrollUp(mainH)
	case key.Matches(msg, m.keys.MainDown):
		m.panes.Main.ScrollDown(mainH)
	case key.Matches(msg, m.keys.MainPageUp):
		m.panes.Main.ScrollUpBy(mainH, pageSize(mainH))
	case key.Matches(msg, m.keys.MainPageDown):
		m.panes.Main.ScrollDownBy(mainH, pageSize(mainH))
	case key.Matches(msg, m.keys.MainTop):
		m.panes.Main.ScrollToTop()
	case key.Matches(msg, m.keys.MainAuto):
		m.panes.Main.ResetToAuto()

	case key.Matches(msg, m.keys.DiagUp):
		m.panes.Diag.ScrollUp(diagH)
	case key.Matches(msg, m.keys.DiagDown):
		m.panes.Diag.ScrollDown(diagH)
	case key.Matches(msg, m.keys.DiagAuto):
		m.panes.Diag.ResetToAuto()
	}

	return m, nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LineNumbers: m.lineNumbers}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

func pageSize(height int) int {
	return max(1, height-1)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type linesMsg struct {
	lines  []classify.Line
	closed bool // channel was closed after these lines
}

type streamClosedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForLines blocks for the next line, then drains whatever else is queued
// so a burst of input costs one redraw.
func waitForLines(ch <-chan classify.Line) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		batch := []classify.Line{line}
		for len(batch) < maxLineBatch {
			select {
			case next, ok := <-ch:
				if !ok {
					return linesMsg{lines: batch, closed: true}
				}
				batch = append(batch, next)
			default:
				return linesMsg{lines: batch}
			}
		}
		return linesMsg{lines: batch}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
