package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sermon/internal/classify"
	"github.com/five82/sermon/internal/prefs"
	"github.com/five82/sermon/internal/scroll"
	"github.com/five82/sermon/internal/state"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{
		BufferLimit: 100,
		PrefsPath:   filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func feed(t *testing.T, m Model, texts ...string) Model {
	t.Helper()
	lines := make([]classify.Line, len(texts))
	for i, text := range texts {
		lines[i] = classify.New(text)
	}
	return update(t, m, linesMsg{lines: lines})
}

func numbered(n int, format string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.ReplaceAll(format, "#", string(rune('a'+i%26)))
	}
	return out
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Connecting..." {
		t.Fatalf("View() = %q, want Connecting...", got)
	}
}

func TestGeometrySplit(t *testing.T) {
	m := newTestModel(t)
	// 23 rows below the status bar: 16 main, 7 diagnostic, less borders.
	if g := m.mainGeometry(); g.Height != 14 || g.Width != 78 {
		t.Fatalf("main geometry = %+v, want 78x14", g)
	}
	if g := m.diagGeometry(); g.Height != 5 || g.Width != 78 {
		t.Fatalf("diag geometry = %+v, want 78x5", g)
	}

	m = update(t, m, runes("n"))
	if g := m.mainGeometry(); g.Width != 78-lineNumberWidth {
		t.Fatalf("main width with line numbers = %d, want %d", g.Width, 78-lineNumberWidth)
	}
}

func TestLinesRoutedToPanes(t *testing.T) {
	m := newTestModel(t)
	m = feed(t, m, "boot ok", "WARN low voltage", "sensor ready", "Error: timeout", "done")

	if got := m.panes.Main.Len(); got != 5 {
		t.Fatalf("main len = %d, want 5", got)
	}
	if got := m.panes.Diag.Len(); got != 2 {
		t.Fatalf("diag len = %d, want 2", got)
	}
	if got := m.panes.Diag.At(1).Text; got != "Error: timeout" {
		t.Fatalf("diag[1] = %q, want Error: timeout", got)
	}
}

func TestMainScrollKeys(t *testing.T) {
	m := newTestModel(t)
	m = feed(t, m, numbered(40, "line #")...)
	h := m.mainGeometry().Height

	m = update(t, m, runes("k"))
	if m.panes.Main.Mode() != scroll.Manual {
		t.Fatalf("mode after k = %v, want Manual", m.panes.Main.Mode())
	}
	if got, want := m.panes.Main.Offset(h), 40-h-1; got != want {
		t.Fatalf("offset after k = %d, want %d", got, want)
	}
	if m.panes.Diag.Mode() != scroll.Auto {
		t.Fatal("main scroll key changed the diagnostic pane")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got, want := m.panes.Main.Offset(h), 40-h-2; got != want {
		t.Fatalf("offset after up = %d, want %d", got, want)
	}

	// New lines must not move a held viewport.
	before := m.panes.Main.Offset(h)
	m = feed(t, m, "late line")
	if got := m.panes.Main.Offset(h); got != before {
		t.Fatalf("offset moved from %d to %d on append", before, got)
	}

	m = update(t, m, runes("a"))
	if !m.panes.Main.Following() {
		t.Fatal("a did not return main pane to auto")
	}
}

func TestDiagScrollKeys(t *testing.T) {
	m := newTestModel(t)
	m = feed(t, m, numbered(20, "err #")...)

	m = update(t, m, runes("w"))
	if m.panes.Diag.Mode() != scroll.Manual {
		t.Fatal("w did not hold the diagnostic pane")
	}
	if !m.panes.Main.Following() {
		t.Fatal("diag scroll key changed the main pane")
	}

	m = update(t, m, runes("d"))
	if !m.panes.Diag.Following() {
		t.Fatal("d did not return diagnostic pane to auto")
	}
}

func TestScrollDownInAutoIsNoop(t *testing.T) {
	m := newTestModel(t)
	m = feed(t, m, numbered(40, "line #")...)

	m = update(t, m, runes("j"))
	if !m.panes.Main.Following() {
		t.Fatal("j in auto mode left auto")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: command did not quit", msg)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, runes("?"))
	if !m.showHelp {
		t.Fatal("? did not open help")
	}
	view := m.View()
	for _, want := range []string{"Keyboard Shortcuts", "Main pane", "Diagnostic pane"} {
		if !strings.Contains(view, want) {
			t.Fatalf("help view missing %q", want)
		}
	}
	m = update(t, m, runes("k"))
	if m.showHelp {
		t.Fatal("key did not close help")
	}
	if !m.panes.Main.Following() {
		t.Fatal("key that closed help also scrolled")
	}
}

func TestThemeCyclePersists(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name
	m = update(t, m, runes("T"))
	if m.theme.Name == first {
		t.Fatalf("theme still %q after T", first)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if saved.Theme != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", saved.Theme, m.theme.Name)
	}
}

func TestViewEmptyPanes(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{mainTitle, diagTitle, mainEmpty, diagEmpty} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if got := strings.Count(view, "\n") + 1; got != 24 {
		t.Fatalf("view has %d rows, want 24", got)
	}
}

func TestViewShowsDiagnosticLines(t *testing.T) {
	m := newTestModel(t)
	m = feed(t, m, "all good", "wrn: fan slow")
	view := m.View()
	if strings.Contains(view, diagEmpty) {
		t.Fatal("diagnostic pane still shows empty state")
	}
	if got := strings.Count(view, "wrn: fan slow"); got != 2 {
		t.Fatalf("warning drawn %d times, want 2", got)
	}
}

func TestViewTinyTerminal(t *testing.T) {
	m := newTestModel(t)
	m = feed(t, m, "error: x")
	for _, size := range []tea.WindowSizeMsg{{Width: 1, Height: 1}, {Width: 3, Height: 2}, {Width: 0, Height: 0}} {
		m = update(t, m, size)
		_ = m.View()
	}
}

func TestPaneStatus(t *testing.T) {
	buf := scroll.New(100)
	for _, text := range numbered(30, "line #") {
		buf.Append(classify.New(text))
	}
	if got := paneStatus(buf, 10); got != "AUTO 30 lines" {
		t.Fatalf("auto status = %q", got)
	}
	buf.ScrollUp(10)
	if got := paneStatus(buf, 10); got != "MANUAL 20-29/30" {
		t.Fatalf("manual status = %q", got)
	}
}

func TestStreamEndedStatus(t *testing.T) {
	store := &state.Store{}
	store.SetConnected("/dev/ttyUSB0", 115200)
	m := New(Options{Store: store, PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 24})
	m = update(t, m, snapshotMsg(store.Snapshot()))
	if view := m.View(); !strings.Contains(view, "/dev/ttyUSB0 @115200") {
		t.Fatal("status bar missing connected port")
	}

	store.MarkEnded(nil)
	m = update(t, m, streamClosedMsg{})
	m = update(t, m, snapshotMsg(store.Snapshot()))
	if view := m.View(); !strings.Contains(view, "stream ended") {
		t.Fatal("status bar missing stream ended")
	}
}

func TestWaitForLines(t *testing.T) {
	ch := make(chan classify.Line, 4)
	ch <- classify.New("one")
	ch <- classify.New("two error")
	close(ch)

	msg := waitForLines(ch)()
	batch, ok := msg.(linesMsg)
	if !ok {
		t.Fatalf("msg = %T, want linesMsg", msg)
	}
	if len(batch.lines) != 2 || !batch.closed {
		t.Fatalf("batch = %+v, want 2 lines and closed", batch)
	}

	if _, ok := waitForLines(ch)().(streamClosedMsg); !ok {
		t.Fatal("closed channel did not yield streamClosedMsg")
	}
}

func TestWaitForLinesBatchLimit(t *testing.T) {
	ch := make(chan classify.Line, maxLineBatch+10)
	for i := 0; i < maxLineBatch+10; i++ {
		ch <- classify.New("x")
	}
	batch := waitForLines(ch)().(linesMsg)
	if len(batch.lines) != maxLineBatch || batch.closed {
		t.Fatalf("batch len = %d closed = %v, want %d open", len(batch.lines), batch.closed, maxLineBatch)
	}
}
