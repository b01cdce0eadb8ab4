// Package render projects a pane's visible window into colored rows.
//
// Projection is pure: it only reads the buffer, so the UI may call it on
// every frame whether or not new lines arrived.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/sermon/internal/classify"
)

// Color is the display color of a row.
type Color int

const (
	Green Color = iota
	Yellow
	Red
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "green"
	}
}

// ColorFor maps a line kind to its fixed display color.
func ColorFor(kind classify.Kind) Color {
	switch kind {
	case classify.Warning:
		return Yellow
	case classify.Error:
		return Red
	default:
		return Green
	}
}

// Geometry is the inner size of a pane in terminal cells.
type Geometry struct {
	Width  int
	Height int
}

// Row is one projected line.
type Row struct {
	Index int // buffer index of the source line
	Text  string
	Color Color
}

// Windowed is implemented by scroll.Buffer.
type Windowed interface {
	VisibleWindow(height int) ([]classify.Line, int)
}

const tabWidth = 4

// Project returns the rows visible in g, top to bottom. Text is stripped of
// terminal escape sequences and truncated to g.Width cells when g.Width > 0.
func Project(src Windowed, g Geometry) []Row {
	lines, start := src.VisibleWindow(g.Height)
	if len(lines) == 0 {
		return nil
	}
	rows := make([]Row, len(lines))
	for i, line := range lines {
		rows[i] = Row{
			Index: start + i,
			Text:  Sanitize(line.Text, g.Width),
			Color: ColorFor(line.Kind),
		}
	}
	return rows
}

// Sanitize makes device text safe to draw in a cell grid.
func Sanitize(text string, width int) string {
	text = ansi.Strip(text)
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	text = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
	if width > 0 {
		text = ansi.Truncate(text, width, "…")
	}
	return text
}

// Split divides total rows between the main and diagnostic regions. The main
// region gets ratio of the height, rounded down; the diagnostic region gets
// the rest.
func Split(total int, ratio float64) (mainRows, diagRows int) {
	if total <= 0 {
		return 0, 0
	}
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultMainRatio
	}
	mainRows = int(float64(total) * ratio)
	return mainRows, total - mainRows
}

// DefaultMainRatio is the main pane's share of the terminal height.
const DefaultMainRatio = 0.7
