package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sermon/internal/render"
	"github.com/five82/sermon/internal/scroll"
)

const (
	mainTitle = "Serial Monitor"
	diagTitle = "Errors and Warnings"

	mainEmpty = "Waiting for data…"
	diagEmpty = "No warnings or errors"
)

// paneRows splits the terminal height below the status bar.
func (m Model) paneRows() (mainRows, diagRows int) {
	return render.Split(max(0, m.height-statusBarHeight), m.mainRatio)
}

// geometry returns the drawable text area of a pane box with the given rows.
func (m Model) geometry(rows int) render.Geometry {
	g := render.Geometry{
		Width:  max(0, m.width-borderCols),
		Height: max(0, rows-borderRows),
	}
	if m.lineNumbers {
		g.Width = max(0, g.Width-lineNumberWidth)
	}
	return g
}

func (m Model) mainGeometry() render.Geometry {
	rows, _ := m.paneRows()
	return m.geometry(rows)
}

func (m Model) diagGeometry() render.Geometry {
	_, rows := m.paneRows()
	return m.geometry(rows)
}

// renderMain stacks the two panes above the status bar.
func (m Model) renderMain() string {
	mainRows, diagRows := m.paneRows()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(m.mainTitle(), mainEmpty, m.panes.Main, mainRows),
		m.renderPane(diagTitle, diagEmpty, m.panes.Diag, diagRows),
		m.renderStatus(),
	)
}

func (m Model) mainTitle() string {
	if m.haveSnapshot && m.snapshot.Port != "" {
		return mainTitle + " · " + truncateMiddle(m.snapshot.Port, 32)
	}
	return mainTitle
}

// renderPane projects buf into a bordered box of rows lines.
func (m Model) renderPane(title, empty string, buf *scroll.Buffer, rows int) string {
	if rows <= 0 {
		return ""
	}
	styles := m.theme.Styles()
	g := m.geometry(rows)

	projected := render.Project(buf, g)
	body := make([]string, 0, g.Height)
	if len(projected) == 0 {
		body = append(body, styles.MutedText.Render(empty))
	}
	for _, row := range projected {
		line := styles.LineStyle(row.Color).Render(row.Text)
		if m.lineNumbers {
			num := buf.Dropped() + uint64(row.Index) + 1
			line = styles.FaintText.Render(fmt.Sprintf("%6d │ ", num)) + line
		}
		body = append(body, line)
	}

	held := buf.Mode() == scroll.Manual
	return m.renderBox(title, paneStatus(buf, g.Height), body, m.width, rows, held)
}

// paneStatus describes the scroll position for the bottom border.
func paneStatus(buf *scroll.Buffer, height int) string {
	total := buf.Len()
	if buf.Following() {
		return fmt.Sprintf("AUTO %d lines", total)
	}
	if total == 0 || height <= 0 {
		return "MANUAL"
	}
	first := buf.Offset(height) + 1
	last := min(total, first+height-1)
	return fmt.Sprintf("MANUAL %d-%d/%d", first, last, total)
}

// renderBox draws a rounded box with the title in the top border and status
// in the bottom border. held highlights the border while the user is
// scrolled away from the tail.
func (m Model) renderBox(title, status string, body []string, width, height int, held bool) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	if width < 4 || height < minPaneRows {
		return strings.Repeat("\n", height-1)
	}

	styles := m.theme.Styles()
	borderStyle := styles.Border
	if held {
		borderStyle = styles.BorderFocus
	}
	border := lipgloss.RoundedBorder()
	inner := width - borderCols

	label := truncate(" "+title+" ", inner-1)
	topFill := max(0, inner-1-lipgloss.Width(label))
	top := borderStyle.Render(border.TopLeft+border.Top) +
		styles.Title.Render(label) +
		borderStyle.Render(strings.Repeat(border.Top, topFill)+border.TopRight)

	statusLabel := truncate(" "+status+" ", inner-1)
	bottomFill := max(0, inner-1-lipgloss.Width(statusLabel))
	bottom := borderStyle.Render(border.BottomLeft+strings.Repeat(border.Bottom, bottomFill)) +
		styles.FaintText.Render(statusLabel) +
		borderStyle.Render(border.Bottom+border.BottomRight)

	lines := make([]string, 0, height)
	lines = append(lines, top)
	left := borderStyle.Render(border.Left)
	right := borderStyle.Render(border.Right)
	for i := 0; i < height-borderRows; i++ {
		var content string
		if i < len(body) {
			content = body[i]
		}
		if w := lipgloss.Width(content); w > inner {
			content = truncateStyled(content, inner)
		} else if w < inner {
			content += strings.Repeat(" ", inner-w)
		}
		lines = append(lines, left+content+right)
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}
