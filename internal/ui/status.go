package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sermon/internal/ingest"
)

// renderStatus renders the bottom status bar: stream state on the left, key
// hints on the right.
func (m Model) renderStatus() string {
	bg := NewBgStyle(m.theme.Surface)
	styles := m.theme.Styles()

	left := bg.Space() + m.streamLabel(styles, bg)

	h := m.help
	h.Styles.ShortKey = styles.AccentText.Background(bg.Color())
	h.Styles.ShortDesc = styles.MutedText.Background(bg.Color())
	h.Styles.ShortSeparator = styles.FaintText.Background(bg.Color())
	right := h.ShortHelpView(m.keys.ShortHelp()) + bg.Space()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return bg.FillLine(truncateStyled(left, m.width), m.width)
	}
	return bg.FillLine(left+bg.Spaces(gap)+right, m.width)
}

// streamLabel summarises the ingestion state from the latest snapshot.
func (m Model) streamLabel(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	lines := bg.Render(fmt.Sprintf("%d lines", m.panes.Main.Len()+int(m.panes.Main.Dropped())), styles.FaintText)
	sep := bg.Render(" │ ", styles.FaintText)

	switch {
	case m.streamClosed || snap.Ended:
		msg := "stream ended"
		if err := snap.LastError; err != nil && !errors.Is(err, ingest.ErrSourceClosed) {
			msg = "stream ended: " + truncate(err.Error(), 60)
		}
		return bg.Render("■ "+msg, styles.DangerText) + sep + lines
	case !m.haveSnapshot:
		return bg.Render("connecting", styles.MutedText)
	case !snap.Connected && snap.LastError != nil:
		return bg.Render("◌ reconnecting: "+truncate(snap.LastError.Error(), 48), styles.WarningText) + sep + lines
	default:
		label := "● " + truncateMiddle(snap.Port, 32)
		if snap.BaudRate > 0 {
			label += fmt.Sprintf(" @%d", snap.BaudRate)
		}
		status := bg.Render(label, styles.SuccessText) + sep + lines
		if idle := snap.Idle(time.Now()); idle >= 5*time.Second {
			status += sep + bg.Render("idle "+humanizeDuration(idle), styles.MutedText)
		}
		return status
	}
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
