package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sermon/internal/render"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" {
		t.Fatalf("ThemeNames()[0] = %q, want Nightfox", names[0])
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestLineStyleFollowsRowColor(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	tests := []struct {
		color render.Color
		want  string
	}{
		{render.Green, th.Success},
		{render.Yellow, th.Warning},
		{render.Red, th.Danger},
	}
	for _, tt := range tests {
		fg := styles.LineStyle(tt.color).GetForeground()
		if fg != lipgloss.Color(tt.want) {
			t.Errorf("LineStyle(%v) foreground = %v, want %v", tt.color, fg, tt.want)
		}
	}
}
