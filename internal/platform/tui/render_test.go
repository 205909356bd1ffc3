package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/portalhop/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(0, 1, "red", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if lines[0] != "plain     " {
		t.Errorf("default row = %q, expected unstyled text", lines[0])
	}
	if !strings.Contains(lines[1], "red") {
		t.Errorf("colored row = %q, expected to contain red", lines[1])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("styleFor(unknown).Render() = %q, expected plain text", got)
	}
}
