package ui

import (
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
}

func TestThemesDefineEveryLevelAndSegments(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if len(th.SegmentColors) < 2 {
			t.Fatalf("%s: %d segment colors, want at least 2", name, len(th.SegmentColors))
		}
		for _, level := range []string{"debug", "info", "warn", "error"} {
			if th.LevelColors[level] == "" {
				t.Fatalf("%s: no color for level %q", name, level)
			}
		}
	}
}

func TestSegmentStyle_CyclesPalette(t *testing.T) {
	th := GetTheme("Dracula")
	styles := th.Styles()
	n := len(th.SegmentColors)

	first := styles.SegmentStyle(0).GetBackground()
	wrapped := styles.SegmentStyle(n).GetBackground()
	if first != wrapped {
		t.Fatalf("SegmentStyle(%d) background = %v, want %v", n, wrapped, first)
	}
	if styles.SegmentStyle(-1).GetBackground() == first {
		t.Fatalf("SegmentStyle(-1) should fall back to the muted color")
	}
}
