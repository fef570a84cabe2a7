package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrapRespectsWidth(t *testing.T) {
	lines := wrap("derelict jump freighter drifting beyond the shipping lanes", 16)
	if len(lines) < 3 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for i, l := range lines {
		if utf8.RuneCountInString(l) > 16 {
			t.Errorf("line %d over width: %q", i, l)
		}
	}
	joined := strings.Join(lines, " ")
	if joined != "derelict jump freighter drifting beyond the shipping lanes" {
		t.Errorf("wrap lost words: %q", joined)
	}
}

func TestWrapLongWordOwnLine(t *testing.T) {
	lines := wrap("ok supercalifragilistic ok", 10)
	if len(lines) != 3 {
		t.Fatalf("lines = %v", lines)
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Errorf("clip = %q", got)
	}
	got := clip("a very long station designation", 10)
	if utf8.RuneCountInString(got) != 10 {
		t.Errorf("clipped length = %d (%q)", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("no ellipsis: %q", got)
	}
}
