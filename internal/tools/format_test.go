package tools

import (
	"strings"
	"testing"
)

func TestFormatAlignsOperandsAndComments(t *testing.T) {
	out := Format("= v0 5 ; set v0\n", DefaultFormatOptions())
	if !strings.HasPrefix(out, "=") {
		t.Fatalf("expected opcode first, got %q", out)
	}
	if !strings.Contains(out, "v0 5") {
		t.Errorf("expected operands preserved, got %q", out)
	}
	if !strings.Contains(out, "; set v0") {
		t.Errorf("expected comment preserved, got %q", out)
	}
}

func TestFormatPreservesBlankLines(t *testing.T) {
	out := Format("= v0 1\n\n. v0\n", DefaultFormatOptions())
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || lines[1] != "" {
		t.Errorf("expected a preserved blank line, got %q", out)
	}
}

func TestFormatIgnoresSemicolonInsideString(t *testing.T) {
	out := Format(`= v0 "a;b"`, DefaultFormatOptions())
	if !strings.Contains(out, `"a;b"`) {
		t.Errorf("expected quoted semicolon preserved, got %q", out)
	}
}

func TestCompactFormatUsesSingleSpaces(t *testing.T) {
	out := Format("+  v0   v1  v2\n", CompactFormatOptions())
	if out != "+ v0 v1 v2\n" {
		t.Errorf("Format = %q, want single-space separated", out)
	}
}
