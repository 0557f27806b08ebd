package lexer

import "testing"

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"simple", "= v0 10", []string{"=", "v0", "10"}},
		{"string literal", `. "Hello World"`, []string{".", `"Hello World"`}},
		{"comment stripped", "= v0 10 ; this is a comment", []string{"=", "v0", "10"}},
		{"escaped quote in string", `. "a\"b"`, []string{".", `"a\"b"`}},
		{"blank", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeLine(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("TokenizeLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseDropsBlankLines(t *testing.T) {
	src := "= v0 10\n\n; comment only\n+ v1 v0 5\n"
	lines := Parse(src)
	if len(lines) != 2 {
		t.Fatalf("Parse() returned %d lines, want 2", len(lines))
	}
	if lines[0].Num != 1 || lines[1].Num != 4 {
		t.Errorf("line numbers = %d, %d, want 1, 4", lines[0].Num, lines[1].Num)
	}
}

func TestParseOperand(t *testing.T) {
	tests := []struct {
		tok  string
		kind OperandKind
	}{
		{"v0", OperandVariable},
		{"g10", OperandVariable},
		{"a2", OperandVariable},
		{"42", OperandInt},
		{"-10", OperandInt},
		{"3.14", OperandFloat},
		{`"hello"`, OperandString},
		{"bareword", OperandString},
	}
	for _, tt := range tests {
		op := ParseOperand(tt.tok)
		if op.Kind != tt.kind {
			t.Errorf("ParseOperand(%q).Kind = %v, want %v", tt.tok, op.Kind, tt.kind)
		}
	}

	if op := ParseOperand(`"a\nb"`); op.Str != "a\nb" {
		t.Errorf("escape decode = %q, want %q", op.Str, "a\nb")
	}

	if op := ParseOperand("v0"); op.Prefix != PrefixV || op.Index != 0 {
		t.Errorf("ParseOperand(v0) = %+v", op)
	}
}
