// Package tools provides source-level utilities built on the parser:
// a column-aligned formatter, a static linter, and a label/function
// cross-referencer.
package tools

import (
	"strings"

	"github.com/suilang/sui/internal/lexer"
)

// FormatOptions controls formatter column widths.
type FormatOptions struct {
	OperandColumn int // column operands start at
	CommentColumn int // column a trailing comment starts at
	AlignOperands bool
}

// DefaultFormatOptions mirrors the spacing a hand-formatted Sui script
// tends to settle on: a one-character opcode, then operands, then an
// aligned comment column.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{OperandColumn: 4, CommentColumn: 24, AlignOperands: true}
}

// CompactFormatOptions collapses every line to single-space separation.
func CompactFormatOptions() *FormatOptions {
	return &FormatOptions{AlignOperands: false}
}

// Format re-renders Sui source with normalized spacing, preserving
// comments, blank lines, and token content exactly. It does not
// validate the source; malformed lines pass through unchanged.
func Format(source string, opts *FormatOptions) string {
	if opts == nil {
		opts = DefaultFormatOptions()
	}

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	out := make([]string, len(lines))

	for i, line := range lines {
		code, comment := splitComment(line)
		tokens := lexer.TokenizeLine(code)
		if len(tokens) == 0 {
			out[i] = strings.TrimRight(line, " \t")
			continue
		}

		var b strings.Builder
		b.WriteString(tokens[0])
		if len(tokens) > 1 {
			if opts.AlignOperands {
				padTo(&b, opts.OperandColumn)
			} else {
				b.WriteString(" ")
			}
			b.WriteString(strings.Join(tokens[1:], " "))
		}
		if comment != "" {
			if opts.AlignOperands {
				padTo(&b, opts.CommentColumn)
			} else {
				b.WriteString(" ")
			}
			b.WriteString("; ")
			b.WriteString(strings.TrimSpace(comment))
		}
		out[i] = b.String()
	}

	return strings.Join(out, "\n")
}

// splitComment separates a line's code from a trailing ';' comment,
// respecting string literals the way lexer.TokenizeLine does.
func splitComment(line string) (code, comment string) {
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '"':
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' && i+1 < len(runes) {
					i++
				}
				i++
			}
		case ';':
			return string(runes[:i]), string(runes[i+1:])
		}
	}
	return line, ""
}

func padTo(b *strings.Builder, column int) {
	if b.Len() >= column {
		b.WriteString(" ")
		return
	}
	b.WriteString(strings.Repeat(" ", column-b.Len()))
}
