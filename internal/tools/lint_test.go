package tools

import (
	"strings"
	"testing"
)

func issueCodes(issues []*LintIssue) []string {
	codes := make([]string, len(issues))
	for i, iss := range issues {
		codes[i] = iss.Code
	}
	return codes
}

func hasCode(issues []*LintIssue, code string) bool {
	for _, c := range issueCodes(issues) {
		if c == code {
			return true
		}
	}
	return false
}

func TestLintUndefinedLabel(t *testing.T) {
	issues := NewLinter().Lint("@ 99\n. v0\n")
	if !hasCode(issues, "UNDEF_LABEL") {
		t.Errorf("expected UNDEF_LABEL, got %v", issues)
	}
}

func TestLintDuplicateLabel(t *testing.T) {
	issues := NewLinter().Lint(": 1\n. v0\n: 1\n. v1\n")
	if !hasCode(issues, "DUPLICATE_LABEL") {
		t.Errorf("expected DUPLICATE_LABEL, got %v", issues)
	}
}

func TestLintUnusedLabel(t *testing.T) {
	issues := NewLinter().Lint(": 1\n. v0\n")
	if !hasCode(issues, "UNUSED_LABEL") {
		t.Errorf("expected UNUSED_LABEL, got %v", issues)
	}
}

func TestLintUnreachableCodeAfterJump(t *testing.T) {
	issues := NewLinter().Lint("@ 1\n. v0\n: 1\n. v1\n")
	if !hasCode(issues, "UNREACHABLE_CODE") {
		t.Errorf("expected UNREACHABLE_CODE, got %v", issues)
	}
}

func TestLintUndeclaredFunctionCall(t *testing.T) {
	issues := NewLinter().Lint("$ v0 7 g1\n")
	if !hasCode(issues, "UNDEF_FUNCTION") {
		t.Errorf("expected UNDEF_FUNCTION, got %v", issues)
	}
}

func TestLintCleanProgramHasNoIssues(t *testing.T) {
	src := "# 0 1 {\n" +
		"^ a0\n" +
		"}\n" +
		"$ v0 0 g1\n" +
		". v0\n"
	issues := NewLinter().Lint(src)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestLintIssueStringFormat(t *testing.T) {
	issues := NewLinter().Lint("@ 5\n")
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
	if !strings.Contains(issues[0].String(), "line 1") {
		t.Errorf("String() = %q, want it to mention the line", issues[0].String())
	}
}
