package debugger

import (
	"strings"
	"testing"
)

func TestRunCommandLoopStepsAndQuits(t *testing.T) {
	d := newDebugger(t, "= v0 1\n. v0\n")

	in := strings.NewReader("step\nstep\nquit\n")
	var out strings.Builder
	if err := RunCommandLoop(d, in, &out); err != nil {
		t.Fatalf("RunCommandLoop: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "line") {
		t.Errorf("expected step output to mention a line, got %q", got)
	}
	if !strings.Contains(got, "stopped") {
		t.Errorf("expected quit to report stopped, got %q", got)
	}
}

func TestRunCommandLoopReportsUnknownCommand(t *testing.T) {
	d := newDebugger(t, ". v0\n")

	in := strings.NewReader("bogus\nquit\n")
	var out strings.Builder
	if err := RunCommandLoop(d, in, &out); err != nil {
		t.Fatalf("RunCommandLoop: %v", err)
	}
	if !strings.Contains(out.String(), "error: unknown command") {
		t.Errorf("expected unknown command error, got %q", out.String())
	}
}

func TestRunCommandLoopHelp(t *testing.T) {
	d := newDebugger(t, ". v0\n")

	in := strings.NewReader("help\nquit\n")
	var out strings.Builder
	if err := RunCommandLoop(d, in, &out); err != nil {
		t.Fatalf("RunCommandLoop: %v", err)
	}
	if !strings.Contains(out.String(), "Execution:") {
		t.Errorf("expected help text, got %q", out.String())
	}
}

func TestRunCommandLoopReportsFinish(t *testing.T) {
	d := newDebugger(t, ". v0\n")

	in := strings.NewReader("continue\nquit\n")
	var out strings.Builder
	if err := RunCommandLoop(d, in, &out); err != nil {
		t.Fatalf("RunCommandLoop: %v", err)
	}
	if !strings.Contains(out.String(), "program has finished") {
		t.Errorf("expected finished notice, got %q", out.String())
	}
}
