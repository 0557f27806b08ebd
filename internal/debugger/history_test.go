package debugger

import "testing"

func TestCommandHistoryAddAndNavigate(t *testing.T) {
	h := NewCommandHistory(10)
	h.Add("step")
	h.Add("continue")
	h.Add("print v0")

	if got := h.Previous(); got != "print v0" {
		t.Errorf("Previous = %q, want %q", got, "print v0")
	}
	if got := h.Previous(); got != "continue" {
		t.Errorf("Previous = %q, want %q", got, "continue")
	}
	if got := h.Next(); got != "print v0" {
		t.Errorf("Next = %q, want %q", got, "print v0")
	}
}

func TestCommandHistoryCollapsesRepeats(t *testing.T) {
	h := NewCommandHistory(10)
	h.Add("step")
	h.Add("step")
	if len(h.All()) != 1 {
		t.Errorf("All() = %v, want a single collapsed entry", h.All())
	}
}

func TestCommandHistoryTrimsToMaxSize(t *testing.T) {
	h := NewCommandHistory(3)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("d")
	if got := h.All(); len(got) != 3 || got[0] != "b" {
		t.Errorf("All() = %v, want [b c d]", got)
	}
}
