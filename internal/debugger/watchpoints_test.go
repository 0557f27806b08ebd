package debugger

import (
	"testing"

	"github.com/suilang/sui/internal/value"
)

func TestWatchpointManagerChangeDetection(t *testing.T) {
	wm := NewWatchpointManager()
	wm.Add("v0", value.NewInt(0))

	vals := map[string]*value.Value{"v0": value.NewInt(0)}
	resolve := func(tok string) *value.Value { return vals[tok] }

	if fired := wm.CheckAll(resolve); len(fired) != 0 {
		t.Fatalf("expected no watchpoints to fire on an unchanged value, got %v", fired)
	}

	vals["v0"] = value.NewInt(5)
	fired := wm.CheckAll(resolve)
	if len(fired) != 1 || fired[0].HitCount != 1 {
		t.Fatalf("fired = %+v, want one hit", fired)
	}
}

func TestWatchpointManagerDelete(t *testing.T) {
	wm := NewWatchpointManager()
	wp := wm.Add("g0", value.NewInt(0))
	if err := wm.Delete(wp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := wm.Delete(wp.ID); err == nil {
		t.Errorf("expected error deleting an already-deleted watchpoint")
	}
}
