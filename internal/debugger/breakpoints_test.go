package debugger

import "testing"

func TestBreakpointManagerAddAndProcessHit(t *testing.T) {
	bm := NewBreakpointManager()
	bp := bm.Add(10, false)
	if bp.ID != 1 || bp.Line != 10 {
		t.Fatalf("Add = %+v", bp)
	}

	hit := bm.ProcessHit(10)
	if hit == nil || hit.HitCount != 1 {
		t.Fatalf("ProcessHit = %+v", hit)
	}
	if bm.At(10) == nil {
		t.Errorf("non-temporary breakpoint should survive a hit")
	}
}

func TestBreakpointManagerTemporaryDeletesAfterHit(t *testing.T) {
	bm := NewBreakpointManager()
	bm.Add(5, true)

	bm.ProcessHit(5)
	if bm.At(5) != nil {
		t.Errorf("temporary breakpoint should be removed after its hit")
	}
}

func TestBreakpointManagerDelete(t *testing.T) {
	bm := NewBreakpointManager()
	bp := bm.Add(1, false)
	if err := bm.Delete(bp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := bm.Delete(bp.ID); err == nil {
		t.Errorf("expected error deleting an already-deleted breakpoint")
	}
}
