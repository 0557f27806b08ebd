package debugger

import (
	"fmt"
	"sync"

	"github.com/suilang/sui/internal/value"
)

// Watchpoint monitors a v<N>/g<N> variable reference for value
// changes. Sui has no addressable memory to distinguish read/write
// access by, so every watchpoint is a change-detector: it fires
// whenever the watched variable's display value differs from the one
// recorded at the last check.
type Watchpoint struct {
	ID         int
	Expression string // raw token, e.g. "v0" or "g3"
	Enabled    bool
	LastValue  string
	HitCount   int
}

// WatchpointManager manages the watchpoint set for a debug session.
type WatchpointManager struct {
	mu          sync.RWMutex
	watchpoints map[int]*Watchpoint
	nextID      int
}

// NewWatchpointManager creates an empty watchpoint set.
func NewWatchpointManager() *WatchpointManager {
	return &WatchpointManager{
		watchpoints: make(map[int]*Watchpoint),
		nextID:      1,
	}
}

// Add starts watching expression, seeded with its current value so the
// first check after adding it doesn't immediately fire.
func (wm *WatchpointManager) Add(expression string, current *value.Value) *Watchpoint {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	wp := &Watchpoint{ID: wm.nextID, Expression: expression, Enabled: true, LastValue: current.Display()}
	wm.watchpoints[wp.ID] = wp
	wm.nextID++
	return wp
}

// Delete removes a watchpoint by ID.
func (wm *WatchpointManager) Delete(id int) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if _, exists := wm.watchpoints[id]; !exists {
		return fmt.Errorf("watchpoint %d not found", id)
	}
	delete(wm.watchpoints, id)
	return nil
}

// All returns every watchpoint, in no particular order.
func (wm *WatchpointManager) All() []*Watchpoint {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	result := make([]*Watchpoint, 0, len(wm.watchpoints))
	for _, wp := range wm.watchpoints {
		result = append(result, wp)
	}
	return result
}

// CheckAll resolves every enabled watchpoint's current value via
// resolve, compares it against the last recorded value, and returns
// the ones that changed (updating LastValue and HitCount as it goes).
func (wm *WatchpointManager) CheckAll(resolve func(tok string) *value.Value) []*Watchpoint {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	var fired []*Watchpoint
	for _, wp := range wm.watchpoints {
		if !wp.Enabled {
			continue
		}
		cur := resolve(wp.Expression).Display()
		if cur != wp.LastValue {
			wp.HitCount++
			wp.LastValue = cur
			fired = append(fired, wp)
		}
	}
	return fired
}

// Clear removes every watchpoint.
func (wm *WatchpointManager) Clear() {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.watchpoints = make(map[int]*Watchpoint)
}
