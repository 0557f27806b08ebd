package debugapi

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/suilang/sui/internal/debugger"
	"github.com/suilang/sui/internal/interp"
)

var (
	// ErrSessionNotFound is returned for operations against an unknown
	// or already-destroyed session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionAlreadyExists signals a generated session id collided;
	// the caller should retry CreateSession.
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// SessionCreateRequest carries the options a client may set when
// opening a debug session.
type SessionCreateRequest struct {
	MaxStackDepth int `json:"maxStackDepth"`
	HistorySize   int `json:"historySize"`
}

// Session pairs a running Debugger with the id clients address it by.
type Session struct {
	ID        string
	Debugger  *debugger.Debugger
	CreatedAt time.Time
}

// SessionManager owns every live debug session and broadcasts their
// state changes to subscribed WebSocket clients.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	broadcaster *Broadcaster
}

// NewSessionManager creates a SessionManager that reports through
// broadcaster (may be nil to run without live event fan-out).
func NewSessionManager(broadcaster *Broadcaster) *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session), broadcaster: broadcaster}
}

// CreateSession allocates a fresh interpreter and debugger under a new
// session id.
func (sm *SessionManager) CreateSession(opts SessionCreateRequest) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	maxStack := opts.MaxStackDepth
	if maxStack <= 0 {
		maxStack = 1000
	}
	historySize := opts.HistorySize
	if historySize <= 0 {
		historySize = 1000
	}

	it := interp.New(interp.WithMaxStackDepth(maxStack))
	dbg := debugger.New(it, historySize)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, exists := sm.sessions[id]; exists {
		return nil, ErrSessionAlreadyExists
	}

	session := &Session{ID: id, Debugger: dbg, CreatedAt: time.Now()}
	sm.sessions[id] = session
	return session, nil
}

// GetSession looks a session up by id.
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// DestroySession removes a session; subsequent GetSession calls for
// its id return ErrSessionNotFound.
func (sm *SessionManager) DestroySession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	return nil
}

// ListSessions returns every live session id.
func (sm *SessionManager) ListSessions() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count reports how many sessions are currently live.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// notifyState broadcasts the session's current debugger position, if
// a broadcaster is attached.
func (sm *SessionManager) notifyState(id string, d *debugger.Debugger) {
	if sm.broadcaster == nil {
		return
	}
	sm.broadcaster.BroadcastState(id, map[string]interface{}{
		"line":    d.CurrentLine(),
		"running": d.Running,
	})
}

func generateSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
