package debugapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// loadRequest is the body of POST /api/v1/session/{id}/load.
type loadRequest struct {
	Source string   `json:"source"`
	Args   []string `json:"args"`
}

// breakpointRequest is the body of POST .../breakpoint.
type breakpointRequest struct {
	Line      int  `json:"line"`
	Temporary bool `json:"temporary"`
}

// watchRequest is the body of POST .../watchpoint.
type watchRequest struct {
	Expression string `json:"expression"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": s.sessions.ListSessions()})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	_ = readJSON(r, &req) // an empty or absent body just takes defaults

	session, err := s.sessions.CreateSession(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"sessionId": session.ID})
}

func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "session id required")
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetState(w, r, id)
		case http.MethodDelete:
			s.handleDestroySession(w, r, id)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	action := parts[1]
	switch action {
	case "load":
		s.handleLoad(w, r, id)
	case "step":
		s.handleStep(w, r, id)
	case "continue":
		s.handleContinue(w, r, id)
	case "breakpoint":
		s.handleBreakpoint(w, r, id, parts[2:])
	case "watchpoint":
		s.handleWatchpoint(w, r, id, parts[2:])
	case "locals":
		s.handleVars(w, r, id, false)
	case "globals":
		s.handleVars(w, r, id, true)
	case "backtrace":
		s.handleBacktrace(w, r, id)
	case "print":
		s.handlePrint(w, r, id)
	case "output":
		s.handleOutput(w, r, id)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown action: %s", action))
	}
}

func (s *Server) session(w http.ResponseWriter, id string) *Session {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil
	}
	return session
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.sessions.DestroySession(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"line":    session.Debugger.CurrentLine(),
		"running": session.Debugger.Running,
	})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	var req loadRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := session.Debugger.Load(req.Source, req.Args); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sessions.notifyState(id, session.Debugger)
	writeJSON(w, http.StatusOK, map[string]interface{}{"line": session.Debugger.CurrentLine()})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	done, err := session.Debugger.Step()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sessions.notifyState(id, session.Debugger)
	writeJSON(w, http.StatusOK, map[string]interface{}{"line": session.Debugger.CurrentLine(), "done": done})
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	bp, err := session.Debugger.Resume()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sessions.notifyState(id, session.Debugger)
	resp := map[string]interface{}{"line": session.Debugger.CurrentLine(), "running": session.Debugger.Running}
	if bp != nil {
		resp["breakpoint"] = bp.ID
		s.broadcaster.BroadcastExecutionEvent(id, "breakpoint", map[string]interface{}{"id": bp.ID, "line": bp.Line})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBreakpoint(w http.ResponseWriter, r *http.Request, id string, rest []string) {
	session := s.session(w, id)
	if session == nil {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req breakpointRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		bp := session.Debugger.Breakpoints.Add(req.Line, req.Temporary)
		writeJSON(w, http.StatusCreated, bp)

	case http.MethodDelete:
		if len(rest) == 0 {
			writeError(w, http.StatusBadRequest, "breakpoint id required")
			return
		}
		bpID, err := strconv.Atoi(rest[0])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid breakpoint id")
			return
		}
		if err := session.Debugger.Breakpoints.Delete(bpID); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Debugger.Breakpoints.All())

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWatchpoint(w http.ResponseWriter, r *http.Request, id string, rest []string) {
	session := s.session(w, id)
	if session == nil {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req watchRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		wp := session.Debugger.Watchpoints.Add(req.Expression, session.Debugger.Print(req.Expression))
		writeJSON(w, http.StatusCreated, wp)

	case http.MethodDelete:
		if len(rest) == 0 {
			writeError(w, http.StatusBadRequest, "watchpoint id required")
			return
		}
		wpID, err := strconv.Atoi(rest[0])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid watchpoint id")
			return
		}
		if err := session.Debugger.Watchpoints.Delete(wpID); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Debugger.Watchpoints.All())

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleVars(w http.ResponseWriter, r *http.Request, id string, globals bool) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	raw := session.Debugger.Locals()
	if globals {
		raw = session.Debugger.Globals()
	}
	vars := make(map[int64]string, len(raw))
	for k, v := range raw {
		vars[k] = v.Display()
	}
	writeJSON(w, http.StatusOK, vars)
}

func (s *Server) handleBacktrace(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stack": session.Debugger.CallStack()})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	expr := r.URL.Query().Get("expr")
	if expr == "" {
		writeError(w, http.StatusBadRequest, "expr query parameter required")
		return
	}
	v := session.Debugger.Print(expr)
	writeJSON(w, http.StatusOK, map[string]interface{}{"expr": expr, "value": v.Display()})
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request, id string) {
	session := s.session(w, id)
	if session == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"output": session.Debugger.Output()})
}
