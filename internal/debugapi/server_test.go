package debugapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestServer() *Server {
	return NewServer(0)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateLoadStepSession(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/session", SessionCreateRequest{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created["sessionId"]
	if id == "" {
		t.Fatal("expected a session id")
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/session/"+id+"/load", loadRequest{Source: "= v0 5\n. v0\n"})
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/session/"+id+"/step", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("step status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/session/"+id+"/output", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("output status = %d, want 200", rec.Code)
	}
}

func TestGetUnknownSessionReturns404(t *testing.T) {
	srv := newTestServer()
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/session/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBreakpointCreateAndDelete(t *testing.T) {
	srv := newTestServer()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/session", SessionCreateRequest{})
	var created map[string]string
	json.Unmarshal(rec.Body.Bytes(), &created)
	id := created["sessionId"]

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/session/"+id+"/breakpoint", breakpointRequest{Line: 3})
	if rec.Code != http.StatusCreated {
		t.Fatalf("breakpoint create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var bp struct{ ID int }
	if err := json.Unmarshal(rec.Body.Bytes(), &bp); err != nil {
		t.Fatalf("decode breakpoint: %v", err)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/session/"+id+"/breakpoint/"+strconv.Itoa(bp.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("breakpoint delete status = %d, want 204: %s", rec.Code, rec.Body.String())
	}
}
