package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
)

func TestRecoveryBeforeWrite(t *testing.T) {
	h := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp jsonrpc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != jsonrpc.InternalError {
		t.Errorf("error = %+v, want code %d", resp.Error, jsonrpc.InternalError)
	}
}

func TestRecoveryAfterWrite(t *testing.T) {
	h := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
		panic("late")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"ok":true}` {
		t.Errorf("body = %q, response was double-written", got)
	}
}

func TestRequestLogPropagatesID(t *testing.T) {
	var seen string
	h := RequestLog(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "req-1" {
		t.Errorf("request id in context = %q", seen)
	}
	if rec.Header().Get("X-Request-ID") != "req-1" {
		t.Errorf("response header = %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestWriterFlushForwards(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)
	if _, ok := interface{}(rw).(http.Flusher); !ok {
		t.Fatal("wrapped writer must implement http.Flusher")
	}
	rw.Flush()
	if !rec.Flushed || !rw.Written() {
		t.Error("flush was not forwarded")
	}
	if Wrap(rw) != rw {
		t.Error("Wrap should not double-wrap")
	}
}

type plainWriter struct {
	header http.Header
}

func (w *plainWriter) Header() http.Header         { return w.header }
func (w *plainWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *plainWriter) WriteHeader(int)             {}

func TestFlushable(t *testing.T) {
	if !Flushable(Wrap(httptest.NewRecorder())) {
		t.Error("recorder behind wrapper should be flushable")
	}
	plain := Wrap(&plainWriter{header: http.Header{}})
	if Flushable(plain) {
		t.Error("plain writer should not be flushable")
	}
	if err := http.NewResponseController(plain).Flush(); err == nil {
		t.Error("ResponseController.Flush should report unsupported")
	}
	if plain.Written() {
		t.Error("failed flush must not commit headers")
	}
}
