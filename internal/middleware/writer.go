package middleware

import (
	"net/http"
)

// ResponseWriter records whether anything has been sent so error paths
// can tell if a status line can still be written. It forwards Flush, which
// the event-stream handler depends on.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// Wrap returns w as a *ResponseWriter, reusing it if already wrapped.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w}
}

func (w *ResponseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *ResponseWriter) Flush() {
	w.FlushError()
}

// FlushError flushes and reports failures, including http.ErrNotSupported
// when the underlying writer cannot stream. http.ResponseController uses it.
func (w *ResponseWriter) FlushError() error {
	if !Flushable(w.ResponseWriter) {
		return http.ErrNotSupported
	}
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return http.NewResponseController(w.ResponseWriter).Flush()
}

// Flushable reports whether w can stream, looking through *ResponseWriter.
func Flushable(w http.ResponseWriter) bool {
	for {
		rw, ok := w.(*ResponseWriter)
		if !ok {
			break
		}
		w = rw.ResponseWriter
	}
	switch w.(type) {
	case http.Flusher, interface{ FlushError() error }:
		return true
	}
	return false
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Written reports whether headers have been sent.
func (w *ResponseWriter) Written() bool {
	return w.written
}

// Status returns the status sent, or 0.
func (w *ResponseWriter) Status() int {
	return w.status
}
