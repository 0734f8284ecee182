// Package bridge serves MCP sessions over HTTP: each client holds one
// event stream (GET /sse) for server-pushed messages and posts requests to
// the per-session endpoint it was given (POST /messages?sessionId=).
package bridge

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
	"gitmcp/server/internal/middleware"
	"gitmcp/server/internal/observability"
)

const (
	// DefaultPort is the first port tried.
	DefaultPort = 3000
	// DefaultMaxPortAttempts bounds the fallback scan: port, port+1, ...
	DefaultMaxPortAttempts = 10

	maxBodyBytes = 4 << 20
)

// Options configures a Bridge.
type Options struct {
	Host            string
	Port            int
	MaxPortAttempts int
	// BufferSize is the per-session outbound queue length.
	BufferSize int
	// Name and Version are reported by /health.
	Name    string
	Version string
}

// Bridge is the HTTP transport. It owns neither the registry nor the
// processor; both are injected.
type Bridge struct {
	processor middleware.RequestProcessor
	registry  *Registry
	logger    *zap.Logger
	opts      Options

	nextID atomic.Int64
	newID  func() string

	// listenFn is net.Listen; tests replace it to simulate busy ports.
	listenFn func(network, address string) (net.Listener, error)

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func New(processor middleware.RequestProcessor, registry *Registry, logger *zap.Logger, opts Options) *Bridge {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxPortAttempts <= 0 {
		opts.MaxPortAttempts = DefaultMaxPortAttempts
	}
	if opts.Name == "" {
		opts.Name = "gitmcp"
	}
	return &Bridge{
		processor: processor,
		registry:  registry,
		logger:    logger,
		opts:      opts,
		newID:     uuid.NewString,
		listenFn:  net.Listen,
	}
}

// Registry returns the session registry the bridge routes through.
func (b *Bridge) Registry() *Registry { return b.registry }

// Handler returns the bridge's routes wrapped in request logging and panic
// recovery.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sse", b.handleStream)
	mux.HandleFunc("POST /messages", b.handleMessage)
	mux.HandleFunc("GET /health", b.handleHealth)
	mux.Handle("GET /metrics", observability.MetricsHandler())

	var h http.Handler = mux
	h = middleware.Recovery(b.logger)(h)
	h = middleware.RequestLog(b.logger)(h)
	return h
}

// =============================================================================
// Open stream: GET /sse
// =============================================================================

func (b *Bridge) handleStream(w http.ResponseWriter, r *http.Request) {
	if !middleware.Flushable(w) {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Any client-supplied id is ignored.
	id := b.newID()
	s := newSession(id, w, b.processor, b.logger, b.opts.BufferSize)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	s.setState(StateConnected)
	if err := b.registry.Add(s); err != nil {
		b.logger.Error("register session", zap.Error(err))
		s.writeEvent("error", []byte("session registration failed"))
		s.close()
		return
	}
	observability.SessionsOpened.Inc()
	observability.SessionsActive.Inc()
	defer b.teardown(s)

	if err := s.writeEvent("endpoint", []byte(s.endpoint)); err != nil {
		s.logger.Warn("initial event write failed", zap.Error(err))
		s.writeEvent("error", []byte("stream setup failed"))
		return
	}
	s.logger.Info("session opened", zap.String("remote", r.RemoteAddr))
	observability.LogSessionEvent(id, "opened", map[string]any{"remote": r.RemoteAddr})

	if err := s.run(r.Context()); err != nil {
		s.logger.Info("stream write failed", zap.Error(err))
	}
}

// teardown removes s from the registry and stops its writer.
func (b *Bridge) teardown(s *Session) {
	s.close()
	if b.registry.Remove(s.id) {
		observability.SessionsClosed.Inc()
		observability.SessionsActive.Dec()
	}
	s.logger.Info("session closed")
	observability.LogSessionEvent(s.id, "closed", nil)
}

// =============================================================================
// Post message: POST /messages?sessionId=<id>
// =============================================================================

func (b *Bridge) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFrom(r)
	if id == "" {
		b.reject(w, http.StatusBadRequest, nil, jsonrpc.InvalidRequest, "session id required", "no_session_id")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		b.reject(w, http.StatusBadRequest, nil, jsonrpc.InvalidRequest, "invalid request", "invalid_request")
		return
	}
	req, err := jsonrpc.DecodeRequest(body)
	if err != nil {
		b.logger.Debug("invalid request body", zap.String("session", id), zap.Error(err))
		b.reject(w, http.StatusBadRequest, nil, jsonrpc.InvalidRequest, "invalid request", "invalid_request")
		return
	}

	s, ok := b.registry.Get(id)
	if !ok {
		b.reject(w, http.StatusNotFound, req.ID, jsonrpc.ErrSessionNotFound, "session not found", "session_not_found")
		return
	}
	if !s.Connected() {
		b.reject(w, http.StatusBadRequest, req.ID, jsonrpc.ErrConnectionClosed, "connection closed", "connection_closed")
		return
	}

	req.Normalize(b.nextMessageID)
	s.HandleMessage(w, r, req)
}

func (b *Bridge) nextMessageID() int64 {
	return b.nextID.Add(1)
}

func (b *Bridge) reject(w http.ResponseWriter, status int, id interface{}, code int, msg, outcome string) {
	observability.Messages.WithLabelValues(outcome).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonrpc.EncodeError(id, jsonrpc.NewError(code, msg)))
}

// sessionIDFrom reads the session id from the query string only. The
// first value wins and anything after a stray '?', '&' or '#' is dropped.
func sessionIDFrom(r *http.Request) string {
	values := r.URL.Query()["sessionId"]
	if len(values) == 0 {
		return ""
	}
	id := values[0]
	if i := strings.IndexAny(id, "?&#"); i >= 0 {
		id = id[:i]
	}
	return strings.TrimSpace(id)
}

// =============================================================================
// Health: GET /health
// =============================================================================

func (b *Bridge) handleHealth(w http.ResponseWriter, r *http.Request) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str("ok")
	e.FieldStart("server")
	e.Str(b.opts.Name)
	e.FieldStart("version")
	e.Str(b.opts.Version)
	e.FieldStart("sessions")
	e.Int(b.registry.Len())
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(e.Bytes())
}

// =============================================================================
// Startup / shutdown
// =============================================================================

// Listen binds the configured port. When it is in use the next port is
// tried, up to MaxPortAttempts ports in total. Any other error is returned
// immediately.
func (b *Bridge) Listen() (net.Listener, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listener != nil {
		return b.listener, nil
	}

	port := b.opts.Port
	var lastErr error
	for attempt := 0; attempt < b.opts.MaxPortAttempts; attempt++ {
		candidate := port + attempt
		if candidate > 65535 {
			break
		}
		addr := net.JoinHostPort(b.opts.Host, strconv.Itoa(candidate))
		ln, err := b.listenFn("tcp", addr)
		if err == nil {
			if attempt > 0 {
				b.logger.Warn("configured port in use, using fallback",
					zap.Int("configured", port),
					zap.Int("port", candidate),
				)
			}
			b.listener = ln
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, errors.Wrapf(err, "listen on %s", addr)
		}
		b.logger.Debug("port in use", zap.Int("port", candidate))
		lastErr = err
		if port == 0 {
			break
		}
	}
	return nil, errors.Wrapf(lastErr, "no free port in %d..%d", port, port+b.opts.MaxPortAttempts-1)
}

// Addr returns the bound address, or nil before Listen.
func (b *Bridge) Addr() net.Addr {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listener == nil {
		return nil
	}
	return b.listener.Addr()
}

// Serve listens (if needed) and serves until ctx is cancelled, then closes
// the server and every open connection without draining.
func (b *Bridge) Serve(ctx context.Context) error {
	ln, err := b.Listen()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	b.mu.Lock()
	b.server = srv
	b.mu.Unlock()

	b.logger.Info("bridge listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("stream", "/sse"),
		zap.String("messages", "/messages"),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		b.logger.Info("shutting down", zap.Int("open_sessions", b.registry.Len()))
		if err := b.Close(); err != nil {
			b.logger.Warn("close server", zap.Error(err))
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	}
}

// Close stops the server immediately. Open sessions are dropped.
func (b *Bridge) Close() error {
	b.mu.Lock()
	srv, ln := b.server, b.listener
	b.mu.Unlock()
	if srv != nil {
		return srv.Close()
	}
	if ln != nil {
		return ln.Close()
	}
	return nil
}
