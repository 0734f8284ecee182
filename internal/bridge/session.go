package bridge

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
	"gitmcp/server/internal/logging"
	"gitmcp/server/internal/middleware"
	"gitmcp/server/internal/observability"
)

// State is a session's position in its lifecycle.
type State int32

const (
	StateOpening State = iota
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// DefaultBufferSize is the outbound event queue length per session.
const DefaultBufferSize = 100

// Session is one client's push channel: the open event stream plus the
// queue feeding it. Only the stream goroutine writes to the stream; other
// goroutines enqueue with Send.
type Session struct {
	id       string
	endpoint string

	w  http.ResponseWriter
	rc *http.ResponseController

	outbound  chan []byte
	state     atomic.Int32
	done      chan struct{}
	closeOnce sync.Once

	processor middleware.RequestProcessor
	logger    *zap.Logger
}

func newSession(id string, w http.ResponseWriter, processor middleware.RequestProcessor, logger *zap.Logger, buffer int) *Session {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &Session{
		id:        id,
		endpoint:  "/messages?sessionId=" + id,
		w:         w,
		rc:        http.NewResponseController(w),
		outbound:  make(chan []byte, buffer),
		done:      make(chan struct{}),
		processor: processor,
		logger:    logging.Session(logger, id),
	}
}

// ID returns the server-generated session id.
func (s *Session) ID() string { return s.id }

// Endpoint is the message URL announced to the client.
func (s *Session) Endpoint() string { return s.endpoint }

func (s *Session) State() State { return State(s.state.Load()) }

// Connected reports whether messages can be serviced.
func (s *Session) Connected() bool { return s.State() == StateConnected }

func (s *Session) setState(st State) { s.state.Store(int32(st)) }

// close marks the session closed and stops its writer. Safe to call more
// than once.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.setState(StateClosed)
		close(s.done)
	})
}

// Send queues msg as a "message" event. It never blocks: when the queue is
// full the event is dropped and false is returned.
func (s *Session) Send(msg []byte) bool {
	if !s.Connected() {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.outbound <- msg:
		return true
	default:
		observability.EventsDropped.Inc()
		s.logger.Warn("session message buffer full, event dropped", zap.Int("bytes", len(msg)))
		return false
	}
}

// writeEvent writes one event-stream frame and flushes it. Multi-line
// data is split into several data fields.
func (s *Session) writeEvent(event string, data []byte) error {
	var buf bytes.Buffer
	buf.WriteString("event: ")
	buf.WriteString(event)
	buf.WriteByte('\n')
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		buf.WriteString("data: ")
		buf.Write(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "write event")
	}
	if err := s.rc.Flush(); err != nil {
		return errors.Wrap(err, "flush event")
	}
	return nil
}

// run delivers queued messages in order until ctx ends, the session is
// closed, or a write fails.
func (s *Session) run(ctx context.Context) error {
	for {
		select {
		case msg := <-s.outbound:
			if err := s.writeEvent("message", msg); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		}
	}
}

// HandleMessage runs one request through the processor and writes exactly
// one reply on w. The reply is mirrored on the event stream. Requests that
// need no reply get 202 with an empty body.
func (s *Session) HandleMessage(w http.ResponseWriter, r *http.Request, req *jsonrpc.Request) {
	rw := middleware.Wrap(w)
	w = rw
	defer s.recoverMessage(rw, req)

	ctx := middleware.WithSessionID(r.Context(), s.id)

	if ce := s.logger.Check(zap.DebugLevel, "message received"); ce != nil {
		ce.Write(zap.String("method", req.Method), zap.Any("id", req.ID), zap.Any("params", req.Params))
	}

	result, rpcErr := s.processor.ProcessRequest(ctx, req)

	if rpcErr == nil && result == nil {
		if req.IsNotification() {
			observability.Messages.WithLabelValues("accepted").Inc()
			w.WriteHeader(http.StatusAccepted)
			return
		}
		result = struct{}{}
	}

	resp := &jsonrpc.Response{JSONRPC: jsonrpc.Version, ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
		observability.Messages.WithLabelValues("rpc_error").Inc()
	} else {
		resp.Result = result
		observability.Messages.WithLabelValues("ok").Inc()
	}
	body := jsonrpc.EncodeResponse(resp)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write reply failed", zap.Error(err))
	}

	s.Send(body)
}

// recoverMessage turns a processor panic into an internal error that keeps
// the request id, on the POST reply when nothing was written yet and on the
// stream.
func (s *Session) recoverMessage(rw *middleware.ResponseWriter, req *jsonrpc.Request) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}
	s.logger.Error("panic while processing message",
		zap.String("method", req.Method),
		zap.Any("id", req.ID),
		zap.Any("panic", rec),
		zap.Stack("stack"),
	)
	observability.LogError("message_panic", fmt.Errorf("%v", rec))
	observability.Messages.WithLabelValues("panic").Inc()

	body := jsonrpc.EncodeError(req.ID, jsonrpc.NewError(jsonrpc.InternalError, "internal error"))
	if !rw.Written() {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusInternalServerError)
		rw.Write(body)
	}
	s.Send(body)
}
