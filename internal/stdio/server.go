// Package stdio serves the MCP handler over a pipe: one JSON-RPC request
// per input line, one response per output line.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync/atomic"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
	"gitmcp/server/internal/middleware"
)

// MaxLineBytes bounds a single request line.
const MaxLineBytes = 10 << 20

type Server struct {
	processor middleware.RequestProcessor
	in        io.Reader
	out       io.Writer
	logger    *zap.Logger
	nextID    atomic.Int64
}

func New(processor middleware.RequestProcessor, in io.Reader, out io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{processor: processor, in: in, out: out, logger: logger}
}

// Serve handles requests until the input ends or ctx is cancelled. A
// request already being processed when ctx ends is abandoned.
//
// A blocking read cannot be interrupted, so after cancellation the reader
// goroutine stays parked on the input until it yields a line or closes.
// Nothing is written for input read after Serve returns. Callers exit the
// process or close the input to release it.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.serve(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (s *Server) serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), MaxLineBytes)

	s.logger.Info("stdio transport ready")
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := s.handleLine(ctx, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read input")
	}
	s.logger.Info("stdio input closed")
	return nil
}

func (s *Server) handleLine(ctx context.Context, line []byte) error {
	req, err := jsonrpc.DecodeRequest(line)
	if err != nil {
		s.logger.Debug("invalid request line", zap.Error(err))
		code, msg := jsonrpc.ParseError, "parse error"
		if json.Valid(line) {
			code, msg = jsonrpc.InvalidRequest, "invalid request"
		}
		return s.write(jsonrpc.EncodeError(nil, jsonrpc.NewError(code, msg)))
	}
	req.Normalize(s.nextMessageID)

	result, rpcErr := s.process(ctx, req)
	if rpcErr == nil && result == nil {
		if req.IsNotification() {
			return nil
		}
		result = struct{}{}
	}

	resp := &jsonrpc.Response{JSONRPC: jsonrpc.Version, ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return s.write(jsonrpc.EncodeResponse(resp))
}

// process converts a processor panic into an internal error so one bad
// request does not end the pipe.
func (s *Server) process(ctx context.Context, req *jsonrpc.Request) (result interface{}, rpcErr *jsonrpc.Error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("panic while processing request",
				zap.String("method", req.Method),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			result, rpcErr = nil, jsonrpc.NewError(jsonrpc.InternalError, "internal error")
		}
	}()
	return s.processor.ProcessRequest(ctx, req)
}

func (s *Server) write(body []byte) error {
	if _, err := s.out.Write(append(body, '\n')); err != nil {
		return errors.Wrap(err, "write response")
	}
	return nil
}

func (s *Server) nextMessageID() int64 {
	return s.nextID.Add(1)
}
