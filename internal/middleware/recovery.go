package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"gitmcp/server/internal/jsonrpc"
	"gitmcp/server/internal/observability"
)

// Recovery is HTTP middleware that recovers from panics.
// It logs the stack trace and, if nothing has been sent yet, returns a 500
// with a JSON-RPC internal error body. Once headers are out the panic is
// only logged.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := Wrap(w)
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.Error("panic recovered",
					zap.Any("panic", err),
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.ByteString("stack", debug.Stack()),
				)
				observability.LogError("panic_recovered", fmt.Errorf("%v", err))

				if rw.Written() {
					return
				}
				rw.Header().Set("Content-Type", "application/json")
				rw.WriteHeader(http.StatusInternalServerError)
				rw.Write(jsonrpc.EncodeError(nil, jsonrpc.NewError(jsonrpc.InternalError, "internal error")))
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
