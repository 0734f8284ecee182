package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RequestLog assigns a request id (propagating X-Request-ID) and logs each
// request at debug level when it completes. Event-stream requests are
// logged when the stream ends.
func RequestLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = generateRequestID()
			}
			rw := Wrap(w)
			rw.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			next.ServeHTTP(rw, r.WithContext(WithRequestID(r.Context(), requestID)))

			if ce := logger.Check(zap.DebugLevel, "http request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rw.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", requestID),
				)
			}
		})
	}
}
