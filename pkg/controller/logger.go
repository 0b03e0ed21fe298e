package controller

import (
	"context"
	"forum/pkg/logger"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusRecorder wraps http.ResponseWriter to capture the final HTTP status
// code and the number of body bytes written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter

	status int
	bytes  int
}

// WriteHeader records the status code and forwards the call to the underlying writer.
func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n

	return n, err //nolint: wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *statusRecorder) Unwrap() http.ResponseWriter { return rec.ResponseWriter }

// GetClientIP returns the client address, preferring the first hop of
// X-Forwarded-For, then X-Real-IP, then the connection's remote host.
func GetClientIP(r *http.Request) string {
	if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// CtxKey is a string-based type used for storing values in request contexts.
// It avoids collisions with other packages' context keys.
type CtxKey string

const (
	// RequestIDKey is the context key under which the current request ID is stored.
	RequestIDKey CtxKey = "RequestID"

	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-Id"
)

// quietPaths are served without an access log line.
var quietPaths = map[string]bool{"/metrics": true} //nolint: gochecknoglobals

// WithLogger returns a middleware that injects a request-scoped logger and
// request ID into the context, echoes the ID in the response headers, then
// logs a structured access log after the handler finishes. Scrapes of the
// metrics endpoint are not logged.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// set request ID
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		// set logger
		ctx = logger.WithFields(ctx, zap.String(string(RequestIDKey), requestID))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		if quietPaths[r.URL.Path] {
			return
		}

		logger.Info(ctx, "Access log",
			zap.Int("status_code", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Float64("latency", time.Since(start).Seconds()),
			zap.String("client_ip", GetClientIP(r)),
			zap.String("user_agent", r.UserAgent()),
			zap.String("url", r.URL.String()),
			zap.String("referer", r.Referer()),
			zap.String("method", r.Method),
		)
	})
}
