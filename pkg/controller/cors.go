package controller

import (
	"net/http"
	"strings"
)

var (
	corsMethods = strings.Join([]string{ //nolint: gochecknoglobals
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders = strings.Join([]string{ //nolint: gochecknoglobals
		"Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
		"Accept", "Origin", "Cache-Control", RequestIDHeader,
	}, ", ")
)

// WithCORS returns a middleware that sets permissive CORS headers on every
// response and short-circuits OPTIONS preflight requests with 204 No Content.
// The request ID header is exposed so browser clients can report it.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", corsHeaders)
		h.Set("Access-Control-Allow-Methods", corsMethods)
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
