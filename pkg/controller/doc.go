// Package controller contains the net/http middlewares and helper handlers
// wrapped around the whole API server, below the gin engine that serves /v1.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the
//     context, echoes the ID in the X-Request-Id header and logs access info.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers under
//     PprofPrefix.
package controller
