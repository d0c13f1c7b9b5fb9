// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithRecover: Converts handler panics into a JSON 500 response.
//   - WithMetrics: Records Prometheus request counters and latency histograms by route pattern.
//   - WithTimeout: Bounds request handling and answers a JSON 500 on expiry.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
//   - CORSHeaders / SetCORS: The CORS headers, for bindings that do not run behind WithCORS.
package controller
