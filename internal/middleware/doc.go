// Package middleware provides HTTP middleware for the sign-up API.
//
// # Available Middleware
//
//   - RequestID: propagates or generates X-Request-ID
//   - Logger: one zap line per request
//   - Recovery: turns panics into a 500 problem response
//   - CORS: origin allow-list, "*" echoes any origin
//   - RateLimit: continuously refilling token bucket per client host, meant
//     for individual routes rather than the whole chain
//   - Compress: gzip when the client accepts it
//   - Metrics: Prometheus request counter and latency by route pattern
//
// Compose them with Chain; the first middleware listed runs outermost:
//
//	h := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery(logger),
//	    middleware.Metrics(m),
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): unique request identifier
package middleware
