// Package middlewares provides HTTP middleware for kiln applications.
//
// # Request ID
//
// RequestID assigns a unique ID to each request. An upstream ID from
// X-Request-ID or X-Correlation-ID is kept; otherwise a UUIDv4 is generated.
//
//	app := kiln.New(
//	    kiln.WithLogger("web", middlewares.RequestIDExtractor()),
//	    kiln.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover catches panics in actions and converts them to a 500 RouteError
// wrapping a [PanicError]. The error router renders it; a custom
// ErrorHandler can inspect it with [AsPanicError].
//
// # Access log
//
// AccessLog writes one log line per request and sets X-Response-Time
// right before the response header is sent.
//
// # Recommended Middleware Order
//
//	kiln.WithMiddleware(
//	    middlewares.RequestID(), // first: every later log line carries the ID
//	    middlewares.AccessLog(),
//	    middlewares.Recover(),   // innermost: panics become 500s the access log sees
//	)
package middlewares
