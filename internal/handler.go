package internal

// HandlerFunc is the signature for request handlers below the dispatcher:
// middleware chains and the dispatch entry point itself.
// Returning a non-nil error hands the error to the error router.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next kiln.HandlerFunc) kiln.HandlerFunc {
//	    return func(c kiln.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Error(http.StatusForbidden, "missing credentials")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
// Setting one replaces the built-in error router entirely.
type ErrorHandler func(Context, error) error
