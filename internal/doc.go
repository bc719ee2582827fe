// Package internal provides the core types and implementation for kiln.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/kiln"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Owns the controller registry, dispatcher, error router and HTTP server lifecycle
//   - Controller: Declares its actions on an ActionSet
//   - ActionSet: A controller's action table (public, protected, private, verb-qualified)
//   - Param / Args: Declared action parameters and the values bound to them
//   - Request: The parsed form of an inbound call (target, method, argument bag, body)
//   - Dispatcher: Resolves a Request to an action and invokes it
//   - RouteError: Routing and HTTP errors with a status code and the state reached
//   - Context: Request/response access and helpers, also a context.Context
//
// # Request Parsing
//
// Each request path is split into segments. Segments that also occur in the
// configured base path are removed, every segment is stripped of characters
// outside [A-Za-z0-9~%.:_-] and then percent-decoded. Query tokens of the form
// key=value become named arguments; bare tokens continue the positional list
// after the path segments:
//
//	/interests/show/5?format=json&full  ->  target "interests", method "show",
//	                                        positional ["5", "full"], named {format: json}
//
// An empty path resolves to the default target ("home").
//
// # Dispatch
//
// The dispatcher walks a fixed sequence of states:
//
//	start -> target_resolved -> class_loaded -> method_resolved -> invoked
//
// The target becomes a controller file under the controller root. A file that
// escapes the root is rejected with 403 before the registry is consulted, so
// a traversal attempt never shows up as 404. The controller's class must be
// the capitalized target plus the class suffix. Actions resolve in the order
// {method}_{VERB}, {method}, then index with the method token prepended to the
// positional arguments. Protected and private actions answer 403.
//
// # Argument Binding
//
// Each declared parameter takes, in order of preference: the named argument
// with its name, the positional argument at its index, its default. Extra
// positional arguments are dropped:
//
//	a.Handle("mockArgs", h, kiln.Optional("arg1", nil), kiln.Optional("arg2", "arg2"))
//
//	/mock/mockArgs/1/3/2                  -> ["1", "3"]
//	/mock/mockArgs?arg1=weeble&55&arg2=wobble -> ["weeble", "wobble"]
//
// # Error Routing
//
// 403 and 404 can be handed to override targets (WithForbiddenTarget,
// WithNotFoundTarget), which are dispatched with the original verb and can read
// the original error with RouteErrorFrom. Otherwise a short default response is
// written, as JSON when the client asks for it. Internal messages are only
// included with WithDebug(true).
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context, including model.Table operations:
//
//	func (ic *InterestsController) show(c kiln.Context, args kiln.Args) error {
//	    row, err := ic.interests.SelectOne(c, model.Where(model.Record{"id": args.String(0)}))
//	    if errors.Is(err, model.ErrNoRows) {
//	        return c.Error(http.StatusNotFound, "interest not found")
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, row)
//	}
//
// Controllers receive dependencies via constructor injection, not context helpers.
package internal
