package kiln

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/kiln/internal"
	"github.com/dmitrymomot/kiln/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It owns the controller registry and dispatches every unmatched path to it.
	App = internal.App

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// HandlerFunc is the signature for middleware-wrapped handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from actions.
	// Setting one bypasses the error router.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CheckFunc is a readiness check.
	CheckFunc = internal.CheckFunc

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with before-write hooks.
	ResponseWriter = internal.ResponseWriter

	// Controller declares the actions a routing target exposes.
	Controller = internal.Controller

	// ActionSet collects a controller's actions.
	ActionSet = internal.ActionSet

	// ActionFunc is the signature of a controller action.
	ActionFunc = internal.ActionFunc

	// Param describes one action parameter.
	Param = internal.Param

	// Args are the bound parameters passed to an action.
	Args = internal.Args

	// ArgBag holds the positional and named arguments of a request.
	ArgBag = internal.ArgBag

	// Request is the parsed form of an inbound call.
	Request = internal.Request

	// Headers holds request headers keyed by CGI-style names.
	Headers = internal.Headers

	// Verb is an HTTP method the dispatcher understands.
	Verb = internal.Verb

	// RouteError is an error carrying an HTTP status.
	RouteError = internal.RouteError

	// RouteErrorOption configures a RouteError.
	RouteErrorOption = internal.RouteErrorOption

	// RouteTarget is the outcome of resolving a Request.
	RouteTarget = internal.RouteTarget

	// State is a dispatcher resolution state.
	State = internal.State

	// RoutingConfig configures parsing, dispatch and error routing.
	RoutingConfig = internal.RoutingConfig

	// Extractor tries several sources for a request value.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from a request.
	ExtractorSource = internal.ExtractorSource
)

// Action visibility.
const (
	Public    = internal.Public
	Protected = internal.Protected
	Private   = internal.Private
)

// Dispatcher states.
const (
	StateStart          = internal.StateStart
	StateTargetResolved = internal.StateTargetResolved
	StateClassLoaded    = internal.StateClassLoaded
	StateMethodResolved = internal.StateMethodResolved
	StateInvoked        = internal.StateInvoked
	StateForbidden      = internal.StateForbidden
	StateNotFound       = internal.StateNotFound
)

// IndexAction is the action used when a request names none.
const IndexAction = internal.IndexAction

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := kiln.New(
//	    kiln.WithMiddleware(middlewares.RequestID()),
//	    kiln.WithController("home", controllers.NewHome(interests)),
//	)
//
//	err := app.Run(":8080", kiln.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Required declares a parameter with no default.
func Required(name string) Param {
	return internal.Required(name)
}

// Optional declares a parameter with a default value.
func Optional(name string, def any) Param {
	return internal.Optional(name, def)
}

// App options

// WithRouting replaces the routing configuration.
func WithRouting(cfg RoutingConfig) Option {
	return internal.WithRouting(cfg)
}

// WithBasePath sets the path prefix whose segments are dropped before routing.
func WithBasePath(basePath string) Option {
	return internal.WithBasePath(basePath)
}

// WithDefaultTarget sets the controller that handles an empty path.
func WithDefaultTarget(target string) Option {
	return internal.WithDefaultTarget(target)
}

// WithControllerRoot sets the directory and extension controller files resolve under.
func WithControllerRoot(root, ext string) Option {
	return internal.WithControllerRoot(root, ext)
}

// WithClassSuffix sets the suffix appended to a target's class name.
func WithClassSuffix(suffix string) Option {
	return internal.WithClassSuffix(suffix)
}

// WithNotFoundTarget routes 404 errors to target ("target" or "target/action").
func WithNotFoundTarget(target string) Option {
	return internal.WithNotFoundTarget(target)
}

// WithForbiddenTarget routes 403 errors to target ("target" or "target/action").
func WithForbiddenTarget(target string) Option {
	return internal.WithForbiddenTarget(target)
}

// WithDebug includes internal error messages in default error responses.
func WithDebug(debug bool) Option {
	return internal.WithDebug(debug)
}

// WithController registers a controller under a routing target.
func WithController(name string, c Controller) Option {
	return internal.WithController(name, c)
}

// WithControllerClass registers a controller with an explicit class name.
func WithControllerClass(name, class string, c Controller) Option {
	return internal.WithControllerClass(name, class, c)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	kiln.New(
//	    kiln.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for action errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	kiln.WithHealthChecks(
//	    kiln.WithReadinessCheck("db", db.Healthcheck(database)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	kiln.New(
//	    kiln.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound
// but before serving requests. A failing hook stops the server.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	kiln.ShutdownHook(db.Shutdown(database))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewRouteError creates a RouteError with the given status code.
func NewRouteError(code int, message string, opts ...RouteErrorOption) *RouteError {
	return internal.NewRouteError(code, message, opts...)
}

// WithError attaches an underlying cause to a RouteError.
func WithError(err error) RouteErrorOption {
	return internal.WithError(err)
}

func ErrBadRequest(message string, opts ...RouteErrorOption) *RouteError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrForbidden(message string, opts ...RouteErrorOption) *RouteError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...RouteErrorOption) *RouteError {
	return internal.ErrNotFound(message, opts...)
}

func ErrRequestTooLarge(message string, opts ...RouteErrorOption) *RouteError {
	return internal.ErrRequestTooLarge(message, opts...)
}

func ErrInternal(message string, opts ...RouteErrorOption) *RouteError {
	return internal.ErrInternal(message, opts...)
}

// AsRouteError returns the RouteError in err's chain, or nil.
func AsRouteError(err error) *RouteError {
	return internal.AsRouteError(err)
}

// RouteErrorFrom returns the error being handled by a 403/404 override target.
func RouteErrorFrom(c Context) *RouteError {
	return internal.RouteErrorFrom(c)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := kiln.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Arg returns bound argument i converted to T.
func Arg[T ~string | ~int | ~int64 | ~float64 | ~bool](args Args, i int) T {
	return internal.Arg[T](args, i)
}

// ArgDefault returns bound argument i converted to T, or defaultValue.
func ArgDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](args Args, i int, defaultValue T) T {
	return internal.ArgDefault(args, i, defaultValue)
}

// Query retrieves a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a default value.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// BodyValue returns a decoded body field converted to T.
func BodyValue[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) (T, bool) {
	return internal.BodyValue[T](c, name)
}

// Extractors

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }
func FromQuery(name string) ExtractorSource  { return internal.FromQuery(name) }
func FromForm(name string) ExtractorSource   { return internal.FromForm(name) }
func FromArg(name string) ExtractorSource    { return internal.FromArg(name) }
func FromBody(name string) ExtractorSource   { return internal.FromBody(name) }
