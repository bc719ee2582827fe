package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/kiln/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It owns the controller registry, the dispatcher and the error router,
// and mounts them behind a chi router together with middleware and health checks.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router        chi.Router
	registry      *Registry
	dispatcher    *Dispatcher
	errors        *errorRouter
	errorHandler  ErrorHandler
	healthConfig  *healthConfig
	logger        *slog.Logger
	routing       RoutingConfig
	registrations []registration
	middlewares   []Middleware
	staticRoutes  []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := kiln.New(
//	    kiln.WithMiddleware(middlewares.RequestID()),
//	    kiln.WithController("home", controllers.NewHome(interests)),
//	    kiln.WithController("interests", controllers.NewInterests(interests)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:  chi.NewRouter(),
		logger:  logger.NewNope(), // Default: noop logger (before options)
		routing: DefaultRoutingConfig(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.routing = a.routing.withDefaults()
	a.registry = newRegistry(a.routing, a.registrations)
	a.dispatcher = NewDispatcher(a.registry, a.logger)
	a.errors = newErrorRouter(a.dispatcher, a.routing, a.logger)

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Registry returns the controller registry.
func (a *App) Registry() *Registry {
	return a.registry
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Routing returns the effective routing configuration.
func (a *App) Routing() RoutingConfig {
	return a.routing
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := kiln.New(
//	    kiln.WithController("home", home),
//	)
//	err := app.Run(":8080", kiln.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return newServer(addr, a.router, cfg).run()
}

// setupRoutes configures the router with middleware, health checks and the
// catch-all dispatch route.
func (a *App) setupRoutes() {
	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	// Mount static file handlers
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	// Register health check endpoints
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, livenessHandler())
		a.router.Get(a.healthConfig.readinessPath, readinessHandler(a.healthConfig.checks, a.logger))
	}

	a.router.MethodNotAllowed(a.wrapHandler(func(c Context) error {
		return ErrMethodNotAllowed("Unsupported request method: " + c.Request().Method)
	}))
	a.router.HandleFunc("/*", a.wrapHandler(a.dispatch))
}

// dispatch parses the request and hands it to the dispatcher.
func (a *App) dispatch(c Context) error {
	req, err := ParseRequest(NewRawInput(c.Request(), a.routing.BasePath), a.routing.DefaultTarget)
	if err != nil {
		return err
	}
	c.Set(requestKey{}, req)
	return a.dispatcher.Dispatch(c, req)
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a kiln Middleware to chi middleware.
// This adapter allows middleware to be written using the Context interface
// while satisfying chi's http.Handler-based middleware signature.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Create a HandlerFunc that calls the next http.Handler
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			// Apply the middleware
			wrapped := mw(nextFunc)
			// Execute with a new context
			c := newContext(w, r, a.logger)
			if err := wrapped(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

// handleError sends 403/404 route errors to the error router so override
// targets apply. Other errors go to the custom error handler when one is set.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil && !isRoutingError(err) {
		_ = a.errorHandler(c, err)
		return
	}
	a.errors.handle(c, err)
}

func isRoutingError(err error) bool {
	re := AsRouteError(err)
	if re == nil {
		return false
	}
	return re.Code == http.StatusForbidden || re.Code == http.StatusNotFound
}
