package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/kiln/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithRouting replaces the routing configuration.
// Zero fields fall back to their defaults.
//
// Example:
//
//	kiln.New(
//	    kiln.WithRouting(cfg.Routing),
//	)
func WithRouting(cfg RoutingConfig) Option {
	return func(a *App) {
		a.routing = cfg
	}
}

// WithBasePath sets the path whose segments are removed from every request
// path before parsing, e.g. "/app" when the runtime is mounted under /app.
func WithBasePath(basePath string) Option {
	return func(a *App) {
		a.routing.BasePath = basePath
	}
}

// WithDefaultTarget sets the controller that handles an empty path.
// Defaults to "home".
func WithDefaultTarget(target string) Option {
	return func(a *App) {
		a.routing.DefaultTarget = target
	}
}

// WithControllerRoot sets the directory controller names resolve under and
// the extension that turns a name into a file.
// Defaults to "controllers" and ".go".
func WithControllerRoot(root, ext string) Option {
	return func(a *App) {
		a.routing.ControllerRoot = root
		if ext != "" {
			a.routing.ControllerExt = ext
		}
	}
}

// WithClassSuffix sets the suffix of controller class names.
// Defaults to "Controller".
func WithClassSuffix(suffix string) Option {
	return func(a *App) {
		a.routing.ClassSuffix = suffix
	}
}

// WithNotFoundTarget routes 404 responses to the given "target[/action]".
// The action can read the original error with RouteErrorFrom.
func WithNotFoundTarget(target string) Option {
	return func(a *App) {
		a.routing.NotFoundTarget = target
	}
}

// WithForbiddenTarget routes 403 responses to the given "target[/action]".
func WithForbiddenTarget(target string) Option {
	return func(a *App) {
		a.routing.ForbiddenTarget = target
	}
}

// WithDebug toggles internal error messages in default error responses.
// Never enable in production.
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.routing.Debug = debug
	}
}

// WithController registers a controller under name. Its class name is
// derived from the name: "interests" becomes "InterestsController".
//
// Example:
//
//	kiln.New(
//	    kiln.WithController("interests", controllers.NewInterests(table)),
//	)
func WithController(name string, c Controller) Option {
	return WithControllerClass(name, "", c)
}

// WithControllerClass registers a controller under name with an explicit
// class name. Requests only reach it if the class matches the one derived
// from the request target.
func WithControllerClass(name, class string, c Controller) Option {
	return func(a *App) {
		if name == "" || c == nil {
			return
		}
		a.registrations = append(a.registrations, registration{
			controller: c,
			name:       name,
			class:      class,
		})
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
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
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler handles errors returned by actions and middleware.
// 403 and 404 route errors still go through the error router, so
// WithNotFoundTarget and WithForbiddenTarget keep working.
//
// Example:
//
//	kiln.WithErrorHandler(func(c kiln.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	kiln.WithHealthChecks(
//	    kiln.WithReadinessCheck("db", db.Healthcheck(database.Conn)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(healthChecks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	kiln.New(
//	    kiln.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.Config{}, extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
