package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// server drives one Run call: bind, start hooks, serve, drain, stop hooks.
type server struct {
	http *http.Server
	cfg  *runConfig
	log  *slog.Logger
}

func newServer(addr string, h http.Handler, cfg *runConfig) *server {
	if addr == "" {
		addr = ":8080"
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &server{
		http: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
		cfg: cfg,
		log: log,
	}
}

// run blocks until the base context is cancelled, SIGINT/SIGTERM arrives or
// the listener fails.
func (s *server) run() error {
	base := s.cfg.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}

	// Hooks see a bound port but no traffic yet.
	if err := s.startup(ctx); err != nil {
		return errors.Join(err, ln.Close())
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		err := s.http.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	return s.shutdown()
}

func (s *server) startup(ctx context.Context) error {
	for _, hook := range s.cfg.startupHooks {
		if err := hook(ctx); err != nil {
			s.log.Error("startup hook failed", slog.Any("error", err))
			return err
		}
	}
	return nil
}

// shutdown drains in-flight requests, then runs every shutdown hook even if
// an earlier step failed. All errors are joined.
func (s *server) shutdown() error {
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()

	errs := []error{s.http.Shutdown(ctx)}
	for _, hook := range s.cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			s.log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.log.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	s.log.Info("shutdown completed")
	return nil
}
