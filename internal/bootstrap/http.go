package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maf-y/ArardaHospital-Frontend/config"
	httpx "github.com/maf-y/ArardaHospital-Frontend/internal/http"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	idleTimeout            = 120 * time.Second
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHandler builds the portal router from the service container.
func BuildHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	svc := cfg.Services

	level := 0
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		level = appCfg.HTTP.CompressionLevel
	}

	var metrics statsd.Sink
	if svc.Metrics != nil {
		metrics = svc.Metrics
	}

	var directory httpx.DirectoryService
	if svc.Directory != nil {
		directory = svc.Directory
	}

	return httpx.NewRouter(httpx.RouterServices{
		Resolver:  svc.Resolver,
		Guard:     svc.Guard,
		Auth:      svc.Auth,
		Shells:    svc.Dispatcher,
		Views:     svc.Views,
		Clinical:  svc.Clinical,
		Directory: directory,
		Fetches:   svc.Fetches,
		Metrics:   metrics,
		Cookie: httpx.SessionCookieConfig{
			Domain: appCfg.HTTP.CookieDomain,
			Secure: appCfg.HTTP.SecureCookies(),
		},
		PlaceholderRefresh: appCfg.Auth.PlaceholderRefresh,
		HealthChecks:       healthChecks(svc),
		CompressionLevel:   level,
		IsDev:              appCfg.IsDev,
		Logger:             logger,
	})
}

// healthChecks probes the dependencies a request cannot be served without.
func healthChecks(svc ServiceContainer) map[string]httpx.HealthCheck {
	checks := map[string]httpx.HealthCheck{}
	if svc.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return svc.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

// StartHTTPServer creates and starts the HTTP server. Listen failures are sent on errCh.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) (*http.Server, error) {
	handler, err := BuildHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return startServer(logger, handler, cfg.Config.HTTP, errCh), nil
}

func startServer(logger *slog.Logger, handler http.Handler, cfg config.HTTPConfig, errCh chan<- error) *http.Server {
	cfg.Sanitize()
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.WriteTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context  context.Context
	Server   *http.Server
	Services ServiceContainer
	// Timeout bounds the wait for in-flight requests. Defaults to 10s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer stops accepting requests, cancels in-flight backend loads and waits
// for handlers to finish.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("shutting down HTTP server")

	// Outstanding view loads are abandoned so handlers return promptly.
	if cfg.Services.Fetches != nil {
		cfg.Services.Fetches.Close()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()
	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}

// RunWithShutdown serves until SIGINT, SIGTERM or a server failure, then shuts down.
func RunWithShutdown(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errCh := make(chan error, 1)
	server, err := StartHTTPServer(cfg, errCh)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	case <-ctx.Done():
	}

	stopErr := ShutdownHTTPServer(ShutdownConfig{
		Context:  context.WithoutCancel(ctx),
		Server:   server,
		Services: cfg.Services,
		Timeout:  cfg.Config.HTTP.ShutdownTimeout,
		Logger:   logger,
	})
	cfg.Services.Close()
	return errors.Join(runErr, stopErr)
}
