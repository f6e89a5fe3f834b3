package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	arada "github.com/maf-y/ArardaHospital-Frontend"
	"github.com/maf-y/ArardaHospital-Frontend/config"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/casbinacl"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/clinicalapi"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/cloudmedia"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/directory"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/hospitalapi"
	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	"github.com/maf-y/ArardaHospital-Frontend/internal/fetch"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
	"github.com/maf-y/ArardaHospital-Frontend/internal/session"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Registry   *access.Registry
	Guard      *access.Guard
	Sessions   *session.Store
	Resolver   *session.Resolver
	Auth       *service.AuthService
	Dispatcher *service.Dispatcher
	Views      *service.ViewService
	Clinical   *service.ClinicalService
	Directory  *directory.Directory
	Fetches    *fetch.Tracker
	Metrics    *statsd.Client
	// Redis backs session records when configured. Nil otherwise.
	Redis redis.UniversalClient
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	// Identity overrides the identity collaborator built from Config. Optional.
	Identity ports.IdentityClient
	Logger   *slog.Logger
}

// BuildRegistry builds the role registry with prefix checks delegated to casbin.
func BuildRegistry(logger *slog.Logger) (*access.Registry, error) {
	reg, err := access.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("role registry: %w", err)
	}
	matcher, err := casbinacl.New(reg, logger)
	if err != nil {
		return nil, fmt.Errorf("prefix matcher: %w", err)
	}
	return reg.WithMatcher(matcher), nil
}

func buildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Tags:    map[string]string{"service": "arada-portal"},
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("statsd metrics disabled", "error", err)
		return nil
	}
	return client
}

func buildMediaUploader(cfg config.MediaConfig, metrics statsd.Sink, logger *slog.Logger) ports.MediaUploader {
	if !cfg.Enabled() {
		return nil
	}
	up, err := cloudmedia.New(cloudmedia.Options{
		UploadURL:    cfg.UploadURL,
		UploadPreset: cfg.UploadPreset,
		MaxBytes:     cfg.MaxBytes,
		Metrics:      metrics,
		Logger:       logger,
	})
	if err != nil {
		logger.Warn("photo uploads disabled", "error", err)
		return nil
	}
	return up
}

// NewServices wires the portal's collaborators, session layer and services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require a config")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sink statsd.Sink
	metrics := buildMetrics(logger, cfg.Observability.Metrics)
	if metrics != nil {
		sink = metrics
	}

	reg, err := BuildRegistry(logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	authCfg := AuthConfig{
		Auth:        cfg.Auth,
		Backend:     cfg.Backend,
		RedisPrefix: cfg.Redis.KeyPrefix,
		RedisClient: deps.RedisClient,
		Metrics:     sink,
		Logger:      logger,
	}
	identity := deps.Identity
	if identity == nil {
		if identity, err = BuildIdentityClient(authCfg); err != nil {
			return ServiceContainer{}, err
		}
	}
	records, err := BuildRecordStore(authCfg)
	if err != nil {
		return ServiceContainer{}, err
	}

	api, err := hospitalapi.New(hospitalapi.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Service: "clinical",
		Metrics: sink,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("clinical api: %w", err)
	}
	clinicalPort := clinicalapi.New(api)

	views, err := service.NewViewService(service.ViewServiceOptions{
		Clinical: clinicalPort,
		Sources:  service.DefaultViewSources(),
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("view sources: %w", err)
	}

	staticFS, err := fs.Sub(arada.StaticFS, "frontend/static")
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("embedded static files: %w", err)
	}
	dir, err := directory.Load(staticFS)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("public directory: %w", err)
	}

	store := session.NewStore(cfg.Auth.SessionCacheSize, cfg.Auth.SessionCacheTTL)
	tracker := fetch.NewTracker()

	return ServiceContainer{
		Registry: reg,
		Guard:    access.NewGuard(reg, access.DefaultRoutes(reg)),
		Sessions: store,
		Resolver: session.NewResolver(session.ResolverOptions{
			Records:  records,
			Identity: identity,
			Store:    store,
			Wait:     cfg.Auth.ResolveWait,
			Metrics:  sink,
			Logger:   logger,
		}),
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Identity: identity,
			Records:  records,
			Session: service.AuthSessionConfig{
				Store:   store,
				Fetches: tracker,
				TTL:     cfg.Auth.SessionTTL,
				Logger:  logger,
				Now:     time.Now,
			},
		}),
		Dispatcher: service.NewDispatcher(service.DispatcherOptions{Registry: reg}),
		Views:      views,
		Clinical: service.NewClinicalService(service.ClinicalServiceOptions{
			Clinical: clinicalPort,
			Media:    buildMediaUploader(cfg.Media, sink, logger),
			Logger:   logger,
		}),
		Directory: dir,
		Fetches:   tracker,
		Metrics:   metrics,
		Redis:     deps.RedisClient,
	}, nil
}

// Close releases what NewServices started.
func (c ServiceContainer) Close() {
	if c.Fetches != nil {
		c.Fetches.Close()
	}
	if c.Metrics != nil {
		_ = c.Metrics.Close()
	}
}
