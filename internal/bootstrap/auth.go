package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/maf-y/ArardaHospital-Frontend/config"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/devauth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/hospitalapi"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/identityapi"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/memstore"
	redisadapter "github.com/maf-y/ArardaHospital-Frontend/internal/adapters/redis"
	"github.com/maf-y/ArardaHospital-Frontend/internal/observability/statsd"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

// AuthConfig contains configuration for the identity side of the portal.
type AuthConfig struct {
	Auth        config.AuthConfig
	Backend     config.BackendConfig
	RedisPrefix string
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// BuildIdentityClient returns the identity collaborator for the configured auth mode.
//
//nolint:ireturn // the mode picks the implementation at runtime.
func BuildIdentityClient(cfg AuthConfig) (ports.IdentityClient, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if cfg.Logger != nil {
			cfg.Logger.Warn("using the in-process identity directory; do not run this in production",
				"users", len(cfg.Auth.DevAuth.Users))
		}
		prov, err := devauth.NewProvider(devauth.Config{
			Users:           cfg.Auth.DevAuth.Users,
			SessionDuration: cfg.Auth.SessionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev auth provider: %w", err)
		}
		return prov, nil

	case config.AuthModeAPI:
		api, err := hospitalapi.New(hospitalapi.Options{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout,
			Service: "identity",
			Metrics: cfg.Metrics,
			Logger:  cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("identity api: %w", err)
		}
		client, err := identityapi.New(identityapi.Options{
			API:        api,
			RoleExpr:   cfg.Backend.RoleExpr,
			UserIDExpr: cfg.Backend.UserIDExpr,
			NameExpr:   cfg.Backend.NameExpr,
			EmailExpr:  cfg.Backend.EmailExpr,
			TokenExpr:  cfg.Backend.TokenExpr,
			Logger:     cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("identity client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

// BuildRecordStore keeps session records in Redis when a client is configured and in
// process memory otherwise. In-memory records do not survive a restart and are not
// shared between replicas.
//
//nolint:ireturn // Redis or memory is chosen at runtime.
func BuildRecordStore(cfg AuthConfig) (ports.RecordStore, error) {
	if cfg.RedisClient != nil {
		return redisadapter.NewSessionStore(cfg.RedisClient, redisadapter.SessionStoreOptions{
			Prefix:     cfg.RedisPrefix,
			DefaultTTL: cfg.Auth.SessionTTL,
		}), nil
	}
	if cfg.Auth.Mode == config.AuthModeAPI && cfg.Logger != nil {
		cfg.Logger.Warn("session records kept in memory; sessions end when the process restarts")
	}
	if cfg.Auth.SessionTTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}
	return memstore.NewRecordStore(cfg.Auth.SessionCacheSize*4, cfg.Auth.SessionTTL), nil
}
