package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/maf-y/ArardaHospital-Frontend/config"
)

// envFiles are read in order before the environment is parsed. Variables already set
// in the process environment win, and missing files are skipped.
var envFiles = []string{".env.local", ".env"}

// InitLogger installs the process-wide slog logger. format is "text" for local
// development and json otherwise.
func InitLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LoadConfig reads .env files, parses the environment into AppConfig and sanitizes it.
func LoadConfig() (config.AppConfig, error) {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.AppConfig{}, fmt.Errorf("load %s: %w", name, err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects combinations Sanitize cannot repair.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	switch cfg.Auth.Mode {
	case config.AuthModeAPI:
		if cfg.Backend.BaseURL == "" {
			return errors.New("BACKEND_BASE_URL is required in api auth mode")
		}
	case config.AuthModeMock:
		if len(cfg.Auth.DevAuth.Users) == 0 {
			return errors.New("DEV_AUTH_USERS is required in mock auth mode")
		}
		if !cfg.IsDev {
			slog.Warn("mock auth mode outside development; sign-in accepts the configured dev users only")
		}
	}
	return nil
}
