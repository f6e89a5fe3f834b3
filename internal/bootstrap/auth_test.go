package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maf-y/ArardaHospital-Frontend/config"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/devauth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/identityapi"
	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/memstore"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildIdentityClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		want    any
		wantErr bool
	}{
		{
			name: "mock mode",
			cfg: AuthConfig{Auth: config.AuthConfig{
				Mode:    config.AuthModeMock,
				DevAuth: config.DevAuthConfig{Users: []string{"doc:pw:Doctor"}},
			}},
			want: &devauth.Provider{},
		},
		{
			name: "mock mode with a malformed user",
			cfg: AuthConfig{Auth: config.AuthConfig{
				Mode:    config.AuthModeMock,
				DevAuth: config.DevAuthConfig{Users: []string{"doc:pw"}},
			}},
			wantErr: true,
		},
		{
			name: "api mode",
			cfg: AuthConfig{
				Auth:    config.AuthConfig{Mode: config.AuthModeAPI},
				Backend: config.BackendConfig{BaseURL: "https://hospital.example.com/api"},
			},
			want: &identityapi.Client{},
		},
		{
			name:    "api mode without a backend",
			cfg:     AuthConfig{Auth: config.AuthConfig{Mode: config.AuthModeAPI}},
			wantErr: true,
		},
		{
			name: "api mode with a broken role expression",
			cfg: AuthConfig{
				Auth:    config.AuthConfig{Mode: config.AuthModeAPI},
				Backend: config.BackendConfig{BaseURL: "https://hospital.example.com/api", RoleExpr: "role ||"},
			},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			cfg:     AuthConfig{Auth: config.AuthConfig{Mode: "oauth"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = discardLogger()
			got, err := BuildIdentityClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestBuildRecordStore_FallsBackToMemory(t *testing.T) {
	store, err := BuildRecordStore(AuthConfig{
		Auth:   config.AuthConfig{Mode: config.AuthModeMock, SessionTTL: time.Hour, SessionCacheSize: 16},
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	require.IsType(t, &memstore.RecordStore{}, store)

	ctx := context.Background()
	rec := domainauth.Record{ID: "sess-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, rec))
	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
}

func TestBuildRecordStore_RejectsZeroTTL(t *testing.T) {
	_, err := BuildRecordStore(AuthConfig{Auth: config.AuthConfig{Mode: config.AuthModeMock}})
	assert.Error(t, err)
}
