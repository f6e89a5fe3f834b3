package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

var _ ports.RecordStore = (*RecordStore)(nil)

func TestRecordStore_SaveGetDelete(t *testing.T) {
	s := NewRecordStore(16, time.Hour)
	ctx := context.Background()

	rec := domainauth.Record{
		ID:         "sid-1",
		Role:       domainauth.RolePatient,
		Credential: domainauth.Credential{Token: "t"},
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	require.NoError(t, s.Delete(ctx, "sid-1"))
	_, err = s.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordStore_Rejects(t *testing.T) {
	s := NewRecordStore(16, time.Hour)
	ctx := context.Background()

	assert.Error(t, s.Save(ctx, domainauth.Record{}))
	assert.Error(t, s.Save(ctx, domainauth.Record{ID: "x", ExpiresAt: time.Now().Add(-time.Second)}))
	assert.Equal(t, 0, s.Len())
}

func TestRecordStore_ExpiredRecordIsMissing(t *testing.T) {
	s := NewRecordStore(16, time.Hour)
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, domainauth.Record{ID: "sid", ExpiresAt: now.Add(time.Minute)}))
	s.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err := s.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestRecordStore_ZeroExpiryNeverExpires(t *testing.T) {
	s := NewRecordStore(16, time.Hour)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, domainauth.Record{ID: "sid"}))
	_, err := s.Get(ctx, "sid")
	assert.NoError(t, err)
}
