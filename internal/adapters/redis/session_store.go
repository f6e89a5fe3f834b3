package redis

// Package redis provides Redis-based adapters for the portal.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// DefaultKeyPrefix namespaces session records.
const DefaultKeyPrefix = "arada:session:"

// SessionStore keeps session records in Redis. The key TTL follows the record's ExpiresAt;
// records without an expiry fall back to the store's default TTL.
type SessionStore struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// SessionStoreOptions configures SessionStore.
type SessionStoreOptions struct {
	Prefix     string
	DefaultTTL time.Duration
}

// NewSessionStore creates a Redis-backed record store.
func NewSessionStore(client redis.UniversalClient, opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{client: client, prefix: prefix, defaultTTL: ttl}
}

// Save writes rec, replacing any record with the same ID.
func (s *SessionStore) Save(ctx context.Context, rec domainauth.Record) error {
	if rec.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	ttl := s.defaultTTL
	if !rec.ExpiresAt.IsZero() {
		ttl = time.Until(rec.ExpiresAt)
		if ttl <= 0 {
			return errors.New("session is expired")
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+rec.ID, data, ttl).Err()
}

// Get returns the record for id or ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Record, error) {
	if id == "" {
		return domainauth.Record{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Record{}, ErrNotFound
		}
		return domainauth.Record{}, fmt.Errorf("redis get: %w", err)
	}

	var rec domainauth.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domainauth.Record{}, fmt.Errorf("unmarshal session: %w", err)
	}

	// Redis TTL granularity can leave a just-expired record readable.
	if rec.Expired(time.Now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Record{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the record for id. Deleting a missing record is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

// ErrNotFound is returned when a session record does not exist.
var ErrNotFound error = notFoundError{}
