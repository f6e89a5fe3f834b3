// Package memstore provides an in-process session record store for development and
// single-instance deployments without Redis.
package memstore

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("session not found")

// RecordStore keeps records in a bounded expiring LRU. Records past their own ExpiresAt
// are treated as missing even while still cached.
type RecordStore struct {
	lru *expirable.LRU[string, domainauth.Record]
	now func() time.Time
}

// NewRecordStore creates a store holding up to size records for at most ttl each.
func NewRecordStore(size int, ttl time.Duration) *RecordStore {
	if size <= 0 {
		size = 1024
	}
	return &RecordStore{
		lru: expirable.NewLRU[string, domainauth.Record](size, nil, ttl),
		now: time.Now,
	}
}

// Save stores rec.
func (s *RecordStore) Save(_ context.Context, rec domainauth.Record) error {
	if rec.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if rec.Expired(s.now()) {
		return errors.New("session is expired")
	}
	s.lru.Add(rec.ID, rec)
	return nil
}

// Get returns the record for id or ErrNotFound.
func (s *RecordStore) Get(_ context.Context, id string) (domainauth.Record, error) {
	rec, ok := s.lru.Get(id)
	if !ok {
		return domainauth.Record{}, ErrNotFound
	}
	if rec.Expired(s.now()) {
		s.lru.Remove(id)
		return domainauth.Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the record for id.
func (s *RecordStore) Delete(_ context.Context, id string) error {
	s.lru.Remove(id)
	return nil
}

// Len returns the number of cached records.
func (s *RecordStore) Len() int { return s.lru.Len() }
