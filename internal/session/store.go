// Package session resolves and holds each client's session.
//
// A client is identified by the opaque session cookie value. The Store is the only
// place session values live; it is read with Get, written with Set, and observed with Subscribe.
package session

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

// Change is published to subscribers after every Set.
type Change struct {
	ClientID string
	Previous domainauth.Session
	Current  domainauth.Session
}

// Store keeps resolved sessions in a bounded, expiring cache.
// It is safe for concurrent use.
type Store struct {
	cache *expirable.LRU[string, domainauth.Session]

	mu     sync.RWMutex
	subs   map[uint64]func(Change)
	nextID uint64
}

// NewStore creates a store holding at most size sessions for ttl each.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 1024
	}
	return &Store{
		cache: expirable.NewLRU[string, domainauth.Session](size, nil, ttl),
		subs:  make(map[uint64]func(Change)),
	}
}

// Get returns the resolved session for clientID, if one is cached.
func (s *Store) Get(clientID string) (domainauth.Session, bool) {
	if clientID == "" {
		return domainauth.Anonymous(), true
	}
	return s.cache.Get(clientID)
}

// Set records sess for clientID and notifies subscribers.
// Setting an unresolved session drops the cached value.
func (s *Store) Set(clientID string, sess domainauth.Session) {
	if clientID == "" {
		return
	}
	prev, ok := s.cache.Peek(clientID)
	if !ok {
		prev = domainauth.Unresolved()
	}
	if sess.IsResolved() {
		s.cache.Add(clientID, sess)
	} else {
		s.cache.Remove(clientID)
	}
	s.publish(Change{ClientID: clientID, Previous: prev, Current: sess})
}

// Subscribe registers fn to be called after every Set. The returned function unsubscribes.
// Callbacks run synchronously on the caller's goroutine and must not call Set.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Len returns the number of cached sessions.
func (s *Store) Len() int { return s.cache.Len() }

func (s *Store) publish(c Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}
