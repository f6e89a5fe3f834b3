package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

func TestStore_GetSet(t *testing.T) {
	s := NewStore(16, time.Minute)

	_, ok := s.Get("sid-1")
	assert.False(t, ok)

	doc := domainauth.Authenticated(domainauth.Identity{UserID: "d1"}, domainauth.RoleDoctor)
	s.Set("sid-1", doc)

	got, ok := s.Get("sid-1")
	require.True(t, ok)
	assert.Equal(t, doc, got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_EmptyClientIsAnonymous(t *testing.T) {
	s := NewStore(16, time.Minute)
	got, ok := s.Get("")
	require.True(t, ok)
	assert.True(t, got.IsAnonymous())

	s.Set("", domainauth.Authenticated(domainauth.Identity{}, domainauth.RoleDoctor))
	assert.Equal(t, 0, s.Len())
}

func TestStore_SetUnresolvedDrops(t *testing.T) {
	s := NewStore(16, time.Minute)
	s.Set("sid-1", domainauth.Anonymous())
	s.Set("sid-1", domainauth.Unresolved())

	_, ok := s.Get("sid-1")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore(16, 20*time.Millisecond)
	s.Set("sid-1", domainauth.Anonymous())

	require.Eventually(t, func() bool {
		_, ok := s.Get("sid-1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore(16, time.Minute)

	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	doc := domainauth.Authenticated(domainauth.Identity{UserID: "d1"}, domainauth.RoleDoctor)
	s.Set("sid-1", doc)
	s.Set("sid-1", domainauth.Anonymous())

	require.Len(t, changes, 2)
	assert.Equal(t, "sid-1", changes[0].ClientID)
	assert.False(t, changes[0].Previous.IsResolved())
	assert.Equal(t, doc, changes[0].Current)
	assert.Equal(t, doc, changes[1].Previous)
	assert.True(t, changes[1].Current.IsAnonymous())

	unsubscribe()
	unsubscribe()
	s.Set("sid-2", domainauth.Anonymous())
	assert.Len(t, changes, 2)
}
