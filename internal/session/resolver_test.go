package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	"github.com/maf-y/ArardaHospital-Frontend/internal/mocks"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
)

var testRecord = domainauth.Record{
	ID:         "sid-1",
	Credential: domainauth.Credential{Token: "tok-1"},
	ExpiresAt:  time.Now().Add(time.Hour),
}

func newResolver(t *testing.T, wait time.Duration) (*Resolver, *mocks.MockRecordStore, *mocks.MockIdentityClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	records := mocks.NewMockRecordStore(ctrl)
	identity := mocks.NewMockIdentityClient(ctrl)
	r := NewResolver(ResolverOptions{
		Records:  records,
		Identity: identity,
		Store:    NewStore(64, time.Minute),
		Wait:     wait,
	})
	return r, records, identity
}

func TestResolve_NoCookieIsAnonymousWithoutProbe(t *testing.T) {
	r, _, _ := newResolver(t, 0)
	// No expectations: any call on the mocks fails the test.
	sess := r.Resolve(context.Background(), "")
	assert.True(t, sess.IsAnonymous())
}

func TestResolve_ValidRoleIsAuthenticated(t *testing.T) {
	r, records, identity := newResolver(t, 0)

	records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil).Times(1)
	identity.EXPECT().
		Me(gomock.Any(), testRecord.Credential).
		Return(ports.Principal{Identity: domainauth.Identity{UserID: "u1", Name: "Dr. Hana"}, Role: "Doctor"}, nil).
		Times(1)

	sess := r.Resolve(context.Background(), "sid-1")
	require.True(t, sess.IsAuthenticated())
	assert.Equal(t, domainauth.RoleDoctor, sess.Role)
	assert.Equal(t, "Dr. Hana", sess.Identity.Name)
}

func TestResolve_FailuresDegradeToAnonymous(t *testing.T) {
	tests := []struct {
		name  string
		setup func(records *mocks.MockRecordStore, identity *mocks.MockIdentityClient)
	}{
		{
			name: "no record",
			setup: func(records *mocks.MockRecordStore, _ *mocks.MockIdentityClient) {
				records.EXPECT().Get(gomock.Any(), "sid-1").Return(domainauth.Record{}, errors.New("not found"))
			},
		},
		{
			name: "expired record",
			setup: func(records *mocks.MockRecordStore, _ *mocks.MockIdentityClient) {
				expired := testRecord
				expired.ExpiresAt = time.Now().Add(-time.Minute)
				records.EXPECT().Get(gomock.Any(), "sid-1").Return(expired, nil)
				records.EXPECT().Delete(gomock.Any(), "sid-1").Return(nil)
			},
		},
		{
			name: "probe error",
			setup: func(records *mocks.MockRecordStore, identity *mocks.MockIdentityClient) {
				records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil)
				identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(ports.Principal{}, errors.New("503"))
			},
		},
		{
			name: "no role",
			setup: func(records *mocks.MockRecordStore, identity *mocks.MockIdentityClient) {
				records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil)
				identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(ports.Principal{Identity: domainauth.Identity{UserID: "u1"}}, nil)
			},
		},
		{
			name: "unknown role",
			setup: func(records *mocks.MockRecordStore, identity *mocks.MockIdentityClient) {
				records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil)
				identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(ports.Principal{Role: "Nurse"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, records, identity := newResolver(t, 0)
			tt.setup(records, identity)

			sess := r.Resolve(context.Background(), "sid-1")
			assert.True(t, sess.IsAnonymous())
			assert.False(t, sess.IsAuthenticated())
		})
	}
}

func TestResolve_IsIdempotentAndProbesOnce(t *testing.T) {
	r, records, identity := newResolver(t, 0)

	records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil).Times(1)
	identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(ports.Principal{Role: "Triage"}, nil).Times(1)

	first := r.Resolve(context.Background(), "sid-1")
	second := r.Resolve(context.Background(), "sid-1")
	assert.Equal(t, first, second)
	assert.Equal(t, domainauth.RoleTriage, second.Role)
}

func TestResolve_SameBackendStateSameClassification(t *testing.T) {
	for _, role := range []string{"Patient", "", "LabTechnician"} {
		var classes []bool
		for i := 0; i < 2; i++ {
			r, records, identity := newResolver(t, 0)
			records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil)
			identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(ports.Principal{Role: role}, nil)
			classes = append(classes, r.Resolve(context.Background(), "sid-1").IsAuthenticated())
		}
		assert.Equal(t, classes[0], classes[1], "role %q", role)
	}
}

func TestResolve_ConcurrentCallersShareOneProbe(t *testing.T) {
	r, records, identity := newResolver(t, 0)

	release := make(chan struct{})
	var calls atomic.Int32
	records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil).Times(1)
	identity.EXPECT().Me(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domainauth.Credential) (ports.Principal, error) {
			calls.Add(1)
			<-release
			return ports.Principal{Role: "Receptionist"}, nil
		}).Times(1)

	const n = 10
	results := make([]domainauth.Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve(context.Background(), "sid-1")
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	for _, s := range results {
		assert.Equal(t, domainauth.RoleReceptionist, s.Role)
	}
}

func TestResolve_SlowProbeIsUnresolvedThenServedFromStore(t *testing.T) {
	r, records, identity := newResolver(t, 10*time.Millisecond)

	release := make(chan struct{})
	records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil).Times(1)
	identity.EXPECT().Me(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domainauth.Credential) (ports.Principal, error) {
			<-release
			return ports.Principal{Role: "Doctor"}, ctx.Err()
		}).Times(1)

	// The navigation gives up waiting; the probe keeps running.
	ctx, cancel := context.WithCancel(context.Background())
	first := r.Resolve(ctx, "sid-1")
	cancel()
	assert.False(t, first.IsResolved())

	// A second navigation while the probe is outstanding joins it.
	assert.False(t, r.Resolve(context.Background(), "sid-1").IsResolved())

	close(release)
	require.Eventually(t, func() bool {
		_, ok := r.Store().Get("sid-1")
		return ok
	}, time.Second, 5*time.Millisecond)

	got := r.Resolve(context.Background(), "sid-1")
	assert.True(t, got.IsAuthenticated())
	assert.Equal(t, domainauth.RoleDoctor, got.Role)
}

func TestResolve_CallerCancellationIsUnresolved(t *testing.T) {
	r, records, identity := newResolver(t, 0)

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	records.EXPECT().Get(gomock.Any(), "sid-1").Return(testRecord, nil).AnyTimes()
	identity.EXPECT().Me(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domainauth.Credential) (ports.Principal, error) {
			<-release
			return ports.Principal{Role: "Doctor"}, nil
		}).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, r.Resolve(ctx, "sid-1").IsResolved())
}
