package identityapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maf-y/ArardaHospital-Frontend/internal/adapters/hospitalapi"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
	apperrors "github.com/maf-y/ArardaHospital-Frontend/internal/errors"
	"github.com/maf-y/ArardaHospital-Frontend/internal/ports"
	"github.com/maf-y/ArardaHospital-Frontend/internal/testutil"
)

func newClient(t *testing.T, fb *testutil.FakeBackend) *Client {
	t.Helper()
	api, err := hospitalapi.New(hospitalapi.Options{BaseURL: fb.URL(), Service: "identity", Timeout: 2 * time.Second})
	require.NoError(t, err)
	c, err := New(Options{API: api})
	require.NoError(t, err)
	return c
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestNew_RejectsBadExpression(t *testing.T) {
	api, err := hospitalapi.New(hospitalapi.Options{BaseURL: "http://localhost"})
	require.NoError(t, err)

	_, err = New(Options{API: api, RoleExpr: "role ||"})
	assert.Error(t, err)

	_, err = New(Options{})
	assert.Error(t, err)
}

func TestClient_MeExtractsPrincipal(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want ports.Principal
	}{
		{
			name: "flat payload",
			body: map[string]any{"userId": "u-1", "role": "Doctor", "firstName": "Sara", "lastName": "Bekele", "email": "sara@arada.et"},
			want: ports.Principal{
				Identity: domainauth.Identity{UserID: "u-1", Name: "Sara Bekele", Email: "sara@arada.et"},
				Role:     "Doctor",
			},
		},
		{
			name: "nested user",
			body: map[string]any{"user": map[string]any{"_id": "u-2", "role": "Triage", "name": "Kebede", "email": "k@arada.et"}},
			want: ports.Principal{
				Identity: domainauth.Identity{UserID: "u-2", Name: "Kebede", Email: "k@arada.et"},
				Role:     "Triage",
			},
		},
		{
			name: "missing role",
			body: map[string]any{"id": 42.0},
			want: ports.Principal{Identity: domainauth.Identity{UserID: "42"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := testutil.NewFakeBackend(t)
			fb.JSON("GET /auth/me", http.StatusOK, tt.body)

			got, err := newClient(t, fb).Me(context.Background(), domainauth.Credential{Token: "tok"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Bearer tok", fb.Calls()[0].Authorization)
		})
	}
}

func TestClient_MeFailures(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		fb := testutil.NewFakeBackend(t)
		fb.JSON("GET /auth/me", http.StatusUnauthorized, map[string]any{"msg": "No token"})

		_, err := newClient(t, fb).Me(context.Background(), domainauth.Credential{})
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("non-object payload", func(t *testing.T) {
		fb := testutil.NewFakeBackend(t)
		fb.JSON("GET /auth/me", http.StatusOK, []string{"Doctor"})

		_, err := newClient(t, fb).Me(context.Background(), domainauth.Credential{})
		require.Error(t, err)
	})
}

func TestClient_LoginWithToken(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := signedToken(t, exp)

	fb := testutil.NewFakeBackend(t)
	fb.JSON("POST /auth/login", http.StatusOK, map[string]any{"token": token, "role": "Receptionist", "userId": "r-1"})

	res, err := newClient(t, fb).Login(context.Background(), ports.LoginInput{
		Username: "reception@arada.et",
		Password: "secret",
		Role:     domainauth.RoleReceptionist,
	})
	require.NoError(t, err)
	assert.Equal(t, token, res.Credential.Token)
	assert.Equal(t, "Receptionist", res.Role)
	assert.Equal(t, "r-1", res.Identity.UserID)
	assert.True(t, exp.Equal(res.ExpiresAt), "expiry %v", res.ExpiresAt)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(fb.Calls()[0].Body, &sent))
	assert.Equal(t, map[string]string{
		"username": "reception@arada.et",
		"email":    "reception@arada.et",
		"password": "secret",
		"role":     "Receptionist",
	}, sent)
}

func TestClient_LoginCapturesCookies(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "cookie-tok", Path: "/", HttpOnly: true})
		testutil.WriteJSON(w, http.StatusOK, map[string]any{"role": "Patient", "msg": "Login successful"})
	})

	res, err := newClient(t, fb).Login(context.Background(), ports.LoginInput{Username: "p", Password: "p", Role: domainauth.RolePatient})
	require.NoError(t, err)
	assert.Empty(t, res.Credential.Token)
	assert.Equal(t, []domainauth.Cookie{{Name: "token", Value: "cookie-tok"}}, res.Credential.Cookies)
	assert.True(t, res.ExpiresAt.IsZero())
	assert.Equal(t, "Login successful", res.Message)
}

func TestClient_LoginFailures(t *testing.T) {
	t.Run("rejected credentials keep backend message", func(t *testing.T) {
		fb := testutil.NewFakeBackend(t)
		fb.JSON("POST /auth/login", http.StatusBadRequest, map[string]any{"msg": "Invalid credentials"})

		_, err := newClient(t, fb).Login(context.Background(), ports.LoginInput{Username: "x", Password: "y", Role: domainauth.RoleDoctor})
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", apperrors.UserMessage(err))
	})

	t.Run("no session issued", func(t *testing.T) {
		fb := testutil.NewFakeBackend(t)
		fb.JSON("POST /auth/login", http.StatusOK, map[string]any{"role": "Doctor"})

		_, err := newClient(t, fb).Login(context.Background(), ports.LoginInput{Username: "x", Password: "y", Role: domainauth.RoleDoctor})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeUpstream, appErr.Code)
	})
}

func TestClient_LogoutSendsCredential(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("POST /auth/logout", http.StatusOK, map[string]any{"msg": "Logged out"})

	cred := domainauth.Credential{Token: "tok", Cookies: []domainauth.Cookie{{Name: "token", Value: "c"}}}
	require.NoError(t, newClient(t, fb).Logout(context.Background(), cred))

	call := fb.Calls()[0]
	assert.Equal(t, "Bearer tok", call.Authorization)
	require.Len(t, call.Cookies, 1)
	assert.Equal(t, "c", call.Cookies[0].Value)
}

func TestTokenExpiry(t *testing.T) {
	assert.True(t, tokenExpiry("").IsZero())
	assert.True(t, tokenExpiry("opaque-token").IsZero())
	assert.True(t, tokenExpiry("a.b.c").IsZero())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	assert.True(t, exp.Equal(tokenExpiry(signedToken(t, exp))))
}
