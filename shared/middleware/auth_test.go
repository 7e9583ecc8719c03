package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	tokens := auth.NewTokenService(auth.NewJWTAuthenticator("", ""), "secret", time.Hour, auth.WithClock(clock.Now))
	identity := auth.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"}

	valid, err := tokens.Issue(identity)
	require.NoError(t, err)

	other := auth.NewTokenService(auth.NewJWTAuthenticator("", ""), "other-secret", time.Hour)
	forged, err := other.Issue(identity)
	require.NoError(t, err)

	expiredClock := &fakeClock{now: time.Now().Add(-2 * time.Hour)}
	expiredTokens := auth.NewTokenService(auth.NewJWTAuthenticator("", ""), "secret", time.Hour, auth.WithClock(expiredClock.Now))
	expired, err := expiredTokens.Issue(identity)
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: "No token, authorization denied"},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized, wantMessage: "Token is not valid"},
		{name: "scheme only", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: "Token is not valid"},
		{name: "forged signature", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized, wantMessage: "Token is not valid"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantMessage: "Token has expired"},
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				got, ok := IdentityFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, identity, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Authenticate(tokens)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			if tt.wantMessage != "" {
				assert.JSONEq(t, `{"message":"`+tt.wantMessage+`"}`, rec.Body.String())
			}
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
