package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 7 * 24 * time.Hour

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, clock *fakeClock, secret string) TokenService {
	t.Helper()
	return NewTokenService(NewJWTAuthenticator("catalog", "catalog-service"), secret, testTTL, WithClock(clock.Now))
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestService(t, clock, "super-secret")

	identity := Identity{ID: "665f1c2e9b1e8a0012345678", Name: "Ann", Email: "ann@x.com"}
	token, err := svc.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	clock.now = issuedAt.Add(testTTL - time.Minute)
	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, identity.ID, claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issuedAt.Add(testTTL), claims.ExpiresAt.Time.UTC())
}

func TestTokenService_VerifyExpired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestService(t, clock, "super-secret")

	token, err := svc.Issue(Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	clock.now = issuedAt.Add(testTTL + time.Second)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_VerifyRejectsBadTokens(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	svc := newTestService(t, clock, "right-secret")
	other := newTestService(t, clock, "wrong-secret")

	token, err := other.Issue(Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	valid, err := svc.Issue(Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: token},
		{name: "tampered payload", token: tampered},
		{name: "none algorithm", token: unsigned},
		{name: "malformed", token: "not.a.jwt"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			require.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestTokenService_VerifyRequiresUserID(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("", "")
	token, err := jwtAuth.GenerateToken(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "secret")
	require.NoError(t, err)

	svc := NewTokenService(jwtAuth, "secret", time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_IssueWithoutSecret(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(NewJWTAuthenticator("", ""), "", time.Hour)
	_, err := svc.Issue(Identity{ID: "u1"})
	require.Error(t, err)
}

func TestJWTAuthenticator_AudienceMismatch(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService(NewJWTAuthenticator("other-audience", "catalog-service"), "secret", time.Hour)
	verifier := NewTokenService(NewJWTAuthenticator("catalog", "catalog-service"), "secret", time.Hour)

	token, err := issuer.Issue(Identity{ID: "u1"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
