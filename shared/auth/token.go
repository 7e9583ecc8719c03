package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Claims are the identity claims embedded in an access token.
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the identity part of the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Name: c.Name, Email: c.Email}
}

// TokenService issues and verifies stateless bearer tokens.
//
// Tokens are self-contained and there is no revocation list: a token stays valid
// until it expires, even if it leaks. Swapping in a revocation-aware implementation
// only requires another TokenService.
type TokenService interface {
	// Issue signs a token for the identity that expires after the configured TTL.
	Issue(identity Identity) (string, error)

	// Verify checks the signature and expiry of the token and returns its claims.
	// It fails with ErrTokenInvalid or ErrTokenExpired.
	Verify(token string) (*Claims, error)
}

// TokenServiceOption configures a jwtTokenService.
type TokenServiceOption func(*jwtTokenService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *jwtTokenService) {
		s.now = now
		s.jwtAuth.now = now
	}
}

type jwtTokenService struct {
	jwtAuth JWTAuthenticator
	secret  string
	ttl     time.Duration
	now     func() time.Time
}

// NewTokenService creates a TokenService that signs HS256 tokens with secret.
func NewTokenService(jwtAuth JWTAuthenticator, secret string, ttl time.Duration, opts ...TokenServiceOption) TokenService {
	s := &jwtTokenService{
		jwtAuth: jwtAuth,
		secret:  secret,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *jwtTokenService) Issue(identity Identity) (string, error) {
	if s.secret == "" {
		return "", errors.New("token secret is not configured")
	}

	now := s.now()
	claims := Claims{
		UserID: identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if s.jwtAuth.issuer != "" {
		claims.Issuer = s.jwtAuth.issuer
	}
	if s.jwtAuth.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.jwtAuth.audience}
	}

	return s.jwtAuth.GenerateToken(claims, s.secret)
}

func (s *jwtTokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.jwtAuth.ValidateTokenWithClaims(token, s.secret, claims); err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
