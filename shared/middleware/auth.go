package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
)

type contextKey struct{}

var identityKey = contextKey{}

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	errMissingAuthHeader   = errors.New("missing authorization header")
	errInvalidHeaderFormat = errors.New("invalid authorization header format")
)

// Authenticate rejects requests without a valid bearer token with 401 and otherwise
// stores the resolved identity in the request context.
func Authenticate(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticateRequest(r, tokens)
			if err != nil {
				logger := hlog.FromRequest(r)
				logger.Debug().Err(err).Msg("rejected unauthenticated request")

				httpx.WriteMessage(w, http.StatusUnauthorized, unauthenticatedMessage(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func authenticateRequest(r *http.Request, tokens auth.TokenService) (auth.Identity, error) {
	tokenString, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return auth.Identity{}, errors.Join(ErrUnauthenticated, err)
	}

	claims, err := tokens.Verify(tokenString)
	if err != nil {
		return auth.Identity{}, errors.Join(ErrUnauthenticated, err)
	}

	return claims.Identity(), nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthHeader
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", errInvalidHeaderFormat
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errInvalidHeaderFormat
	}

	return token, nil
}

func unauthenticatedMessage(err error) string {
	switch {
	case errors.Is(err, errMissingAuthHeader):
		return "No token, authorization denied"
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token has expired"
	default:
		return "Token is not valid"
	}
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity attached by Authenticate.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
