package usecase

import (
	"testing"
	"time"

	"github.com/matthewhartstonge/argon2"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
	"github.com/vasapolrittideah/course-catalog-api/shared/security"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func testHasher() security.PasswordHasher {
	cfg := argon2.DefaultConfig()
	cfg.TimeCost = 1
	cfg.MemoryCost = 8 * 1024
	cfg.Parallelism = 1
	return security.NewPasswordHasher(cfg)
}

func testTokens(t *testing.T) auth.TokenService {
	t.Helper()
	return auth.NewTokenService(auth.NewJWTAuthenticator("", "catalog-service"), "test-secret", 7*24*time.Hour)
}
