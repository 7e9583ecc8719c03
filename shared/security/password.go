package security

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// PasswordHasher hashes and verifies passwords with a salted, tunable one-way function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

type argon2Hasher struct {
	config argon2.Config
}

// NewPasswordHasher returns an argon2id hasher using the given parameters.
func NewPasswordHasher(config argon2.Config) PasswordHasher {
	return &argon2Hasher{config: config}
}

// DefaultPasswordHasher returns an argon2id hasher with the library defaults
// (3 passes over 64 MiB), which is well above bcrypt cost 10.
func DefaultPasswordHasher() PasswordHasher {
	return NewPasswordHasher(argon2.DefaultConfig())
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// Verify compares in constant time. A malformed hash is reported as an error.
func (h *argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// HashPassword hashes the password with the default parameters.
func HashPassword(password string) (string, error) {
	return DefaultPasswordHasher().Hash(password)
}

// VerifyPassword checks the password against an encoded argon2 hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return DefaultPasswordHasher().Verify(password, encodedHash)
}
