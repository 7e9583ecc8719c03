package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/repository"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
	"github.com/vasapolrittideah/course-catalog-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
}

// SignupParams defines the parameters for user registration.
type SignupParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult is returned by a successful signup or login.
type AuthResult struct {
	Token string
	User  auth.Identity
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	tokens   auth.TokenService
	logger   *zerolog.Logger
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher security.PasswordHasher,
	tokens auth.TokenService,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	name := strings.TrimSpace(params.Name)
	email := normalizeEmail(params.Email)

	// The unique indexes close the window between this check and the insert.
	if _, err := u.userRepo.GetUserByEmailOrName(ctx, email, name); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	u.logger.Info().Str("user_id", user.ID.Hex()).Msg("user signed up")

	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := u.hasher.Verify(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.issue(user)
}

func (u *authUsecase) issue(user *model.User) (*AuthResult, error) {
	identity := auth.Identity{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}

	token, err := u.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: identity}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
