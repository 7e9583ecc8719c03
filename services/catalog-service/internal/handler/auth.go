package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/payload"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/usecase"
	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
	"github.com/vasapolrittideah/course-catalog-api/shared/validator"
)

type AuthHTTPHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

func NewAuthHTTPHandler(
	authUsecase usecase.AuthUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *AuthHTTPHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err, msgInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err, "Please provide all fields")
		return
	}

	result, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			httpx.WriteMessage(w, http.StatusBadRequest, "User already exists")
		default:
			writeServerError(w, h.logger, err, "failed to sign up user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newAuthResponse(result))
}

func (h *AuthHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err, msgInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err, "Please provide email and password")
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			httpx.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		default:
			writeServerError(w, h.logger, err, "failed to log in user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAuthResponse(result))
}

func newAuthResponse(result *usecase.AuthResult) payload.AuthResponse {
	return payload.AuthResponse{
		Token: result.Token,
		User: payload.UserResponse{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Email: result.User.Email,
		},
	}
}
