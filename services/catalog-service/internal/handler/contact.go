package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/payload"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/usecase"
	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
	"github.com/vasapolrittideah/course-catalog-api/shared/validator"
)

type ContactHTTPHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

func NewContactHTTPHandler(
	contactUsecase usecase.ContactUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ContactHTTPHandler {
	return &ContactHTTPHandler{
		contactUsecase: contactUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ContactHTTPHandler) SendContactMessage(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err, msgInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err, "Please fill in all fields")
		return
	}

	err := h.contactUsecase.SendContactMessage(r.Context(), usecase.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMailerNotConfigured):
			h.logger.Error().Msg("contact form used but SMTP or CONTACT_RECIPIENT is not configured")
			httpx.WriteMessage(w, http.StatusInternalServerError, "Email service not configured")
		default:
			h.logger.Error().Err(err).Msg("failed to send contact email")
			httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Message sent successfully")
}
