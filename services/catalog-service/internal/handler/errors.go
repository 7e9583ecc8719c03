package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
	"github.com/vasapolrittideah/course-catalog-api/shared/validator"
)

const (
	msgServerError     = "Server error"
	msgInvalidBody     = "Invalid request body"
	msgUnauthenticated = "No token, authorization denied"
)

// writeValidationError answers 400 with msg and, for field failures, the
// per-field messages.
func writeValidationError(w http.ResponseWriter, err error, msg string) {
	resp := httpx.Message{Message: msg}

	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}

	httpx.WriteJSON(w, http.StatusBadRequest, resp)
}

// writeServerError logs err and answers with a generic 500.
func writeServerError(w http.ResponseWriter, logger *zerolog.Logger, err error, msg string) {
	logger.Error().Err(err).Msg(msg)
	httpx.WriteMessage(w, http.StatusInternalServerError, msgServerError)
}
