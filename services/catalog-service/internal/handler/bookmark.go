package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/payload"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/usecase"
	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
	"github.com/vasapolrittideah/course-catalog-api/shared/middleware"
)

const msgCourseIDRequired = "course id is required"

type BookmarkHTTPHandler struct {
	bookmarkUsecase usecase.BookmarkUsecase
	logger          *zerolog.Logger
}

func NewBookmarkHTTPHandler(bookmarkUsecase usecase.BookmarkUsecase, logger *zerolog.Logger) *BookmarkHTTPHandler {
	return &BookmarkHTTPHandler{
		bookmarkUsecase: bookmarkUsecase,
		logger:          logger,
	}
}

func (h *BookmarkHTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListBookmarks)
	r.Post("/toggle", h.ToggleBookmark)
}

func (h *BookmarkHTTPHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	bookmarks, err := h.bookmarkUsecase.ListBookmarks(r.Context(), identity.ID)
	if err != nil {
		writeServerError(w, h.logger, err, "failed to list bookmarks")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewBookmarkListResponse(bookmarks))
}

func (h *BookmarkHTTPHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	var req payload.ToggleBookmarkRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err, msgInvalidBody)
		return
	}

	bookmarked, err := h.bookmarkUsecase.ToggleBookmark(r.Context(), identity.ID, usecase.BookmarkSnapshot{
		CourseID:   string(req.ID),
		Title:      req.Title,
		Instructor: req.Instructor,
		Rating:     req.Rating,
		Students:   req.Students,
		Category:   req.Category,
		Level:      req.Level,
		Price:      req.Price,
		Image:      req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCourseIDRequired):
			httpx.WriteMessage(w, http.StatusBadRequest, msgCourseIDRequired)
		default:
			writeServerError(w, h.logger, err, "failed to toggle bookmark")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.ToggleBookmarkResponse{Bookmarked: bookmarked})
}
