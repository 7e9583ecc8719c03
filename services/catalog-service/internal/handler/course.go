package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/payload"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/repository"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/usecase"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
	"github.com/vasapolrittideah/course-catalog-api/shared/middleware"
	"github.com/vasapolrittideah/course-catalog-api/shared/validator"
)

type CourseHTTPHandler struct {
	courseUsecase usecase.CourseUsecase
	validator     *validator.Validator
	logger        *zerolog.Logger
}

func NewCourseHTTPHandler(
	courseUsecase usecase.CourseUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *CourseHTTPHandler {
	return &CourseHTTPHandler{
		courseUsecase: courseUsecase,
		validator:     validator,
		logger:        logger,
	}
}

// RegisterRoutes mounts the public listing on r and everything else behind authenticate.
func (h *CourseHTTPHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Get("/", h.ListCourses)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/mine", h.ListMyCourses)
		r.Post("/", h.CreateCourse)
		r.Put("/{id}", h.UpdateCourse)
		r.Delete("/{id}", h.DeleteCourse)
	})
}

func (h *CourseHTTPHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseUsecase.ListCourses(r.Context())
	if err != nil {
		writeServerError(w, h.logger, err, "failed to list courses")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewCourseListResponse(courses))
}

func (h *CourseHTTPHandler) ListMyCourses(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	courses, err := h.courseUsecase.ListCoursesByCreator(r.Context(), identity)
	if err != nil {
		writeServerError(w, h.logger, err, "failed to list courses by creator")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewCourseListResponse(courses))
}

func (h *CourseHTTPHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateCourseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err, msgInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err, "Please provide all required fields")
		return
	}

	var creator *auth.Identity
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		creator = &identity
	}

	course, err := h.courseUsecase.CreateCourse(r.Context(), creator, usecase.CreateCourseParams{
		Title:      req.Title,
		Instructor: req.Instructor,
		Rating:     req.Rating,
		Students:   req.Students,
		Category:   req.Category,
		Level:      model.CourseLevel(req.Level),
		Price:      *req.Price,
		Image:      req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCourseLevel):
			httpx.WriteMessage(w, http.StatusBadRequest, "Please provide all required fields")
		default:
			writeServerError(w, h.logger, err, "failed to create course")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, payload.NewCourseResponse(course))
}

func (h *CourseHTTPHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	var req payload.UpdateCourseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err, msgInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err, "Invalid course fields")
		return
	}

	params := repository.UpdateCourseParams{
		Title:      req.Title,
		Instructor: req.Instructor,
		Rating:     req.Rating,
		Students:   req.Students,
		Category:   req.Category,
		Price:      req.Price,
		Image:      req.Image,
	}
	if req.Level != nil {
		level := model.CourseLevel(*req.Level)
		params.Level = &level
	}

	course, err := h.courseUsecase.UpdateCourse(r.Context(), identity, chi.URLParam(r, "id"), params)
	if err != nil {
		h.writeCourseError(w, err, "failed to update course")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, payload.NewCourseResponse(course))
}

func (h *CourseHTTPHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	if _, err := h.courseUsecase.DeleteCourse(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		h.writeCourseError(w, err, "failed to delete course")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Course deleted")
}

func (h *CourseHTTPHandler) writeCourseError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrCourseNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, usecase.ErrForbidden):
		httpx.WriteMessage(w, http.StatusForbidden, "You do not own this course")
	case errors.Is(err, usecase.ErrInvalidCourseLevel):
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid course fields")
	default:
		writeServerError(w, h.logger, err, logMsg)
	}
}
