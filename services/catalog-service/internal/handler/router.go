package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/usecase"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
	"github.com/vasapolrittideah/course-catalog-api/shared/httpx"
	"github.com/vasapolrittideah/course-catalog-api/shared/middleware"
	"github.com/vasapolrittideah/course-catalog-api/shared/validator"
)

// RouterParams holds everything the HTTP layer depends on.
type RouterParams struct {
	Logger         *zerolog.Logger
	Validator      *validator.Validator
	Tokens         auth.TokenService
	AllowedOrigins []string
	RequestTimeout time.Duration

	AuthUsecase     usecase.AuthUsecase
	CourseUsecase   usecase.CourseUsecase
	BookmarkUsecase usecase.BookmarkUsecase
	ContactUsecase  usecase.ContactUsecase
}

// NewRouter builds the catalog API. Reading the course list, the auth endpoints
// and the contact form are public; every other route requires a bearer token.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(p.Logger, chimiddleware.GetReqID)...)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   p.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if p.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(p.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", Healthz)

	authenticate := middleware.Authenticate(p.Tokens)

	authHandler := NewAuthHTTPHandler(p.AuthUsecase, p.Validator, p.Logger)
	courseHandler := NewCourseHTTPHandler(p.CourseUsecase, p.Validator, p.Logger)
	bookmarkHandler := NewBookmarkHTTPHandler(p.BookmarkUsecase, p.Logger)
	contactHandler := NewContactHTTPHandler(p.ContactUsecase, p.Validator, p.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", authHandler.RegisterRoutes)

		r.Route("/courses", func(r chi.Router) {
			courseHandler.RegisterRoutes(r, authenticate)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(authenticate)
			bookmarkHandler.RegisterRoutes(r)
		})

		r.With(authenticate).Get("/dashboard", Dashboard)

		r.Post("/contact", contactHandler.SendContactMessage)
	})

	return r
}
