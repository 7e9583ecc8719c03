package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/config"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/handler"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/policy"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/repository"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/usecase"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
	"github.com/vasapolrittideah/course-catalog-api/shared/database"
	"github.com/vasapolrittideah/course-catalog-api/shared/logger"
	"github.com/vasapolrittideah/course-catalog-api/shared/mailer"
	"github.com/vasapolrittideah/course-catalog-api/shared/security"
	"github.com/vasapolrittideah/course-catalog-api/shared/validator"
)

type stores struct {
	users     repository.UserRepository
	courses   repository.CourseRepository
	bookmarks repository.BookmarkRepository
	close     func(context.Context) error
}

func main() {
	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New("info", false)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, log, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stores")
	}

	v, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	tokens := auth.NewTokenService(
		auth.NewJWTAuthenticator(cfg.Token.Audience, cfg.Token.Issuer),
		cfg.Token.Secret,
		cfg.Token.ExpiresIn,
	)

	ownership := policy.NewAllowAllPolicy()
	if cfg.EnforceCourseOwnership {
		ownership = policy.NewCreatorPolicy()
	}

	router := handler.NewRouter(handler.RouterParams{
		Logger:          log,
		Validator:       v,
		Tokens:          tokens,
		AllowedOrigins:  cfg.AllowedOrigins,
		RequestTimeout:  cfg.RequestTimeout,
		AuthUsecase:     usecase.NewAuthUsecase(st.users, security.DefaultPasswordHasher(), tokens, log),
		CourseUsecase:   usecase.NewCourseUsecase(st.courses, ownership, cfg.EnforceCourseOwnership),
		BookmarkUsecase: usecase.NewBookmarkUsecase(st.bookmarks, log),
		ContactUsecase:  newContactUsecase(log, cfg),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("catalog service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}

	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close stores")
	}
}

func openStores(ctx context.Context, log *zerolog.Logger, cfg *config.CatalogServiceConfig) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &stores{
			users:     repository.NewUserMemoryRepository(),
			courses:   repository.NewCourseMemoryRepository(),
			bookmarks: repository.NewBookmarkMemoryRepository(),
			close:     func(context.Context) error { return nil },
		}, nil
	}

	mongoStore, err := database.ConnectMongo(ctx, log, cfg.Mongo)
	if err != nil {
		return nil, err
	}

	db := mongoStore.Database()

	return &stores{
		users:     repository.NewUserMongoRepository(ctx, log, db),
		courses:   repository.NewCourseMongoRepository(ctx, log, db),
		bookmarks: repository.NewBookmarkMongoRepository(ctx, log, db),
		close:     mongoStore.Close,
	}, nil
}

func newContactUsecase(log *zerolog.Logger, cfg *config.CatalogServiceConfig) usecase.ContactUsecase {
	if !cfg.ContactEnabled() {
		log.Warn().Msg("SMTP or CONTACT_RECIPIENT not configured; contact form is disabled")
		return usecase.NewContactUsecase(nil, "")
	}

	m, err := mailer.NewMailer(log, cfg.SMTP)
	if err != nil {
		log.Warn().Err(err).Msg("invalid SMTP configuration; contact form is disabled")
		return usecase.NewContactUsecase(nil, "")
	}

	return usecase.NewContactUsecase(m, cfg.Contact.Recipient)
}
