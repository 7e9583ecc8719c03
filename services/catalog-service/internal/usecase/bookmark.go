package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/repository"
)

// BookmarkUsecase defines the bookmark operations of a user.
type BookmarkUsecase interface {
	// ToggleBookmark flips whether the user has bookmarked the course and
	// returns the new state.
	ToggleBookmark(ctx context.Context, userID string, snapshot BookmarkSnapshot) (bool, error)
	ListBookmarks(ctx context.Context, userID string) ([]*model.Bookmark, error)
}

// BookmarkSnapshot holds the course display fields copied into a new bookmark.
type BookmarkSnapshot struct {
	CourseID   string
	Title      string
	Instructor string
	Rating     float64
	Students   int64
	Category   string
	Level      string
	Price      float64
	Image      string
}

var ErrCourseIDRequired = errors.New("course id is required")

// maxToggleAttempts bounds the delete/insert loop when concurrent toggles for
// the same pair keep colliding.
const maxToggleAttempts = 3

type bookmarkUsecase struct {
	bookmarkRepo repository.BookmarkRepository
	logger       *zerolog.Logger
}

func NewBookmarkUsecase(bookmarkRepo repository.BookmarkRepository, logger *zerolog.Logger) BookmarkUsecase {
	return &bookmarkUsecase{
		bookmarkRepo: bookmarkRepo,
		logger:       logger,
	}
}

func (u *bookmarkUsecase) ToggleBookmark(ctx context.Context, userID string, snapshot BookmarkSnapshot) (bool, error) {
	courseID := strings.TrimSpace(snapshot.CourseID)
	if courseID == "" {
		return false, ErrCourseIDRequired
	}

	user, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, err
	}

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		deleted, err := u.bookmarkRepo.DeleteBookmark(ctx, userID, courseID)
		if err != nil {
			return false, err
		}
		if deleted {
			return false, nil
		}

		_, err = u.bookmarkRepo.CreateBookmark(ctx, &model.Bookmark{
			UserID:     user,
			CourseID:   courseID,
			Title:      snapshot.Title,
			Instructor: snapshot.Instructor,
			Rating:     snapshot.Rating,
			Students:   snapshot.Students,
			Category:   snapshot.Category,
			Level:      snapshot.Level,
			Price:      snapshot.Price,
			Image:      snapshot.Image,
		})
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return false, err
		}

		// A concurrent toggle inserted the pair between our delete and insert.
		u.logger.Debug().
			Str("user_id", userID).
			Str("course_id", courseID).
			Int("attempt", attempt).
			Msg("bookmark toggle raced, retrying")
	}

	return u.bookmarkRepo.BookmarkExists(ctx, userID, courseID)
}

func (u *bookmarkUsecase) ListBookmarks(ctx context.Context, userID string) ([]*model.Bookmark, error) {
	return u.bookmarkRepo.ListBookmarksByUser(ctx, userID)
}
