package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/policy"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/repository"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
)

// CourseUsecase defines the course catalog operations.
type CourseUsecase interface {
	ListCourses(ctx context.Context) ([]*model.Course, error)
	// ListCoursesByCreator lists the caller's own courses. It is a convenience
	// view, not an access boundary.
	ListCoursesByCreator(ctx context.Context, identity auth.Identity) ([]*model.Course, error)
	CreateCourse(ctx context.Context, identity *auth.Identity, params CreateCourseParams) (*model.Course, error)
	UpdateCourse(ctx context.Context, identity auth.Identity, id string, params repository.UpdateCourseParams) (*model.Course, error)
	DeleteCourse(ctx context.Context, identity auth.Identity, id string) (*model.Course, error)
}

// CreateCourseParams defines the parameters for creating a course.
type CreateCourseParams struct {
	Title      string
	Instructor string
	Rating     float64
	Students   int64
	Category   string
	Level      model.CourseLevel
	Price      float64
	Image      string
}

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrForbidden          = errors.New("caller does not own the course")
	ErrInvalidCourseLevel = errors.New("invalid course level")
)

type courseUsecase struct {
	courseRepo       repository.CourseRepository
	ownership        policy.OwnershipPolicy
	enforceOwnership bool
}

// NewCourseUsecase creates a CourseUsecase. When enforceOwnership is false any
// authenticated caller may update or delete any course.
func NewCourseUsecase(
	courseRepo repository.CourseRepository,
	ownership policy.OwnershipPolicy,
	enforceOwnership bool,
) CourseUsecase {
	return &courseUsecase{
		courseRepo:       courseRepo,
		ownership:        ownership,
		enforceOwnership: enforceOwnership,
	}
}

func (u *courseUsecase) ListCourses(ctx context.Context) ([]*model.Course, error) {
	return u.courseRepo.ListCourses(ctx, repository.FilterCoursesParams{})
}

func (u *courseUsecase) ListCoursesByCreator(ctx context.Context, identity auth.Identity) ([]*model.Course, error) {
	courses, err := u.courseRepo.ListCourses(ctx, repository.FilterCoursesParams{CreatedBy: &identity.ID})
	if errors.Is(err, repository.ErrInvalidID) {
		return []*model.Course{}, nil
	}

	return courses, err
}

func (u *courseUsecase) CreateCourse(
	ctx context.Context,
	identity *auth.Identity,
	params CreateCourseParams,
) (*model.Course, error) {
	if !params.Level.Valid() {
		return nil, ErrInvalidCourseLevel
	}

	course := &model.Course{
		Title:      strings.TrimSpace(params.Title),
		Instructor: strings.TrimSpace(params.Instructor),
		Rating:     params.Rating,
		Students:   params.Students,
		Category:   strings.TrimSpace(params.Category),
		Level:      params.Level,
		Price:      params.Price,
		Image:      params.Image,
	}

	if identity != nil {
		creator, err := bson.ObjectIDFromHex(identity.ID)
		if err != nil {
			return nil, err
		}
		course.CreatedBy = &creator
	}

	return u.courseRepo.CreateCourse(ctx, course)
}

func (u *courseUsecase) UpdateCourse(
	ctx context.Context,
	identity auth.Identity,
	id string,
	params repository.UpdateCourseParams,
) (*model.Course, error) {
	if params.Level != nil && !params.Level.Valid() {
		return nil, ErrInvalidCourseLevel
	}

	if err := u.authorize(ctx, identity, id); err != nil {
		return nil, err
	}

	trimStrings(params.Title, params.Instructor, params.Category)

	course, err := u.courseRepo.UpdateCourse(ctx, id, params)
	if err != nil {
		return nil, courseError(err)
	}

	return course, nil
}

func (u *courseUsecase) DeleteCourse(ctx context.Context, identity auth.Identity, id string) (*model.Course, error) {
	if err := u.authorize(ctx, identity, id); err != nil {
		return nil, err
	}

	course, err := u.courseRepo.DeleteCourse(ctx, id)
	if err != nil {
		return nil, courseError(err)
	}

	return course, nil
}

func (u *courseUsecase) authorize(ctx context.Context, identity auth.Identity, id string) error {
	if !u.enforceOwnership {
		return nil
	}

	course, err := u.courseRepo.GetCourse(ctx, id)
	if err != nil {
		return courseError(err)
	}

	if !u.ownership.CanMutate(identity, course) {
		return ErrForbidden
	}

	return nil
}

func courseError(err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return ErrCourseNotFound
	}
	return err
}

func trimStrings(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
}
