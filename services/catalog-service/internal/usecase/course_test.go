package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/policy"
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/repository"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
)

func goCourse() CreateCourseParams {
	return CreateCourseParams{
		Title:      "  Go  ",
		Instructor: "Rob",
		Category:   "dev",
		Level:      model.LevelBeginner,
		Price:      0,
		Image:      "go.png",
	}
}

func newIdentity(name string) auth.Identity {
	return auth.Identity{ID: bson.NewObjectID().Hex(), Name: name, Email: name + "@x.com"}
}

func TestCourseUsecase_CreateAndList(t *testing.T) {
	t.Parallel()

	uc := NewCourseUsecase(repository.NewCourseMemoryRepository(), policy.NewCreatorPolicy(), false)
	ctx := context.Background()
	ann := newIdentity("ann")
	bob := newIdentity("bob")

	course, err := uc.CreateCourse(ctx, &ann, goCourse())
	require.NoError(t, err)
	assert.Equal(t, "Go", course.Title)
	assert.Equal(t, ann.ID, course.CreatorID())

	_, err = uc.CreateCourse(ctx, &bob, goCourse())
	require.NoError(t, err)

	legacy, err := uc.CreateCourse(ctx, nil, goCourse())
	require.NoError(t, err)
	assert.Empty(t, legacy.CreatorID())

	all, err := uc.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := uc.ListCoursesByCreator(ctx, ann)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, course.ID, mine[0].ID)
}

func TestCourseUsecase_CreateRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	uc := NewCourseUsecase(repository.NewCourseMemoryRepository(), policy.NewCreatorPolicy(), false)
	ann := newIdentity("ann")

	params := goCourse()
	params.Level = "EXPERT"
	_, err := uc.CreateCourse(context.Background(), &ann, params)
	require.ErrorIs(t, err, ErrInvalidCourseLevel)
}

// Ownership is not enforced by default: any authenticated user may update or
// delete a course created by someone else.
func TestCourseUsecase_PermissiveByDefault(t *testing.T) {
	t.Parallel()

	uc := NewCourseUsecase(repository.NewCourseMemoryRepository(), policy.NewCreatorPolicy(), false)
	ctx := context.Background()
	ann := newIdentity("ann")
	mallory := newIdentity("mallory")

	course, err := uc.CreateCourse(ctx, &ann, goCourse())
	require.NoError(t, err)

	title := "Hijacked"
	updated, err := uc.UpdateCourse(ctx, mallory, course.ID.Hex(), repository.UpdateCourseParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Title)
	assert.Equal(t, ann.ID, updated.CreatorID())

	_, err = uc.DeleteCourse(ctx, mallory, course.ID.Hex())
	require.NoError(t, err)
}

func TestCourseUsecase_EnforcedOwnership(t *testing.T) {
	t.Parallel()

	uc := NewCourseUsecase(repository.NewCourseMemoryRepository(), policy.NewCreatorPolicy(), true)
	ctx := context.Background()
	ann := newIdentity("ann")
	mallory := newIdentity("mallory")

	course, err := uc.CreateCourse(ctx, &ann, goCourse())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = uc.UpdateCourse(ctx, mallory, course.ID.Hex(), repository.UpdateCourseParams{Title: &title})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = uc.DeleteCourse(ctx, mallory, course.ID.Hex())
	require.ErrorIs(t, err, ErrForbidden)

	title = "Go, revised"
	updated, err := uc.UpdateCourse(ctx, ann, course.ID.Hex(), repository.UpdateCourseParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	_, err = uc.DeleteCourse(ctx, ann, course.ID.Hex())
	require.NoError(t, err)
}

func TestCourseUsecase_NotFound(t *testing.T) {
	t.Parallel()

	for _, enforce := range []bool{false, true} {
		uc := NewCourseUsecase(repository.NewCourseMemoryRepository(), policy.NewCreatorPolicy(), enforce)
		ctx := context.Background()
		ann := newIdentity("ann")
		title := "x"

		for _, id := range []string{bson.NewObjectID().Hex(), "not-an-id"} {
			_, err := uc.UpdateCourse(ctx, ann, id, repository.UpdateCourseParams{Title: &title})
			require.ErrorIs(t, err, ErrCourseNotFound)

			_, err = uc.DeleteCourse(ctx, ann, id)
			require.ErrorIs(t, err, ErrCourseNotFound)
		}
	}
}

func TestCourseUsecase_UpdateRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	uc := NewCourseUsecase(repository.NewCourseMemoryRepository(), policy.NewCreatorPolicy(), false)
	ann := newIdentity("ann")

	course, err := uc.CreateCourse(context.Background(), &ann, goCourse())
	require.NoError(t, err)

	level := model.CourseLevel("EXPERT")
	_, err = uc.UpdateCourse(context.Background(), ann, course.ID.Hex(), repository.UpdateCourseParams{Level: &level})
	require.ErrorIs(t, err, ErrInvalidCourseLevel)
}
