package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
)

type repositories struct {
	users     UserRepository
	courses   CourseRepository
	bookmarks BookmarkRepository
}

func testUserRepository(t *testing.T, repo UserRepository) {
	ctx := context.Background()

	ann, err := repo.CreateUser(ctx, &model.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.False(t, ann.ID.IsZero())

	_, err = repo.CreateUser(ctx, &model.User{Name: "Other", Email: "ann@x.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repo.CreateUser(ctx, &model.User{Name: "Ann", Email: "other@x.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	got, err := repo.GetUser(ctx, ann.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", got.Email)

	got, err = repo.GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ID)

	got, err = repo.GetUserByEmailOrName(ctx, "nobody@x.com", "Ann")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ID)

	_, err = repo.GetUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetUser(ctx, "not-hex")
	require.ErrorIs(t, err, ErrInvalidID)
}

func testCourseRepository(t *testing.T, repo CourseRepository) {
	ctx := context.Background()
	owner := bson.NewObjectID()

	first, err := repo.CreateCourse(ctx, &model.Course{
		Title: "Go", Instructor: "Rob", Category: "dev", Level: model.LevelBeginner, Price: 10, Image: "go.png",
		CreatedBy: &owner,
	})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	second, err := repo.CreateCourse(ctx, &model.Course{
		Title: "Rust", Instructor: "Steve", Category: "dev", Level: model.LevelAdvanced, Price: 20, Image: "rust.png",
	})
	require.NoError(t, err)

	all, err := repo.ListCourses(ctx, FilterCoursesParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, first.ID, all[1].ID)

	ownerID := owner.Hex()
	mine, err := repo.ListCourses(ctx, FilterCoursesParams{CreatedBy: &ownerID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	title := "Go in depth"
	updated, err := repo.UpdateCourse(ctx, first.ID.Hex(), UpdateCourseParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "Rob", updated.Instructor)
	assert.Equal(t, owner.Hex(), updated.CreatorID())

	unchanged, err := repo.UpdateCourse(ctx, second.ID.Hex(), UpdateCourseParams{})
	require.NoError(t, err)
	assert.Equal(t, "Rust", unchanged.Title)

	_, err = repo.UpdateCourse(ctx, bson.NewObjectID().Hex(), UpdateCourseParams{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.DeleteCourse(ctx, second.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, second.ID, deleted.ID)

	_, err = repo.DeleteCourse(ctx, second.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetCourse(ctx, "zzz")
	require.ErrorIs(t, err, ErrInvalidID)
}

func testBookmarkRepository(t *testing.T, repo BookmarkRepository) {
	ctx := context.Background()
	user := bson.NewObjectID()
	other := bson.NewObjectID()

	_, err := repo.CreateBookmark(ctx, &model.Bookmark{UserID: user, CourseID: "c1", Title: "X"})
	require.NoError(t, err)

	_, err = repo.CreateBookmark(ctx, &model.Bookmark{UserID: user, CourseID: "c1", Title: "X"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repo.CreateBookmark(ctx, &model.Bookmark{UserID: other, CourseID: "c1", Title: "X"})
	require.NoError(t, err, "same course for another user is allowed")

	time.Sleep(2 * time.Millisecond)
	_, err = repo.CreateBookmark(ctx, &model.Bookmark{UserID: user, CourseID: "c2", Title: "Y"})
	require.NoError(t, err)

	list, err := repo.ListBookmarksByUser(ctx, user.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].CourseID)
	assert.Equal(t, "c1", list[1].CourseID)

	exists, err := repo.BookmarkExists(ctx, user.Hex(), "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := repo.DeleteBookmark(ctx, user.Hex(), "c1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteBookmark(ctx, user.Hex(), "c1")
	require.NoError(t, err)
	assert.False(t, deleted)

	exists, err = repo.BookmarkExists(ctx, other.Hex(), "c1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func testBookmarkUniqueUnderConcurrency(t *testing.T, repo BookmarkRepository) {
	ctx := context.Background()
	user := bson.NewObjectID()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateBookmark(ctx, &model.Bookmark{UserID: user, CourseID: "race"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrDuplicateKey)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)

	list, err := repo.ListBookmarksByUser(ctx, user.Hex())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func runContract(t *testing.T, newRepos func(t *testing.T) repositories) {
	t.Run("users", func(t *testing.T) { testUserRepository(t, newRepos(t).users) })
	t.Run("courses", func(t *testing.T) { testCourseRepository(t, newRepos(t).courses) })
	t.Run("bookmarks", func(t *testing.T) { testBookmarkRepository(t, newRepos(t).bookmarks) })
	t.Run("bookmark uniqueness under concurrency", func(t *testing.T) {
		testBookmarkUniqueUnderConcurrency(t, newRepos(t).bookmarks)
	})
}
