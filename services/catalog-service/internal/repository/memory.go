package repository

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
)

// The in-memory repositories enforce the same unique constraints as the Mongo
// indexes. They back STORE_DRIVER=memory and the package tests.

type userMemoryRepository struct {
	mu    sync.RWMutex
	users map[bson.ObjectID]model.User
}

func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{users: make(map[bson.ObjectID]model.User)}
}

func (r *userMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Name == user.Name {
			return nil, ErrDuplicateKey
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user

	return user, nil
}

func (r *userMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, ErrNotFound
	}

	return &user, nil
}

func (r *userMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *userMemoryRepository) GetUserByEmailOrName(_ context.Context, email, name string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email || u.Name == name })
}

func (r *userMemoryRepository) find(match func(model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			return &user, nil
		}
	}

	return nil, ErrNotFound
}

type courseMemoryRepository struct {
	mu      sync.RWMutex
	courses map[bson.ObjectID]model.Course
}

func NewCourseMemoryRepository() CourseRepository {
	return &courseMemoryRepository{courses: make(map[bson.ObjectID]model.Course)}
}

func (r *courseMemoryRepository) CreateCourse(_ context.Context, course *model.Course) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	course.ID = bson.NewObjectID()
	course.CreatedAt = now
	course.UpdatedAt = now
	r.courses[course.ID] = *course

	return course, nil
}

func (r *courseMemoryRepository) GetCourse(_ context.Context, id string) (*model.Course, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	course, ok := r.courses[objectID]
	if !ok {
		return nil, ErrNotFound
	}

	return &course, nil
}

func (r *courseMemoryRepository) ListCourses(_ context.Context, params FilterCoursesParams) ([]*model.Course, error) {
	var creator *bson.ObjectID
	if params.CreatedBy != nil {
		objectID, err := parseObjectID(*params.CreatedBy)
		if err != nil {
			return nil, err
		}
		creator = &objectID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]*model.Course, 0, len(r.courses))
	for _, course := range r.courses {
		if creator != nil && (course.CreatedBy == nil || *course.CreatedBy != *creator) {
			continue
		}
		c := course
		courses = append(courses, &c)
	}

	slices.SortFunc(courses, func(a, b *model.Course) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	return courses, nil
}

func (r *courseMemoryRepository) UpdateCourse(_ context.Context, id string, params UpdateCourseParams) (*model.Course, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[objectID]
	if !ok {
		return nil, ErrNotFound
	}

	if params.IsEmpty() {
		return &course, nil
	}

	if params.Title != nil {
		course.Title = *params.Title
	}
	if params.Instructor != nil {
		course.Instructor = *params.Instructor
	}
	if params.Rating != nil {
		course.Rating = *params.Rating
	}
	if params.Students != nil {
		course.Students = *params.Students
	}
	if params.Category != nil {
		course.Category = *params.Category
	}
	if params.Level != nil {
		course.Level = *params.Level
	}
	if params.Price != nil {
		course.Price = *params.Price
	}
	if params.Image != nil {
		course.Image = *params.Image
	}
	course.UpdatedAt = time.Now()
	r.courses[objectID] = course

	return &course, nil
}

func (r *courseMemoryRepository) DeleteCourse(_ context.Context, id string) (*model.Course, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[objectID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.courses, objectID)

	return &course, nil
}

type bookmarkKey struct {
	user   bson.ObjectID
	course string
}

type bookmarkMemoryRepository struct {
	mu        sync.RWMutex
	bookmarks map[bookmarkKey]model.Bookmark
}

func NewBookmarkMemoryRepository() BookmarkRepository {
	return &bookmarkMemoryRepository{bookmarks: make(map[bookmarkKey]model.Bookmark)}
}

func (r *bookmarkMemoryRepository) CreateBookmark(_ context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := bookmarkKey{user: bookmark.UserID, course: bookmark.CourseID}
	if _, ok := r.bookmarks[key]; ok {
		return nil, ErrDuplicateKey
	}

	now := time.Now()
	bookmark.ID = bson.NewObjectID()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now
	r.bookmarks[key] = *bookmark

	return bookmark, nil
}

func (r *bookmarkMemoryRepository) DeleteBookmark(_ context.Context, userID, courseID string) (bool, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := bookmarkKey{user: objectID, course: courseID}
	if _, ok := r.bookmarks[key]; !ok {
		return false, nil
	}
	delete(r.bookmarks, key)

	return true, nil
}

func (r *bookmarkMemoryRepository) BookmarkExists(_ context.Context, userID, courseID string) (bool, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bookmarks[bookmarkKey{user: objectID, course: courseID}]
	return ok, nil
}

func (r *bookmarkMemoryRepository) ListBookmarksByUser(_ context.Context, userID string) ([]*model.Bookmark, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bookmarks := make([]*model.Bookmark, 0)
	for key, bookmark := range r.bookmarks {
		if key.user != objectID {
			continue
		}
		b := bookmark
		bookmarks = append(bookmarks, &b)
	}

	slices.SortFunc(bookmarks, func(a, b *model.Bookmark) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	return bookmarks, nil
}

// newestFirst orders by creation time descending, breaking ties by id so that
// documents created within the same clock tick keep insertion order reversed.
func newestFirst(aTime, bTime time.Time, aID, bID bson.ObjectID) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}
	return bytes.Compare(bID[:], aID[:])
}
