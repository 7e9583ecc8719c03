package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
)

// BookmarkRepository defines the interface for bookmark-related database operations.
// The store enforces at most one bookmark per (user, course) pair.
type BookmarkRepository interface {
	// CreateBookmark fails with ErrDuplicateKey if the pair is already bookmarked.
	CreateBookmark(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error)
	// DeleteBookmark removes the pair's bookmark and reports whether one existed.
	DeleteBookmark(ctx context.Context, userID, courseID string) (bool, error)
	BookmarkExists(ctx context.Context, userID, courseID string) (bool, error)
	// ListBookmarksByUser returns the user's bookmarks, newest first.
	ListBookmarksByUser(ctx context.Context, userID string) ([]*model.Bookmark, error)
}

const bookmarkCollection = "bookmarks"

type bookmarkMongoRepository struct {
	db *mongo.Database
}

func NewBookmarkMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) BookmarkRepository {
	collection := db.Collection(bookmarkCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "course_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bookmark indexes")
	}

	return &bookmarkMongoRepository{db: db}
}

func (r *bookmarkMongoRepository) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	now := time.Now()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now

	result, err := r.db.Collection(bookmarkCollection).InsertOne(ctx, bookmark)
	if err != nil {
		return nil, translateError(err)
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		bookmark.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return bookmark, nil
}

func (r *bookmarkMongoRepository) DeleteBookmark(ctx context.Context, userID, courseID string) (bool, error) {
	filter, err := pairFilter(userID, courseID)
	if err != nil {
		return false, err
	}

	result, err := r.db.Collection(bookmarkCollection).DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}

func (r *bookmarkMongoRepository) BookmarkExists(ctx context.Context, userID, courseID string) (bool, error) {
	filter, err := pairFilter(userID, courseID)
	if err != nil {
		return false, err
	}

	count, err := r.db.Collection(bookmarkCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *bookmarkMongoRepository) ListBookmarksByUser(ctx context.Context, userID string) ([]*model.Bookmark, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.db.Collection(bookmarkCollection).Find(ctx, bson.M{"user": objectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookmarks := make([]*model.Bookmark, 0)
	if err := cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

func pairFilter(userID, courseID string) (bson.M, error) {
	objectID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	return bson.M{"user": objectID, "course_id": courseID}, nil
}
