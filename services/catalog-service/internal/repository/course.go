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

// CourseRepository defines the interface for course-related database operations.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	// ListCourses returns matching courses, newest first.
	ListCourses(ctx context.Context, params FilterCoursesParams) ([]*model.Course, error)
	UpdateCourse(ctx context.Context, id string, params UpdateCourseParams) (*model.Course, error)
	DeleteCourse(ctx context.Context, id string) (*model.Course, error)
}

// UpdateCourseParams defines the optional parameters for updating a course.
// Only the fields that are not nil will be updated.
type UpdateCourseParams struct {
	Title      *string
	Instructor *string
	Rating     *float64
	Students   *int64
	Category   *string
	Level      *model.CourseLevel
	Price      *float64
	Image      *string
}

// IsEmpty reports whether no field is set.
func (p UpdateCourseParams) IsEmpty() bool {
	return p.Title == nil && p.Instructor == nil && p.Rating == nil && p.Students == nil &&
		p.Category == nil && p.Level == nil && p.Price == nil && p.Image == nil
}

func (p UpdateCourseParams) toBSON() bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Instructor != nil {
		set["instructor"] = *p.Instructor
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.Students != nil {
		set["students"] = *p.Students
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Level != nil {
		set["level"] = *p.Level
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	return set
}

// FilterCoursesParams defines the parameters for filtering courses.
type FilterCoursesParams struct {
	CreatedBy *string
}

const courseCollection = "courses"

type courseMongoRepository struct {
	db *mongo.Database
}

func NewCourseMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) CourseRepository {
	collection := db.Collection(courseCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create course indexes")
	}

	return &courseMongoRepository{db: db}
}

func (r *courseMongoRepository) CreateCourse(ctx context.Context, course *model.Course) (*model.Course, error) {
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	result, err := r.db.Collection(courseCollection).InsertOne(ctx, course)
	if err != nil {
		return nil, translateError(err)
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		course.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return course, nil
}

func (r *courseMongoRepository) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var course model.Course
	if err := r.db.Collection(courseCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&course); err != nil {
		return nil, translateError(err)
	}

	return &course, nil
}

func (r *courseMongoRepository) ListCourses(ctx context.Context, params FilterCoursesParams) ([]*model.Course, error) {
	filter := bson.M{}
	if params.CreatedBy != nil {
		creatorID, err := parseObjectID(*params.CreatedBy)
		if err != nil {
			return nil, err
		}
		filter["created_by"] = creatorID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.db.Collection(courseCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := make([]*model.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseMongoRepository) UpdateCourse(
	ctx context.Context,
	id string,
	params UpdateCourseParams,
) (*model.Course, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	if params.IsEmpty() {
		return r.GetCourse(ctx, id)
	}

	updateMap := params.toBSON()
	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(courseCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var course model.Course
	if err := result.Decode(&course); err != nil {
		return nil, translateError(err)
	}

	return &course, nil
}

func (r *courseMongoRepository) DeleteCourse(ctx context.Context, id string) (*model.Course, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var course model.Course
	if err := r.db.Collection(courseCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&course); err != nil {
		return nil, translateError(err)
	}

	return &course, nil
}
