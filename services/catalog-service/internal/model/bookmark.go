package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Bookmark is a user's saved copy of a course's display fields.
// The pair (UserID, CourseID) is unique and the snapshot is never refreshed.
type Bookmark struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	UserID     bson.ObjectID `bson:"user"`
	CourseID   string        `bson:"course_id"`
	Title      string        `bson:"title"`
	Instructor string        `bson:"instructor"`
	Rating     float64       `bson:"rating"`
	Students   int64         `bson:"students"`
	Category   string        `bson:"category"`
	Level      string        `bson:"level"`
	Price      float64       `bson:"price"`
	Image      string        `bson:"image"`
	CreatedAt  time.Time     `bson:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at"`
}
