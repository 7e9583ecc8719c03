package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CourseLevel is the difficulty of a course.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

// Valid reports whether l is one of the known levels.
func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Course represents a course in the catalog.
// CreatedBy is nil for courses created before ownership was recorded.
type Course struct {
	ID         bson.ObjectID  `bson:"_id,omitempty"`
	Title      string         `bson:"title"`
	Instructor string         `bson:"instructor"`
	Rating     float64        `bson:"rating"`
	Students   int64          `bson:"students"`
	Category   string         `bson:"category"`
	Level      CourseLevel    `bson:"level"`
	Price      float64        `bson:"price"`
	Image      string         `bson:"image"`
	CreatedBy  *bson.ObjectID `bson:"created_by,omitempty"`
	CreatedAt  time.Time      `bson:"created_at"`
	UpdatedAt  time.Time      `bson:"updated_at"`
}

// CreatorID returns the hex id of the creator, or "" when unknown.
func (c *Course) CreatorID() string {
	if c.CreatedBy == nil || c.CreatedBy.IsZero() {
		return ""
	}
	return c.CreatedBy.Hex()
}
