package payload

import (
	"time"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
)

type CreateCourseRequest struct {
	Title      string   `json:"title"      validate:"required"`
	Instructor string   `json:"instructor" validate:"required"`
	Rating     float64  `json:"rating"     validate:"gte=0"`
	Students   int64    `json:"students"   validate:"gte=0"`
	Category   string   `json:"category"   validate:"required"`
	Level      string   `json:"level"      validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Price      *float64 `json:"price"      validate:"required,gte=0"`
	Image      string   `json:"image"      validate:"required"`
}

// UpdateCourseRequest is a partial update; absent fields keep their value.
type UpdateCourseRequest struct {
	Title      *string  `json:"title"      validate:"omitnil,min=1"`
	Instructor *string  `json:"instructor" validate:"omitnil,min=1"`
	Rating     *float64 `json:"rating"     validate:"omitnil,gte=0"`
	Students   *int64   `json:"students"   validate:"omitnil,gte=0"`
	Category   *string  `json:"category"   validate:"omitnil,min=1"`
	Level      *string  `json:"level"      validate:"omitnil,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Price      *float64 `json:"price"      validate:"omitnil,gte=0"`
	Image      *string  `json:"image"      validate:"omitnil,min=1"`
}

type CourseResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Rating     float64   `json:"rating"`
	Students   int64     `json:"students"`
	Category   string    `json:"category"`
	Level      string    `json:"level"`
	Price      float64   `json:"price"`
	Image      string    `json:"image"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewCourseResponse(c *model.Course) CourseResponse {
	return CourseResponse{
		ID:         c.ID.Hex(),
		Title:      c.Title,
		Instructor: c.Instructor,
		Rating:     c.Rating,
		Students:   c.Students,
		Category:   c.Category,
		Level:      string(c.Level),
		Price:      c.Price,
		Image:      c.Image,
		CreatedBy:  c.CreatorID(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func NewCourseListResponse(courses []*model.Course) []CourseResponse {
	resp := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, NewCourseResponse(c))
	}
	return resp
}
