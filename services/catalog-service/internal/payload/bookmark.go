package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
)

// CourseRef is a course id sent either as a JSON string or a JSON number.
type CourseRef string

func (r *CourseRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = CourseRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("course id must be a string or number: %w", err)
	}
	*r = CourseRef(n.String())

	return nil
}

type ToggleBookmarkRequest struct {
	ID         CourseRef `json:"id"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Rating     float64   `json:"rating"`
	Students   int64     `json:"students"`
	Category   string    `json:"category"`
	Level      string    `json:"level"`
	Price      float64   `json:"price"`
	Image      string    `json:"image"`
}

type ToggleBookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type BookmarkResponse struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"courseId"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Rating     float64   `json:"rating"`
	Students   int64     `json:"students"`
	Category   string    `json:"category"`
	Level      string    `json:"level"`
	Price      float64   `json:"price"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewBookmarkListResponse(bookmarks []*model.Bookmark) []BookmarkResponse {
	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, BookmarkResponse{
			ID:         b.ID.Hex(),
			CourseID:   b.CourseID,
			Title:      b.Title,
			Instructor: b.Instructor,
			Rating:     b.Rating,
			Students:   b.Students,
			Category:   b.Category,
			Level:      b.Level,
			Price:      b.Price,
			Image:      b.Image,
			CreatedAt:  b.CreatedAt,
		})
	}
	return resp
}
