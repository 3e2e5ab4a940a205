package messages

import (
	"time"

	"github.com/educa-hq/educa/internal/shared"
)

// Message is an instructor announcement on a course.
type Message struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	CreatorID int64     `json:"creator_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// NewMessage is the creation payload.
type NewMessage struct {
	CourseID int64  `json:"course_id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// UpdateMessage is the patch payload; nil fields stay untouched.
type UpdateMessage struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// ListFilters narrows message listings.
type ListFilters struct {
	CourseID int64
	Title    string
	Created  *shared.TimeRange
}
