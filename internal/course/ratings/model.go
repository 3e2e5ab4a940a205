package ratings

import (
	"time"

	"github.com/educa-hq/educa/internal/shared"
)

// Rating is a per-user course review. Each user rates a course at most
// once; the unique index on (course_id, creator_id) enforces that.
type Rating struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	CreatorID int64     `json:"creator_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// NewRating is the creation payload.
type NewRating struct {
	CourseID int64   `json:"course_id" validate:"required,gt=0"`
	Rating   float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string  `json:"comment"`
}

// UpdateRating is the patch payload; nil fields stay untouched.
type UpdateRating struct {
	Rating  *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string  `json:"comment"`
}

// ListFilters narrows rating listings. Rating is an inclusive interval
// validated to [1, 5] when parsed.
type ListFilters struct {
	CourseID int64
	Comment  string
	Rating   *shared.NumericRange
}
