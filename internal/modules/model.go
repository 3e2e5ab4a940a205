package modules

import "time"

// Module is an ordered section of a course grouping its lessons.
type Module struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int32     `json:"order"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"modified"`
}

// NewModule is the creation payload.
type NewModule struct {
	CourseID    int64  `json:"course_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Order       int32  `json:"order" validate:"gte=0"`
}

// UpdateModule is the patch payload; nil fields stay untouched.
type UpdateModule struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Order       *int32  `json:"order" validate:"omitempty,gte=0"`
}

// ListFilters narrows module listings.
type ListFilters struct {
	CourseID int64
	Title    string
}
