package questions

import "time"

// Question is a student question on a lesson, visible to everyone in the
// course.
type Question struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	CourseID  int64     `json:"course_id"`
	CreatorID int64     `json:"creator_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// NewQuestion is the creation payload.
type NewQuestion struct {
	LessonID int64  `json:"lesson_id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// UpdateQuestion is the patch payload; nil fields stay untouched.
type UpdateQuestion struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// ListFilters narrows question listings.
type ListFilters struct {
	LessonID int64
	CourseID int64
	Title    string
}
