package notes

import "time"

// Note is a private note a student keeps on a lesson. Only its creator
// ever sees it.
type Note struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	CourseID  int64     `json:"course_id"`
	CreatorID int64     `json:"creator_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// NewNote is the creation payload.
type NewNote struct {
	LessonID int64  `json:"lesson_id" validate:"required,gt=0"`
	Body     string `json:"body" validate:"required"`
}

// UpdateNote is the patch payload; nil fields stay untouched.
type UpdateNote struct {
	Body *string `json:"body"`
}
