package contents

import "time"

// Content is supplemental material attached to a lesson. The file itself
// lives elsewhere; only its URL is stored.
type Content struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	CourseID  int64     `json:"course_id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// NewContent is the creation payload.
type NewContent struct {
	LessonID int64  `json:"lesson_id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=file image text video"`
	URL      string `json:"url" validate:"required,url"`
}

// UpdateContent is the patch payload; nil fields stay untouched.
type UpdateContent struct {
	Title *string `json:"title"`
	Kind  *string `json:"kind" validate:"omitempty,oneof=file image text video"`
	URL   *string `json:"url" validate:"omitempty,url"`
}
