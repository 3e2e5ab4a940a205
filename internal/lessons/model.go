package lessons

import "time"

// Lesson is a single unit of course content, usually a video, attached to
// a module of its course.
type Lesson struct {
	ID                     int64     `json:"id"`
	CourseID               int64     `json:"course_id"`
	ModuleID               int64     `json:"module_id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	VideoURL               string    `json:"video_url"`
	VideoDurationInSeconds int64     `json:"video_duration_in_seconds"`
	Order                  int32     `json:"order"`
	CreatedAt              time.Time `json:"created"`
	UpdatedAt              time.Time `json:"modified"`
}

// NewLesson is the creation payload. The duration is stored as given by
// the caller; no lookup against the video host happens.
type NewLesson struct {
	CourseID               int64  `json:"course_id" validate:"required,gt=0"`
	ModuleID               int64  `json:"module_id" validate:"required,gt=0"`
	Title                  string `json:"title" validate:"required"`
	Description            string `json:"description"`
	VideoURL               string `json:"video_url" validate:"omitempty,url"`
	VideoDurationInSeconds int64  `json:"video_duration_in_seconds" validate:"gte=0"`
	Order                  int32  `json:"order" validate:"gte=0"`
}

// UpdateLesson is the patch payload; nil fields stay untouched.
type UpdateLesson struct {
	Title                  *string `json:"title"`
	Description            *string `json:"description"`
	VideoURL               *string `json:"video_url" validate:"omitempty,url"`
	VideoDurationInSeconds *int64  `json:"video_duration_in_seconds" validate:"omitempty,gte=0"`
	Order                  *int32  `json:"order" validate:"omitempty,gte=0"`
}

// ListFilters narrows lesson listings.
type ListFilters struct {
	CourseID int64
	ModuleID int64
	Title    string
}

// Relation tracks a user's progress through a lesson. One row per user
// and lesson.
type Relation struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	CreatorID int64     `json:"creator_id"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}
