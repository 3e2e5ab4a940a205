package answers

import "time"

// Answer is a user reply attached to some allow-listed content object of
// a course. The target is addressed by (object_model, object_id).
type Answer struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course_id"`
	CreatorID   int64     `json:"creator_id"`
	ObjectModel string    `json:"object_model"`
	ObjectID    int64     `json:"object_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"modified"`
}

// NewAnswer is the creation payload.
type NewAnswer struct {
	ObjectModel string `json:"object_model" validate:"required"`
	ObjectID    int64  `json:"object_id" validate:"required,gt=0"`
	Content     string `json:"content" validate:"required,max=1000"`
}

// UpdateAnswer is the patch payload; nil fields stay untouched.
type UpdateAnswer struct {
	Content *string `json:"content" validate:"omitempty,max=1000"`
}
