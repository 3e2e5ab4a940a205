package actions

import "time"

// Action kinds.
const (
	Like    = "like"
	Dislike = "dislike"
)

// Action is a like or dislike a user placed on an allow-listed content
// object. A user holds at most one action of a kind per object.
type Action struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course_id"`
	CreatorID   int64     `json:"creator_id"`
	ObjectModel string    `json:"object_model"`
	ObjectID    int64     `json:"object_id"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"modified"`
}

// NewAction is the creation payload.
type NewAction struct {
	ObjectModel string `json:"object_model" validate:"required"`
	ObjectID    int64  `json:"object_id" validate:"required,gt=0"`
	Action      string `json:"action" validate:"required,oneof=like dislike"`
}
