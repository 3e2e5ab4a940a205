package course

import "time"

// Course holds the catalog information of a course.
type Course struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Slug             string    `json:"slug"`
	Language         string    `json:"language"`
	Requirements     string    `json:"requirements"`
	WhatYouWillLearn string    `json:"what_you_will_learn"`
	Level            string    `json:"level"`
	Instructors      []int64   `json:"instructors"`
	Categories       []int64   `json:"categories"`
	CreatedAt        time.Time `json:"created"`
	UpdatedAt        time.Time `json:"modified"`
}

// NewCourse is the creation payload. The creator always joins the
// instructor set.
type NewCourse struct {
	Title            string  `json:"title" validate:"required"`
	Description      string  `json:"description"`
	Slug             string  `json:"slug" validate:"required"`
	Language         string  `json:"language" validate:"required"`
	Requirements     string  `json:"requirements"`
	WhatYouWillLearn string  `json:"what_you_will_learn"`
	Level            string  `json:"level"`
	Instructors      []int64 `json:"instructors"`
	Categories       []int64 `json:"categories"`
}

// UpdateCourse is the patch payload; nil fields stay untouched.
type UpdateCourse struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Language         *string `json:"language"`
	Requirements     *string `json:"requirements"`
	WhatYouWillLearn *string `json:"what_you_will_learn"`
	Level            *string `json:"level"`
	Instructors      []int64 `json:"instructors"`
	Categories       []int64 `json:"categories"`
}

// ListFilters narrows course listings. Access filtering, when any, runs
// before these.
type ListFilters struct {
	Categories []int64
	Language   string
	Level      string
	Search     string
}

// Relation records a student's enrollment in a course. One row per
// user+course, enforced by a unique constraint.
type Relation struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	CreatorID int64     `json:"creator_id"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// Stats aggregates per-course figures maintained by the worker.
type Stats struct {
	CourseID      int64     `json:"course_id"`
	EnrolledCount int64     `json:"enrolled_count"`
	AverageRating float64   `json:"average_rating"`
	LessonCount   int64     `json:"lesson_count"`
	RefreshedAt   time.Time `json:"refreshed_at"`
}
