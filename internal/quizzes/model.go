package quizzes

import "time"

// Quiz is a multiple-choice test attached to a module of a course. A user
// passes when their score reaches PassPercent.
type Quiz struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"course_id"`
	ModuleID    int64      `json:"module_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int32      `json:"order"`
	IsPublished bool       `json:"is_published"`
	PassPercent int32      `json:"pass_percent"`
	CreatedAt   time.Time  `json:"created"`
	UpdatedAt   time.Time  `json:"modified"`
	Questions   []Question `json:"questions"`
}

// NewQuiz is the creation payload.
type NewQuiz struct {
	CourseID    int64  `json:"course_id" validate:"required,gt=0"`
	ModuleID    int64  `json:"module_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
	PassPercent int32  `json:"pass_percent" validate:"gte=0,lte=100"`
}

// UpdateQuiz is the patch payload; nil fields stay untouched.
type UpdateQuiz struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"is_published"`
	PassPercent *int32  `json:"pass_percent" validate:"omitempty,gte=0,lte=100"`
}

// Question is one entry of a quiz. CorrectResponse indexes into Answers.
type Question struct {
	ID              int64     `json:"id"`
	QuizID          int64     `json:"quiz_id"`
	CourseID        int64     `json:"course_id"`
	Question        string    `json:"question"`
	Feedback        string    `json:"feedback"`
	Answers         []string  `json:"answers"`
	TimeInMinutes   float64   `json:"time_in_minutes"`
	CorrectResponse int32     `json:"correct_response"`
	CreatedAt       time.Time `json:"created"`
	UpdatedAt       time.Time `json:"modified"`
}

// NewQuestion is the creation payload.
type NewQuestion struct {
	QuizID          int64    `json:"quiz_id" validate:"required,gt=0"`
	Question        string   `json:"question" validate:"required"`
	Feedback        string   `json:"feedback"`
	Answers         []string `json:"answers" validate:"required,min=1"`
	TimeInMinutes   float64  `json:"time_in_minutes" validate:"gte=0"`
	CorrectResponse int32    `json:"correct_response" validate:"gte=0"`
}

// UpdateQuestion is the patch payload; nil fields stay untouched.
type UpdateQuestion struct {
	Question        *string   `json:"question"`
	Feedback        *string   `json:"feedback"`
	Answers         *[]string `json:"answers" validate:"omitempty,min=1"`
	TimeInMinutes   *float64  `json:"time_in_minutes" validate:"omitempty,gte=0"`
	CorrectResponse *int32    `json:"correct_response" validate:"omitempty,gte=0"`
}

// Relation tracks a user's completion status for a quiz.
type Relation struct {
	ID        int64     `json:"id"`
	QuizID    int64     `json:"quiz_id"`
	CreatorID int64     `json:"creator_id"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// CheckResult is the outcome of grading a submission.
type CheckResult struct {
	Correct        bool    `json:"correct"`
	CorrectPercent float64 `json:"correct_percent"`
	WrongQuestions []int64 `json:"wrong_questions"`
}
