package users

import "time"

// User is a registered account, student or instructor.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	JobTitle  string    `json:"job_title,omitempty"`
	Locale    string    `json:"locale,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	IsStaff   bool      `json:"-"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

// NewUser is the account-creation payload.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	JobTitle string `json:"job_title"`
	Locale   string `json:"locale"`
	Bio      string `json:"bio"`
}
