package model

import "time"

// SemesterRecord is one saved semester for one user. A user has at most one
// record per (year, semester); saves go through an upsert on that key.
// GPA is a snapshot taken at save time; cumulative computations re-derive
// credit totals from Courses rather than trusting any denormalized field.
type SemesterRecord struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Year      string    `json:"year" db:"year"`
	Semester  string    `json:"semester" db:"semester"`
	GPA       float64   `json:"gpa" db:"gpa"`
	Courses   []Course  `json:"courses" db:"courses"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Profile struct {
	UserID       string    `json:"user_id" db:"user_id"`
	FullName     string    `json:"full_name" db:"full_name"`
	StudentEmail string    `json:"student_email" db:"student_email"`
	Department   string    `json:"department" db:"department"`
	StudentID    string    `json:"student_id" db:"student_id"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Preferences are per-user presentation settings (theme, language). They are
// stored per user and handed to clients as explicit configuration.
type Preferences struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Theme     string    `json:"theme" db:"theme"`
	Language  string    `json:"language" db:"language"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
