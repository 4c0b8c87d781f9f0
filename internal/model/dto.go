package model

import "time"

type CalculateRequest struct {
	Courses []Course `json:"courses"`
}

type CalculateResponse struct {
	GPA          float64 `json:"gpa"`
	TotalCredits int     `json:"total_credits"`
	CourseCount  int     `json:"course_count"`
}

type SaveSemesterRequest struct {
	Year     string   `json:"year"`
	Semester string   `json:"semester"`
	Courses  []Course `json:"courses"`
}

// Ranking is the leaderboard position of one user: 1-based rank among all
// users with at least one record, ordered by cumulative GPA descending.
type Ranking struct {
	Rank          int     `json:"rank"`
	TotalUsers    int     `json:"total_users"`
	CumulativeGPA float64 `json:"cumulative_gpa"`
}

type RankOverrideRequest struct {
	Rank       int `json:"rank"`
	TotalUsers int `json:"total_users"`
}

// SemesterStanding is one row of the standings table: the saved semester
// plus the cumulative GPA over all records up to and including it.
type SemesterStanding struct {
	Year          string  `json:"year"`
	Semester      string  `json:"semester"`
	GPA           float64 `json:"gpa"`
	CumulativeGPA float64 `json:"cumulative_gpa"`
	CourseCount   int     `json:"course_count"`
	TotalCredits  int     `json:"total_credits"`
	Performance   string  `json:"performance"`
}

type StandingsResponse struct {
	Semesters []SemesterStanding `json:"semesters"`
	Ranking   *Ranking           `json:"ranking,omitempty"`
	Overall   string             `json:"overall,omitempty"`
}

type ImportJob struct {
	ImportID  int64  `json:"import_id"`
	UserID    string `json:"user_id"`
	ObjectKey string `json:"object_key"`
}

type ImportStatusResponse struct {
	ImportID     int64     `json:"import_id"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
