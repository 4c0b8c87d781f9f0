package model

import "time"

type ImportStatus string

const (
	ImportStatusUploaded   ImportStatus = "UPLOADED"
	ImportStatusParsedOK   ImportStatus = "PARSED_OK"
	ImportStatusParsedFail ImportStatus = "PARSED_FAIL"
)

// Import tracks one uploaded transcript spreadsheet through the
// upload -> parse -> persist pipeline.
type Import struct {
	ID           int64        `json:"id" db:"id"`
	UserID       string       `json:"user_id" db:"user_id"`
	ObjectKey    string       `json:"object_key" db:"object_key"`
	Status       ImportStatus `json:"status" db:"status"`
	ErrorMessage *string      `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// TranscriptRow is one parsed spreadsheet row before grouping into
// semester records.
type TranscriptRow struct {
	Year        string `json:"year"`
	Semester    string `json:"semester"`
	Course      string `json:"course"`
	Grade       string `json:"grade"`
	CreditHours int    `json:"credit_hours"`
}
