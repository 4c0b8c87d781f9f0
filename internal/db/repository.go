package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"gpa-tracker-api/internal/model"
	pkgerrors "gpa-tracker-api/pkg/errors"
)

// Repository is the record store: semester records keyed by
// (user_id, year, semester), plus profile, preferences and import rows.
type Repository interface {
	ListRecords(ctx context.Context, userID string) ([]model.SemesterRecord, error)
	ListAllRecords(ctx context.Context) ([]model.SemesterRecord, error)
	UpsertRecord(ctx context.Context, rec model.SemesterRecord) error

	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, p model.Profile) error

	GetPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	UpsertPreferences(ctx context.Context, p model.Preferences) error

	CreateImport(ctx context.Context, userID, objectKey string) (int64, error)
	GetImport(ctx context.Context, id int64) (*model.Import, error)
	UpdateImportStatus(ctx context.Context, id int64, status model.ImportStatus, errorMessage *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const recordColumns = `id, user_id, year, semester, gpa, courses, created_at, updated_at`

func scanRecord(scan func(dest ...interface{}) error) (model.SemesterRecord, error) {
	var rec model.SemesterRecord
	var coursesJSON []byte
	err := scan(&rec.ID, &rec.UserID, &rec.Year, &rec.Semester, &rec.GPA,
		&coursesJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return rec, err
	}
	if len(coursesJSON) > 0 {
		if err := json.Unmarshal(coursesJSON, &rec.Courses); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func (r *repository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]model.SemesterRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.SemesterRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *repository) ListRecords(ctx context.Context, userID string) ([]model.SemesterRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM semester_records
			  WHERE user_id = ? ORDER BY created_at ASC`
	return r.queryRecords(ctx, query, userID)
}

func (r *repository) ListAllRecords(ctx context.Context) ([]model.SemesterRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM semester_records`
	return r.queryRecords(ctx, query)
}

func (r *repository) UpsertRecord(ctx context.Context, rec model.SemesterRecord) error {
	coursesJSON, err := json.Marshal(rec.Courses)
	if err != nil {
		return err
	}

	// Last write wins on the (user_id, year, semester) unique key.
	query := `INSERT INTO semester_records (user_id, year, semester, gpa, courses, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())
			  ON DUPLICATE KEY UPDATE gpa = VALUES(gpa), courses = VALUES(courses), updated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query, rec.UserID, rec.Year, rec.Semester, rec.GPA, coursesJSON)
	return err
}

func (r *repository) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	query := `SELECT user_id, full_name, student_email, department, student_id, updated_at
			  FROM profiles WHERE user_id = ?`

	var p model.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.StudentEmail, &p.Department, &p.StudentID, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return &model.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpsertProfile(ctx context.Context, p model.Profile) error {
	query := `INSERT INTO profiles (user_id, full_name, student_email, department, student_id, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE full_name = VALUES(full_name), student_email = VALUES(student_email),
			  department = VALUES(department), student_id = VALUES(student_id), updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, p.UserID, p.FullName, p.StudentEmail, p.Department, p.StudentID)
	return err
}

func (r *repository) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	query := `SELECT user_id, theme, language, updated_at FROM preferences WHERE user_id = ?`

	var p model.Preferences
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Theme, &p.Language, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		// Defaults for a user who never saved settings.
		return &model.Preferences{UserID: userID, Theme: "system", Language: "en"}, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpsertPreferences(ctx context.Context, p model.Preferences) error {
	query := `INSERT INTO preferences (user_id, theme, language, updated_at)
			  VALUES (?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE theme = VALUES(theme), language = VALUES(language), updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, p.UserID, p.Theme, p.Language)
	return err
}

func (r *repository) CreateImport(ctx context.Context, userID, objectKey string) (int64, error) {
	query := `INSERT INTO imports (user_id, object_key, status, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	result, err := r.db.ExecContext(ctx, query, userID, objectKey, model.ImportStatusUploaded)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *repository) GetImport(ctx context.Context, id int64) (*model.Import, error) {
	query := `SELECT id, user_id, object_key, status, error_message, created_at, updated_at
			  FROM imports WHERE id = ?`

	var imp model.Import
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&imp.ID, &imp.UserID, &imp.ObjectKey, &imp.Status,
		&imp.ErrorMessage, &imp.CreatedAt, &imp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, pkgerrors.ErrImportNotFound
	}
	if err != nil {
		return nil, err
	}

	return &imp, nil
}

func (r *repository) UpdateImportStatus(ctx context.Context, id int64, status model.ImportStatus, errorMessage *string) error {
	query := `UPDATE imports SET status = ?, error_message = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, errorMessage, id)
	return err
}
