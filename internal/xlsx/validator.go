package xlsx

import (
	"context"

	"gpa-tracker-api/internal/gpa"
	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/pkg/errors"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(ctx context.Context, rows []model.TranscriptRow) error {
	if len(rows) == 0 {
		return errors.ErrInvalidCourseData
	}

	for _, row := range rows {
		if err := v.validateRow(row); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateRow(row model.TranscriptRow) error {
	if !gpa.IsValidGrade(row.Grade) {
		return errors.ValidationError{
			Field:   "grade",
			Value:   row.Grade,
			Message: "must be a letter grade on the scale (A+ through F)",
		}
	}

	if row.CreditHours < 1 || row.CreditHours > 10 {
		return errors.ValidationError{
			Field:   "credit_hours",
			Value:   row.CreditHours,
			Message: "must be between 1 and 10",
		}
	}

	if len(row.Course) > 100 {
		return errors.ValidationError{
			Field:   "course",
			Value:   row.Course,
			Message: "course name too long",
		}
	}

	if len(row.Year) > 20 || len(row.Semester) > 20 {
		return errors.ValidationError{
			Field:   "semester",
			Value:   row.Year + " " + row.Semester,
			Message: "year and semester must be short labels",
		}
	}

	return nil
}
