package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCourses is returned when a GPA calculation is requested with
	// an empty course list.
	ErrNoCourses = errors.New("no courses added")

	// ErrInvalidCourseData is returned when courses were supplied but none
	// passed validation.
	ErrInvalidCourseData = errors.New("no valid course data")

	// ErrMissingSelection is returned when a save is attempted without a
	// year and semester selected.
	ErrMissingSelection = errors.New("year and semester are required")

	// ErrRankNotFound is returned when the current user has no records in
	// the ranking population.
	ErrRankNotFound = errors.New("no ranking available")

	ErrImportNotFound    = errors.New("import not found")
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrInvalidRankData   = errors.New("invalid rank data")
)

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}
