package gpa

import (
	"strings"

	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/pkg/errors"
)

// ValidCourses filters courses down to the entries that count toward a
// GPA: non-blank name, a grade on the scale, and positive credit hours.
// Zero-credit courses are dropped entirely rather than zero-weighted.
func ValidCourses(courses []model.Course) []model.Course {
	valid := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		if !IsValidGrade(c.Grade) {
			continue
		}
		if c.CreditHours <= 0 {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// SemesterCredits sums the credit hours of the given courses. Stored
// record courses are assumed already filtered, so no re-validation here.
func SemesterCredits(courses []model.Course) int {
	total := 0
	for _, c := range courses {
		total += c.CreditHours
	}
	return total
}

// Semester computes the credit-weighted GPA of one semester's courses.
// An empty input fails with ErrNoCourses; a non-empty input where nothing
// passes the filter fails with ErrInvalidCourseData. The result is in
// [0.0, 4.5]; display rounding is up to the caller.
func Semester(courses []model.Course) (float64, error) {
	if len(courses) == 0 {
		return 0, errors.ErrNoCourses
	}

	valid := ValidCourses(courses)
	if len(valid) == 0 {
		return 0, errors.ErrInvalidCourseData
	}

	var totalPoints float64
	totalCredits := 0
	for _, c := range valid {
		totalPoints += GradePoints[c.Grade] * float64(c.CreditHours)
		totalCredits += c.CreditHours
	}

	return totalPoints / float64(totalCredits), nil
}
