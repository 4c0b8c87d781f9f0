package gpa

import "gpa-tracker-api/internal/model"

// accumulate folds one record into a running (points, credits) pair. The
// stored gpa is a snapshot; credits are re-derived from the stored courses
// so the record stays the single source of truth.
func accumulate(points float64, credits int, rec model.SemesterRecord) (float64, int) {
	semCredits := SemesterCredits(rec.Courses)
	return points + rec.GPA*float64(semCredits), credits + semCredits
}

// Cumulative computes the credit-weighted GPA across all of a user's
// semester records. A user with zero records gets 0, which is a defined
// default rather than an error.
func Cumulative(records []model.SemesterRecord) float64 {
	var totalPoints float64
	totalCredits := 0
	for _, rec := range records {
		totalPoints, totalCredits = accumulate(totalPoints, totalCredits, rec)
	}
	if totalCredits == 0 {
		return 0
	}
	return totalPoints / float64(totalCredits)
}
