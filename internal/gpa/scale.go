// Package gpa implements the grade aggregation core: semester GPA from
// course entries, cumulative GPA across semesters, and cross-user ranking.
// Everything here is pure computation over already-fetched records.
package gpa

// GradePoints is the letter-grade scale. This is a 4.5-point scale: A+
// sits above the conventional 4.0 ceiling. The map is fixed at startup
// and must never be mutated.
var GradePoints = map[string]float64{
	"A+": 4.50,
	"A":  4.00,
	"B+": 3.50,
	"B":  3.00,
	"C+": 2.50,
	"C":  2.00,
	"D+": 1.50,
	"D":  1.00,
	"F":  0.00,
}

// GradeLetters lists the scale's letters from best to worst, for clients
// that render grade pickers.
var GradeLetters = []string{"A+", "A", "B+", "B", "C+", "C", "D+", "D", "F"}

// IsValidGrade reports whether letter is part of the grade scale.
func IsValidGrade(letter string) bool {
	_, ok := GradePoints[letter]
	return ok
}

// Performance buckets a GPA into the label shown on standings screens.
func Performance(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return "Excellent"
	case gpa >= 3.0:
		return "Good"
	case gpa >= 2.0:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
