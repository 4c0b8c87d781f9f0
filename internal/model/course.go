package model

// Course is a single graded course as entered by the student. Courses are
// not persisted on their own; they live inside a SemesterRecord.
type Course struct {
	Name        string `json:"name"`
	Grade       string `json:"grade"`
	CreditHours int    `json:"credit_hours"`
}

// PresetCourse is a course template offered for a known (year, semester)
// pair, with the grade left for the student to fill in.
type PresetCourse struct {
	Name        string `json:"name"`
	CreditHours int    `json:"credit_hours"`
}
