package model

// PresetCourses lists the standard curriculum for the (year, semester)
// pairs the app knows about. Grades are left empty for the student.
var PresetCourses = map[string]map[string][]PresetCourse{
	"Freshman": {
		"Fall": {
			{Name: "Academic English 1", CreditHours: 2},
			{Name: "Academic English Reading", CreditHours: 2},
			{Name: "Calculus 1", CreditHours: 3},
			{Name: "Introduction to IT", CreditHours: 3},
			{Name: "Physics 1", CreditHours: 3},
			{Name: "Physics Experiments 1", CreditHours: 1},
			{Name: "Object Oriented Programming 1", CreditHours: 3},
		},
		"Spring": {
			{Name: "Academic English 2", CreditHours: 2},
			{Name: "Academic English Writing", CreditHours: 2},
			{Name: "Calculus 2", CreditHours: 3},
			{Name: "Creative Engineering Design", CreditHours: 3},
			{Name: "Physics 2", CreditHours: 3},
			{Name: "Physics Experiments 2", CreditHours: 1},
			{Name: "Object Oriented Programming 2", CreditHours: 3},
		},
	},
	"Sophomore": {
		"Fall": {
			{Name: "Academic English 3", CreditHours: 2},
			{Name: "Basic Korean 1", CreditHours: 2},
			{Name: "Linear Algebra", CreditHours: 3},
			{Name: "Engineering Maths", CreditHours: 3},
			{Name: "Application Programming in Java", CreditHours: 3},
			{Name: "Data Structure", CreditHours: 3},
			{Name: "Circuit and Lab", CreditHours: 3},
		},
		"Spring": {
			{Name: "Academic English 4", CreditHours: 2},
			{Name: "Basic Korean 2", CreditHours: 2},
			{Name: "Discrete Mathematics", CreditHours: 3},
			{Name: "Digital Logic & Circuit", CreditHours: 3},
			{Name: "System Programming", CreditHours: 3},
			{Name: "Computer Architecture", CreditHours: 3},
			{Name: "History 1", CreditHours: 1},
		},
	},
}
