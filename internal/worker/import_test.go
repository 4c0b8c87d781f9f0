package worker

import (
	"testing"

	"gpa-tracker-api/internal/model"
	pkgerrors "gpa-tracker-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecords(t *testing.T) {
	rows := []model.TranscriptRow{
		{Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "A", CreditHours: 3},
		{Year: "Freshman", Semester: "Fall", Course: "Physics 1", Grade: "B+", CreditHours: 4},
		{Year: "Freshman", Semester: "Spring", Course: "Calculus 2", Grade: "A+", CreditHours: 3},
	}

	records, err := buildRecords("alice", rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	fall := records[0]
	assert.Equal(t, "alice", fall.UserID)
	assert.Equal(t, "Freshman", fall.Year)
	assert.Equal(t, "Fall", fall.Semester)
	assert.Len(t, fall.Courses, 2)
	assert.InDelta(t, 26.0/7.0, fall.GPA, 1e-9)

	spring := records[1]
	assert.Equal(t, "Spring", spring.Semester)
	assert.InDelta(t, 4.5, spring.GPA, 1e-9)
}

func TestBuildRecordsGroupOrderFollowsSheet(t *testing.T) {
	rows := []model.TranscriptRow{
		{Year: "Sophomore", Semester: "Spring", Course: "History 1", Grade: "B", CreditHours: 1},
		{Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "A", CreditHours: 3},
		{Year: "Sophomore", Semester: "Spring", Course: "System Programming", Grade: "A", CreditHours: 3},
	}

	records, err := buildRecords("alice", rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Sophomore", records[0].Year)
	assert.Equal(t, "Freshman", records[1].Year)
	assert.Len(t, records[0].Courses, 2)
}

func TestBuildRecordsRejectsUnusableSemester(t *testing.T) {
	// The validator catches bad grades before this point; a semester whose
	// rows all fail the course filter still must not produce a record.
	rows := []model.TranscriptRow{
		{Year: "Freshman", Semester: "Fall", Course: "   ", Grade: "A", CreditHours: 3},
	}

	_, err := buildRecords("alice", rows)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidCourseData)
}
