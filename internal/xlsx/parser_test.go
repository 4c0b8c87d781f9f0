package xlsx

import (
	"context"
	"testing"

	"gpa-tracker-api/internal/model"
	pkgerrors "gpa-tracker-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sheetBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"Year", "Semester", "Course", "Grade", "Credit_Hours"},
		{"Freshman", "Fall", "Calculus 1", "a", 3},
		{"Freshman", "Spring", "Calculus 2", "B+", 3},
	})

	rows, err := NewParser().Parse(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, model.TranscriptRow{
		Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "A", CreditHours: 3,
	}, rows[0])
	assert.Equal(t, "B+", rows[1].Grade)
}

func TestParseMissingColumn(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"Year", "Semester", "Course", "Grade"},
		{"Freshman", "Fall", "Calculus 1", "A"},
	})

	_, err := NewParser().Parse(context.Background(), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credit_hours")
}

func TestParseHeaderOnly(t *testing.T) {
	data := sheetBytes(t, [][]interface{}{
		{"Year", "Semester", "Course", "Grade", "Credit_Hours"},
	})

	_, err := NewParser().Parse(context.Background(), data)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidFileFormat)
}

func TestParseNotASpreadsheet(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte("definitely not xlsx"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	good := []model.TranscriptRow{
		{Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "A+", CreditHours: 3},
	}
	assert.NoError(t, v.Validate(ctx, good))

	assert.ErrorIs(t, v.Validate(ctx, nil), pkgerrors.ErrInvalidCourseData)

	tests := []struct {
		name string
		row  model.TranscriptRow
	}{
		{
			name: "grade off the scale",
			row:  model.TranscriptRow{Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "E", CreditHours: 3},
		},
		{
			name: "zero credits",
			row:  model.TranscriptRow{Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "A", CreditHours: 0},
		},
		{
			name: "too many credits",
			row:  model.TranscriptRow{Year: "Freshman", Semester: "Fall", Course: "Calculus 1", Grade: "A", CreditHours: 11},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, []model.TranscriptRow{tt.row})
			var vErr pkgerrors.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}
