// Package xlsx parses transcript spreadsheets into course rows that the
// import worker turns into semester records.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/pkg/errors"

	"github.com/xuri/excelize/v2"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the first worksheet. The header row must contain the
// columns year, semester, course, grade and credit_hours (any order,
// case-insensitive).
func (p *Parser) Parse(ctx context.Context, data []byte) ([]model.TranscriptRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrInvalidFileFormat
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 { // Header + at least one data row
		return nil, errors.ErrInvalidFileFormat
	}

	header := rows[0]
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	requiredColumns := []string{"year", "semester", "course", "grade", "credit_hours"}
	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var parsed []model.TranscriptRow
	for i, row := range rows[1:] { // Skip header
		if len(row) < len(requiredColumns) {
			continue // Skip incomplete rows
		}

		tr, err := p.parseRow(row, columnMap)
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+2, err)
		}

		parsed = append(parsed, *tr)
	}

	return parsed, nil
}

func (p *Parser) parseRow(row []string, columnMap map[string]int) (*model.TranscriptRow, error) {
	getValue := func(colName string) string {
		if idx, exists := columnMap[colName]; exists && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	year := getValue("year")
	if year == "" {
		return nil, fmt.Errorf("year is required")
	}

	semester := getValue("semester")
	if semester == "" {
		return nil, fmt.Errorf("semester is required")
	}

	course := getValue("course")
	if course == "" {
		return nil, fmt.Errorf("course is required")
	}

	grade := strings.ToUpper(getValue("grade"))
	if grade == "" {
		return nil, fmt.Errorf("grade is required")
	}

	creditsStr := getValue("credit_hours")
	if creditsStr == "" {
		return nil, fmt.Errorf("credit_hours is required")
	}

	credits, err := strconv.Atoi(creditsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid credit_hours value: %s", creditsStr)
	}

	return &model.TranscriptRow{
		Year:        year,
		Semester:    semester,
		Course:      course,
		Grade:       grade,
		CreditHours: credits,
	}, nil
}
