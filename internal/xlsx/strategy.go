package xlsx

import (
	"context"

	"gpa-tracker-api/internal/model"
)

type ParsingStrategy interface {
	Parse(ctx context.Context, data []byte) ([]model.TranscriptRow, error)
	Validate(ctx context.Context, rows []model.TranscriptRow) error
}

type TranscriptStrategy struct {
	parser    *Parser
	validator *Validator
}

func NewTranscriptStrategy() ParsingStrategy {
	return &TranscriptStrategy{
		parser:    NewParser(),
		validator: NewValidator(),
	}
}

func (s *TranscriptStrategy) Parse(ctx context.Context, data []byte) ([]model.TranscriptRow, error) {
	return s.parser.Parse(ctx, data)
}

func (s *TranscriptStrategy) Validate(ctx context.Context, rows []model.TranscriptRow) error {
	return s.validator.Validate(ctx, rows)
}
