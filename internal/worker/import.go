package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gpa-tracker-api/internal/config"
	"gpa-tracker-api/internal/db"
	"gpa-tracker-api/internal/gpa"
	"gpa-tracker-api/internal/logger"
	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/internal/queue"
	"gpa-tracker-api/internal/storage"
	"gpa-tracker-api/internal/xlsx"

	"github.com/rs/zerolog"
)

// ImportWorker consumes transcript import jobs: download the spreadsheet,
// parse and validate it, fold the rows into semester records and upsert
// them for the owning user.
type ImportWorker struct {
	cfg        *config.Config
	repo       db.Repository
	storage    storage.Storage
	parser     xlsx.ParsingStrategy
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewImportWorker(
	cfg *config.Config,
	repo db.Repository,
	store storage.Storage,
	redisClient *queue.RedisClient,
) *ImportWorker {
	return &ImportWorker{
		cfg:        cfg,
		repo:       repo,
		storage:    store,
		parser:     xlsx.NewTranscriptStrategy(),
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Import.Count),
		log:        logger.Get(),
	}
}

func (w *ImportWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting import worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeImportQueue(ctx, w.handleMessage)
}

func (w *ImportWorker) Stop() {
	w.log.Info().Msg("Stopping import worker")
	w.workerPool.Stop()
}

func (w *ImportWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.ImportJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal import job")
		return err
	}

	w.log.Info().Int64("import_id", job.ImportID).Str("user_id", job.UserID).Msg("Processing import job")

	w.workerPool.Submit(func(ctx context.Context) error {
		return w.processImport(ctx, job)
	})

	return nil
}

func (w *ImportWorker) processImport(ctx context.Context, job model.ImportJob) error {
	log := w.log.With().Int64("import_id", job.ImportID).Logger()

	rows, err := w.fetchAndParse(ctx, job)
	if err != nil {
		log.Error().Err(err).Msg("Import failed")
		errorMsg := err.Error()
		w.repo.UpdateImportStatus(ctx, job.ImportID, model.ImportStatusParsedFail, &errorMsg)
		return err
	}

	records, err := buildRecords(job.UserID, rows)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build semester records")
		errorMsg := err.Error()
		w.repo.UpdateImportStatus(ctx, job.ImportID, model.ImportStatusParsedFail, &errorMsg)
		return err
	}

	for _, rec := range records {
		if err := w.repo.UpsertRecord(ctx, rec); err != nil {
			log.Error().Err(err).Str("year", rec.Year).Str("semester", rec.Semester).Msg("Failed to upsert record")
			errorMsg := err.Error()
			w.repo.UpdateImportStatus(ctx, job.ImportID, model.ImportStatusParsedFail, &errorMsg)
			return err
		}
	}

	if err := w.repo.UpdateImportStatus(ctx, job.ImportID, model.ImportStatusParsedOK, nil); err != nil {
		log.Error().Err(err).Msg("Failed to update import status")
		return err
	}

	// The transcript is no longer needed once its records are stored.
	if err := w.storage.Delete(ctx, job.ObjectKey); err != nil {
		log.Warn().Err(err).Str("object_key", job.ObjectKey).Msg("Failed to delete imported file")
	}

	log.Info().Int("semester_count", len(records)).Msg("Import processed successfully")
	return nil
}

func (w *ImportWorker) fetchAndParse(ctx context.Context, job model.ImportJob) ([]model.TranscriptRow, error) {
	reader, err := w.storage.Download(ctx, job.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	rows, err := w.parser.Parse(ctx, data)
	if err != nil {
		return nil, err
	}

	if err := w.parser.Validate(ctx, rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// buildRecords groups transcript rows by (year, semester) and runs each
// group through the semester GPA computation. Group order follows first
// appearance in the sheet so created_at ordering matches the transcript.
func buildRecords(userID string, rows []model.TranscriptRow) ([]model.SemesterRecord, error) {
	type key struct{ year, semester string }

	grouped := make(map[key][]model.Course)
	order := make([]key, 0)
	for _, row := range rows {
		k := key{year: row.Year, semester: row.Semester}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], model.Course{
			Name:        row.Course,
			Grade:       row.Grade,
			CreditHours: row.CreditHours,
		})
	}

	records := make([]model.SemesterRecord, 0, len(order))
	for _, k := range order {
		courses := grouped[k]
		semesterGPA, err := gpa.Semester(courses)
		if err != nil {
			return nil, fmt.Errorf("semester %s %s: %w", k.year, k.semester, err)
		}

		records = append(records, model.SemesterRecord{
			UserID:   userID,
			Year:     k.year,
			Semester: k.semester,
			GPA:      semesterGPA,
			Courses:  gpa.ValidCourses(courses),
		})
	}

	return records, nil
}
