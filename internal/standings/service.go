// Package standings combines the record store with the gpa core: saving
// semesters, the per-semester history, leaderboard rank, and the manual
// rank override.
package standings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gpa-tracker-api/internal/config"
	"gpa-tracker-api/internal/db"
	"gpa-tracker-api/internal/gpa"
	"gpa-tracker-api/internal/logger"
	"gpa-tracker-api/internal/model"
	pkgerrors "gpa-tracker-api/pkg/errors"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

type Service struct {
	cfg   *config.Config
	repo  db.Repository
	redis *redis.Client
	log   zerolog.Logger
}

func NewService(cfg *config.Config, repo db.Repository, redisClient *redis.Client) *Service {
	return &Service{
		cfg:   cfg,
		repo:  repo,
		redis: redisClient,
		log:   logger.Get(),
	}
}

// SaveSemester validates the selection, computes the GPA server-side and
// upserts the record. Only courses that passed the validity filter are
// stored; the stored gpa is a snapshot of this computation.
func (s *Service) SaveSemester(ctx context.Context, userID string, req model.SaveSemesterRequest) (*model.SemesterRecord, error) {
	if strings.TrimSpace(req.Year) == "" || strings.TrimSpace(req.Semester) == "" {
		return nil, pkgerrors.ErrMissingSelection
	}

	semesterGPA, err := gpa.Semester(req.Courses)
	if err != nil {
		return nil, err
	}

	rec := model.SemesterRecord{
		UserID:   userID,
		Year:     req.Year,
		Semester: req.Semester,
		GPA:      semesterGPA,
		Courses:  gpa.ValidCourses(req.Courses),
	}

	if err := s.repo.UpsertRecord(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("year", req.Year).
		Str("semester", req.Semester).
		Float64("gpa", semesterGPA).
		Msg("Semester record saved")

	return &rec, nil
}

// Ranking recomputes the full leaderboard and locates the user in it. A
// stored override, when present and still live, replaces the displayed
// rank and population but never the computed cumulative GPA.
func (s *Service) Ranking(ctx context.Context, userID string) (*model.Ranking, error) {
	all, err := s.repo.ListAllRecords(ctx)
	if err != nil {
		return nil, err
	}

	ranking, err := gpa.Rank(all, userID)
	if err != nil {
		return nil, err
	}

	if override := s.getOverride(ctx, userID); override != nil {
		ranking.Rank = override.Rank
		ranking.TotalUsers = override.TotalUsers
	}

	return &ranking, nil
}

// Standings builds the history table: every saved semester in save order
// with the cumulative GPA over the records up to that point, plus the
// user's ranking when one exists.
func (s *Service) Standings(ctx context.Context, userID string) (*model.StandingsResponse, error) {
	records, err := s.repo.ListRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &model.StandingsResponse{
		Semesters: make([]model.SemesterStanding, 0, len(records)),
	}

	for i, rec := range records {
		running := gpa.Cumulative(records[:i+1])
		resp.Semesters = append(resp.Semesters, model.SemesterStanding{
			Year:          rec.Year,
			Semester:      rec.Semester,
			GPA:           rec.GPA,
			CumulativeGPA: running,
			CourseCount:   len(rec.Courses),
			TotalCredits:  gpa.SemesterCredits(rec.Courses),
			Performance:   gpa.Performance(rec.GPA),
		})
	}

	if len(records) > 0 {
		resp.Overall = gpa.Performance(gpa.Cumulative(records))

		ranking, err := s.Ranking(ctx, userID)
		if err != nil && err != pkgerrors.ErrRankNotFound {
			return nil, err
		}
		resp.Ranking = ranking
	}

	return resp, nil
}

// SetOverride stores a manual rank override for the user. Overrides are
// session-scoped (Redis TTL), are never written to the record store, and
// do not participate in the computed ranking.
func (s *Service) SetOverride(ctx context.Context, userID string, req model.RankOverrideRequest) error {
	if err := gpa.ValidateOverride(req.Rank, req.TotalUsers); err != nil {
		return err
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	return s.redis.Set(ctx, overrideKey(userID), data, s.cfg.Redis.OverrideTTL).Err()
}

func (s *Service) ClearOverride(ctx context.Context, userID string) error {
	return s.redis.Del(ctx, overrideKey(userID)).Err()
}

func (s *Service) getOverride(ctx context.Context, userID string) *model.RankOverrideRequest {
	data, err := s.redis.Get(ctx, overrideKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to read rank override")
		}
		return nil
	}

	var override model.RankOverrideRequest
	if err := json.Unmarshal(data, &override); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Discarding malformed rank override")
		return nil
	}

	return &override
}

func overrideKey(userID string) string {
	return fmt.Sprintf("rank:override:%s", userID)
}
