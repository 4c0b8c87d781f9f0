package api

import (
	"fmt"
	"net/http"
	"strconv"

	"gpa-tracker-api/internal/auth"
	"gpa-tracker-api/internal/config"
	"gpa-tracker-api/internal/db"
	"gpa-tracker-api/internal/gpa"
	"gpa-tracker-api/internal/logger"
	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/internal/queue"
	"gpa-tracker-api/internal/standings"
	"gpa-tracker-api/internal/storage"
	pkgerrors "gpa-tracker-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	repo      db.Repository
	standings *standings.Service
	producer  *queue.Producer
	storage   storage.Storage
	cfg       *config.Config
	log       zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	standingsService *standings.Service,
	producer *queue.Producer,
	store storage.Storage,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repo:      repo,
		standings: standingsService,
		producer:  producer,
		storage:   store,
		cfg:       cfg,
		log:       logger.Get(),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

// CalculateGPA is the pure calculation endpoint: no persistence, just the
// weighted average over the submitted courses.
func (h *Handler) CalculateGPA(c *gin.Context) {
	var req model.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := gpa.Semester(req.Courses)
	if err != nil {
		respondError(c, err)
		return
	}

	valid := gpa.ValidCourses(req.Courses)
	c.JSON(http.StatusOK, model.CalculateResponse{
		GPA:          result,
		TotalCredits: gpa.SemesterCredits(valid),
		CourseCount:  len(valid),
	})
}

func (h *Handler) SaveSemester(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req model.SaveSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec, err := h.standings.SaveSemester(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Mirror the post-save refresh: hand the client its new rank along
	// with the saved record.
	ranking, err := h.standings.Ranking(c.Request.Context(), userID)
	if err != nil && err != pkgerrors.ErrRankNotFound {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to recompute ranking after save")
	}

	c.JSON(http.StatusOK, gin.H{
		"record":  rec,
		"ranking": ranking,
	})
}

func (h *Handler) ListSemesters(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	records, err := h.repo.ListRecords(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list semester records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Newest first for the saved-semesters panel.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	c.JSON(http.StatusOK, gin.H{"semesters": records})
}

func (h *Handler) GetStandings(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	resp, err := h.standings.Standings(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to build standings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRank(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ranking, err := h.standings.Ranking(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranking)
}

func (h *Handler) OverrideRank(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req model.RankOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.standings.SetOverride(c.Request.Context(), userID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Rank set to #%d out of %d students", req.Rank, req.TotalUsers),
	})
}

func (h *Handler) ClearRankOverride(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.standings.ClearOverride(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to clear rank override")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rank override cleared"})
}

func (h *Handler) GetPresets(c *gin.Context) {
	year := c.Param("year")
	semester := c.Param("semester")

	courses, ok := model.PresetCourses[year][semester]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No preset courses for this semester"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"semester": semester,
		"courses":  courses,
		"grades":   gpa.GradeLetters,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.repo.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	profile.UserID = userID

	if err := h.repo.UpsertProfile(c.Request.Context(), profile); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (h *Handler) GetPreferences(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	prefs, err := h.repo.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to get preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func (h *Handler) UpdatePreferences(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var prefs model.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	switch prefs.Theme {
	case "light", "dark", "system":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be light, dark or system"})
		return
	}
	prefs.UserID = userID

	if err := h.repo.UpsertPreferences(c.Request.Context(), prefs); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated"})
}

// UploadImport accepts a transcript spreadsheet, parks it in object
// storage and queues it for the import worker.
func (h *Handler) UploadImport(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file upload is required"})
		return
	}

	if max := h.cfg.Workers.Import.MaxFileSize; max > 0 && fileHeader.Size > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("imports/%s/%s.xlsx", userID, uuid.NewString())
	if err := h.storage.Upload(c.Request.Context(), objectKey, file); err != nil {
		h.log.Error().Err(err).Str("object_key", objectKey).Msg("Failed to upload transcript")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	importID, err := h.repo.CreateImport(c.Request.Context(), userID, objectKey)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create import record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	job := model.ImportJob{ImportID: importID, UserID: userID, ObjectKey: objectKey}
	if err := h.producer.EnqueueImportJob(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Int64("import_id", importID).Msg("Failed to enqueue import job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import"})
		return
	}

	h.log.Info().
		Int64("import_id", importID).
		Str("user_id", userID).
		Str("object_key", objectKey).
		Msg("Import job enqueued")

	c.JSON(http.StatusAccepted, gin.H{
		"message":   "Import queued",
		"import_id": importID,
	})
}

func (h *Handler) GetImportStatus(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	importID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid import ID"})
		return
	}

	imp, err := h.repo.GetImport(c.Request.Context(), importID)
	if err != nil || imp.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Import not found"})
		return
	}

	c.JSON(http.StatusOK, model.ImportStatusResponse{
		ImportID:     imp.ID,
		Status:       string(imp.Status),
		ErrorMessage: imp.ErrorMessage,
		UpdatedAt:    imp.UpdatedAt,
	})
}

// respondError maps the aggregator's recoverable errors to 400s; anything
// else is an opaque store failure.
func respondError(c *gin.Context, err error) {
	switch err {
	case pkgerrors.ErrNoCourses,
		pkgerrors.ErrInvalidCourseData,
		pkgerrors.ErrMissingSelection,
		pkgerrors.ErrInvalidRankData:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case pkgerrors.ErrRankNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
