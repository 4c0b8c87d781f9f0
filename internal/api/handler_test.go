package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gpa-tracker-api/internal/config"
	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/internal/standings"
	pkgerrors "gpa-tracker-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	records []model.SemesterRecord
	imports map[int64]*model.Import
}

func (f *fakeRepo) ListRecords(_ context.Context, userID string) ([]model.SemesterRecord, error) {
	var out []model.SemesterRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllRecords(_ context.Context) ([]model.SemesterRecord, error) {
	return append([]model.SemesterRecord(nil), f.records...), nil
}

func (f *fakeRepo) UpsertRecord(_ context.Context, rec model.SemesterRecord) error {
	for i, r := range f.records {
		if r.UserID == rec.UserID && r.Year == rec.Year && r.Semester == rec.Semester {
			f.records[i] = rec
			return nil
		}
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRepo) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	return &model.Profile{UserID: userID, FullName: "Alice Example"}, nil
}
func (f *fakeRepo) UpsertProfile(_ context.Context, _ model.Profile) error { return nil }
func (f *fakeRepo) GetPreferences(_ context.Context, userID string) (*model.Preferences, error) {
	return &model.Preferences{UserID: userID, Theme: "system", Language: "en"}, nil
}
func (f *fakeRepo) UpsertPreferences(_ context.Context, _ model.Preferences) error { return nil }
func (f *fakeRepo) CreateImport(_ context.Context, _, _ string) (int64, error)     { return 1, nil }
func (f *fakeRepo) GetImport(_ context.Context, id int64) (*model.Import, error) {
	if imp, ok := f.imports[id]; ok {
		return imp, nil
	}
	return nil, pkgerrors.ErrImportNotFound
}
func (f *fakeRepo) UpdateImportStatus(_ context.Context, _ int64, _ model.ImportStatus, _ *string) error {
	return nil
}

func newTestRouter(repo *fakeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Name = "gpa-tracker-api"
	cfg.Redis.OverrideTTL = time.Hour

	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 10 * time.Millisecond})
	svc := standings.NewService(cfg, repo, redisClient)
	handler := NewHandler(repo, svc, nil, nil, cfg)

	router := gin.New()
	// Stand-in for the auth middleware: a fixed current user.
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "alice")
		c.Next()
	})
	router.POST("/gpa/calculate", handler.CalculateGPA)
	router.POST("/semesters", handler.SaveSemester)
	router.GET("/semesters", handler.ListSemesters)
	router.GET("/standings", handler.GetStandings)
	router.GET("/standings/rank", handler.GetRank)
	router.PUT("/standings/rank", handler.OverrideRank)
	router.GET("/presets/:year/:semester", handler.GetPresets)
	router.GET("/profile", handler.GetProfile)
	router.GET("/imports/:id", handler.GetImportStatus)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculateGPA(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	w := doJSON(t, router, http.MethodPost, "/gpa/calculate", model.CalculateRequest{
		Courses: []model.Course{
			{Name: "Calculus 1", Grade: "A", CreditHours: 3},
			{Name: "Physics 1", Grade: "B+", CreditHours: 4},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 26.0/7.0, resp.GPA, 1e-9)
	assert.Equal(t, 7, resp.TotalCredits)
	assert.Equal(t, 2, resp.CourseCount)
}

func TestCalculateGPAErrors(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	tests := []struct {
		name    string
		courses []model.Course
	}{
		{name: "empty list"},
		{name: "nothing valid", courses: []model.Course{{Name: "Calculus 1", CreditHours: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/gpa/calculate", model.CalculateRequest{Courses: tt.courses})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSaveSemesterEndpoint(t *testing.T) {
	repo := &fakeRepo{}
	router := newTestRouter(repo)

	w := doJSON(t, router, http.MethodPost, "/semesters", model.SaveSemesterRequest{
		Year:     "Freshman",
		Semester: "Fall",
		Courses: []model.Course{
			{Name: "Calculus 1", Grade: "A", CreditHours: 3},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "alice", repo.records[0].UserID)

	// Selection missing -> 400, nothing stored.
	w = doJSON(t, router, http.MethodPost, "/semesters", model.SaveSemesterRequest{
		Courses: []model.Course{{Name: "Calculus 1", Grade: "A", CreditHours: 3}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, repo.records, 1)
}

func TestGetRankNotFound(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	w := doJSON(t, router, http.MethodGet, "/standings/rank", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRank(t *testing.T) {
	repo := &fakeRepo{
		records: []model.SemesterRecord{
			{
				UserID: "alice", Year: "Freshman", Semester: "Fall", GPA: 4.0,
				Courses: []model.Course{{Name: "Calculus 1", Grade: "A", CreditHours: 3}},
			},
			{
				UserID: "bob", Year: "Freshman", Semester: "Fall", GPA: 3.0,
				Courses: []model.Course{{Name: "Calculus 1", Grade: "B", CreditHours: 3}},
			},
		},
	}
	router := newTestRouter(repo)

	w := doJSON(t, router, http.MethodGet, "/standings/rank", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ranking model.Ranking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranking))
	assert.Equal(t, 1, ranking.Rank)
	assert.Equal(t, 2, ranking.TotalUsers)
	assert.InDelta(t, 4.0, ranking.CumulativeGPA, 1e-9)
}

func TestOverrideRankRejected(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	w := doJSON(t, router, http.MethodPut, "/standings/rank", model.RankOverrideRequest{Rank: 5, TotalUsers: 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/standings/rank", model.RankOverrideRequest{Rank: 0, TotalUsers: 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPresets(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	w := doJSON(t, router, http.MethodGet, "/presets/Freshman/Fall", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Courses []model.PresetCourse `json:"courses"`
		Grades  []string             `json:"grades"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Courses, 7)
	assert.Equal(t, "A+", resp.Grades[0])

	w = doJSON(t, router, http.MethodGet, "/presets/Senior/Fall", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetImportStatus(t *testing.T) {
	repo := &fakeRepo{
		imports: map[int64]*model.Import{
			7: {ID: 7, UserID: "alice", Status: model.ImportStatusParsedOK},
			8: {ID: 8, UserID: "bob", Status: model.ImportStatusParsedOK},
		},
	}
	router := newTestRouter(repo)

	w := doJSON(t, router, http.MethodGet, "/imports/7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ImportStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(model.ImportStatusParsedOK), resp.Status)

	// Someone else's import reads as missing.
	w = doJSON(t, router, http.MethodGet, "/imports/8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/imports/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProfileEndpoint(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	w := doJSON(t, router, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile model.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.UserID)
}
