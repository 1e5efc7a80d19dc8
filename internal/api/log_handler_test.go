package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeLogService records calls and returns canned results.
type fakeLogService struct {
	createErr  error
	created    *domain.WorkoutLog
	recent     []domain.WorkoutLog
	byDate     []domain.WorkoutLog
	lastFilter repository.LogFilter
	page       *service.LogPage
	deleteErr  error
}

func (f *fakeLogService) CreateLog(_ context.Context, _ primitive.ObjectID, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = log
	return log, nil
}

func (f *fakeLogService) GetRecent(_ context.Context, _ primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return f.recent, nil
}

func (f *fakeLogService) GetByDate(_ context.Context, _ primitive.ObjectID, _ time.Time) ([]domain.WorkoutLog, error) {
	return f.byDate, nil
}

func (f *fakeLogService) Query(_ context.Context, _ primitive.ObjectID, filter repository.LogFilter) (*service.LogPage, error) {
	f.lastFilter = filter
	return f.page, nil
}

func (f *fakeLogService) GetByID(_ context.Context, _, _ primitive.ObjectID) (*domain.WorkoutLog, error) {
	return nil, service.ErrLogNotFound
}

func (f *fakeLogService) DeleteLog(_ context.Context, _, _ primitive.ObjectID) error {
	return f.deleteErr
}

// logRouter wires the log routes behind auth, like the real route setup.
func logRouter(svc service.LogService) *gin.Engine {
	router := gin.New()
	handler := NewLogHandler(svc)
	group := router.Group("/api/v1/workout-logs")
	group.Use(AuthMiddleware(testSecret))
	{
		group.POST("", handler.CreateLog)
		group.GET("", handler.QueryLogs)
		group.GET("/recent", handler.GetRecent)
		group.GET("/date/:date", handler.GetByDate)
		group.GET("/:id", handler.GetLog)
		group.DELETE("/:id", handler.DeleteLog)
	}
	return router
}

func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "652f1a9b8f1b2c3d4e5f6a7b", false, time.Hour))
	return req
}

func TestCreateLogEndpoint(t *testing.T) {
	svc := &fakeLogService{}
	router := logRouter(svc)

	log := domain.WorkoutLog{
		WorkoutID:   "full-body-1",
		WorkoutName: "Full Body Workout",
		StartTime:   time.Now().Add(-45 * time.Minute),
		EndTime:     time.Now(),
		Duration:    45,
		Exercises: []domain.LogExercise{
			{Name: "Squats", Sets: []domain.LogSet{{Reps: 10, Weight: 80}}},
		},
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/workout-logs", log))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.created == nil || svc.created.WorkoutName != "Full Body Workout" {
		t.Errorf("service saw log %+v", svc.created)
	}
}

func TestCreateLogEndpointValidationFailure(t *testing.T) {
	svc := &fakeLogService{
		createErr: &service.LogValidationError{Problems: []string{"workout log needs at least one exercise"}},
	}
	router := logRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/workout-logs", domain.WorkoutLog{
		WorkoutID:   "w1",
		WorkoutName: "Empty",
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error message missing from response")
	}
}

func TestCreateLogEndpointRequiresAuth(t *testing.T) {
	router := logRouter(&fakeLogService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workout-logs", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestGetRecentEndpoint(t *testing.T) {
	svc := &fakeLogService{
		recent: []domain.WorkoutLog{
			{WorkoutName: "Push Day", Duration: 45},
			{WorkoutName: "Pull Day", Duration: 50},
		},
	}
	router := logRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/v1/workout-logs/recent", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var logs []domain.WorkoutLog
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(logs) != 2 || logs[0].WorkoutName != "Push Day" {
		t.Errorf("logs = %+v", logs)
	}
}

func TestGetByDateEndpointRejectsBadDate(t *testing.T) {
	router := logRouter(&fakeLogService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/v1/workout-logs/date/10-03-2025", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestQueryLogsEndpointParsesFilter(t *testing.T) {
	svc := &fakeLogService{
		page: &service.LogPage{WorkoutLogs: []domain.WorkoutLog{}, Total: 0, CurrentPage: 2, TotalPages: 0},
	}
	router := logRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet,
		"/api/v1/workout-logs?startDate=2025-03-01&endDate=2025-03-31&page=2&limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if svc.lastFilter.Page != 2 || svc.lastFilter.Limit != 5 {
		t.Errorf("filter paging = %+v", svc.lastFilter)
	}
	wantStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !svc.lastFilter.Start.Equal(wantStart) {
		t.Errorf("filter start = %v, want %v", svc.lastFilter.Start, wantStart)
	}
	// End is pushed to the last instant of the end day so the range is
	// inclusive.
	if got := svc.lastFilter.End; got.Day() != 31 || got.Hour() != 23 {
		t.Errorf("filter end = %v, want end of March 31", got)
	}
}

func TestQueryLogsEndpointRejectsBadPaging(t *testing.T) {
	router := logRouter(&fakeLogService{})

	for _, target := range []string{
		"/api/v1/workout-logs?page=0",
		"/api/v1/workout-logs?limit=-3",
		"/api/v1/workout-logs?startDate=March",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestDeleteLogEndpoint(t *testing.T) {
	svc := &fakeLogService{}
	router := logRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/api/v1/workout-logs/652f1a9b8f1b2c3d4e5f6a7c", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	svc.deleteErr = service.ErrLogNotFound
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/api/v1/workout-logs/652f1a9b8f1b2c3d4e5f6a7c", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
