package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ironlog/workout-app/internal/domain"
)

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "jo@example.com" {
			t.Errorf("email = %q, want jo@example.com", body["email"])
		}
		json.NewEncoder(w).Encode(AuthResponse{
			Token: "tok-123",
			User:  AuthUser{ID: "u1", FirstName: "Jo", Email: "jo@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	resp, err := c.Login(context.Background(), "jo@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("token = %q, want tok-123", resp.Token)
	}
	if c.token != "tok-123" {
		t.Errorf("client token not installed: %q", c.token)
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q, want Bearer tok-123", got)
		}
		json.NewEncoder(w).Encode([]domain.WorkoutLog{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	if _, err := c.RecentLogs(context.Background()); err != nil {
		t.Fatalf("recentLogs: %v", err)
	}
}

func TestCreateLogRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/workout-logs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var log domain.WorkoutLog
		if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if log.WorkoutName != "Push Day" || log.Duration != 45 {
			t.Errorf("log = %+v", log)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(log)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	saved, err := c.CreateLog(context.Background(), &domain.WorkoutLog{
		WorkoutID:   "w1",
		WorkoutName: "Push Day",
		Duration:    45,
		Exercises: []domain.LogExercise{
			{Name: "Bench Press", Sets: []domain.LogSet{{Reps: 8, Weight: 60}}},
		},
	})
	if err != nil {
		t.Fatalf("createLog: %v", err)
	}
	if saved.WorkoutName != "Push Day" {
		t.Errorf("workoutName = %q, want Push Day", saved.WorkoutName)
	}
}

func TestQueryLogsEncodesParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("startDate") != "2025-03-01" || q.Get("endDate") != "2025-03-31" {
			t.Errorf("date range = %q..%q", q.Get("startDate"), q.Get("endDate"))
		}
		if q.Get("page") != "2" || q.Get("limit") != "5" {
			t.Errorf("paging = page %q limit %q", q.Get("page"), q.Get("limit"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"workoutLogs": []domain.WorkoutLog{},
			"total":       12,
			"currentPage": 2,
			"totalPages":  3,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	page, err := c.QueryLogs(context.Background(), LogQuery{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Page:      2,
		Limit:     5,
	})
	if err != nil {
		t.Fatalf("queryLogs: %v", err)
	}
	if page.Total != 12 || page.TotalPages != 3 {
		t.Errorf("page = %+v", page)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Login(context.Background(), "jo@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Message != "invalid email or password" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if !IsAuth(err) {
		t.Error("IsAuth = false, want true")
	}
	if IsNotFound(err) || IsValidation(err) {
		t.Error("error misclassified")
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		status  int
		isAuth  bool
		is404   bool
		isValid bool
	}{
		{http.StatusUnauthorized, true, false, false},
		{http.StatusForbidden, true, false, false},
		{http.StatusNotFound, false, true, false},
		{http.StatusBadRequest, false, false, true},
		{http.StatusInternalServerError, false, false, false},
	}
	for _, tt := range tests {
		err := error(&APIError{StatusCode: tt.status})
		if IsAuth(err) != tt.isAuth {
			t.Errorf("IsAuth(%d) = %v, want %v", tt.status, IsAuth(err), tt.isAuth)
		}
		if IsNotFound(err) != tt.is404 {
			t.Errorf("IsNotFound(%d) = %v, want %v", tt.status, IsNotFound(err), tt.is404)
		}
		if IsValidation(err) != tt.isValid {
			t.Errorf("IsValidation(%d) = %v, want %v", tt.status, IsValidation(err), tt.isValid)
		}
	}
}

func TestTransportError(t *testing.T) {
	// A closed server makes the connection itself fail.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.RecentLogs(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*TransportError); !ok {
		t.Errorf("err = %T, want *TransportError", err)
	}
}
