// Package client is a typed HTTP client for the workout API, used by the
// command line interface. It reuses the server's response types so the two
// sides cannot drift apart.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/service"
)

// APIError is a non-2xx response from the server, carrying the message from
// the response body's error field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuth reports whether err is an authentication or authorization failure.
func IsAuth(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsNotFound reports whether err is a missing-resource response.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a rejected-input response.
func IsValidation(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusBadRequest
}

// TransportError is a failure to reach the server at all, as opposed to a
// response the server rejected.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "could not reach server: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Client talks to one workout API server on behalf of one user.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New creates a client for the API at baseURL. Token may be empty for the
// auth endpoints; every other call requires it.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken replaces the bearer token, e.g. after a login.
func (c *Client) SetToken(token string) { c.token = token }

// AuthUser is the user summary returned by the auth endpoints.
type AuthUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// AuthResponse carries the session token and the authenticated user.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Login exchanges credentials for a session token. The returned token is
// also installed on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Register creates an account and returns a session token for it.
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", registerRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Exercises fetches the exercise catalog.
func (c *Client) Exercises(ctx context.Context) ([]service.ExerciseWithMedia, error) {
	var out []service.ExerciseWithMedia
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exercise fetches one catalog entry by id.
func (c *Client) Exercise(ctx context.Context, id string) (*service.ExerciseWithMedia, error) {
	var out service.ExerciseWithMedia
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workouts fetches the caller's workouts with exercise names resolved.
func (c *Client) Workouts(ctx context.Context) ([]domain.PopulatedWorkout, error) {
	var out []domain.PopulatedWorkout
	if err := c.do(ctx, http.MethodGet, "/api/v1/workouts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Workout fetches one of the caller's workouts by id.
func (c *Client) Workout(ctx context.Context, id string) (*domain.PopulatedWorkout, error) {
	var out domain.PopulatedWorkout
	if err := c.do(ctx, http.MethodGet, "/api/v1/workouts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkout saves a new workout definition.
func (c *Client) CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	var out domain.Workout
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts", workout, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWorkout removes a workout and its logs.
func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/workouts/"+url.PathEscape(id), nil, nil)
}

// ToggleFavorite flips the favorite flag and returns the updated workout.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (*domain.Workout, error) {
	var out domain.Workout
	if err := c.do(ctx, http.MethodPatch, "/api/v1/workouts/"+url.PathEscape(id)+"/favorite", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLog saves a finished workout log. This satisfies the session
// package's log store contract, so a live session can submit through it
// directly.
func (c *Client) CreateLog(ctx context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	var out domain.WorkoutLog
	if err := c.do(ctx, http.MethodPost, "/api/v1/workout-logs", log, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentLogs fetches the newest workout logs.
func (c *Client) RecentLogs(ctx context.Context) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	if err := c.do(ctx, http.MethodGet, "/api/v1/workout-logs/recent", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogsByDate fetches the logs of one calendar day. Date format is
// 2006-01-02.
func (c *Client) LogsByDate(ctx context.Context, date string) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	if err := c.do(ctx, http.MethodGet, "/api/v1/workout-logs/date/"+url.PathEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogQuery narrows and pages a log listing. Zero values are omitted and the
// server applies its defaults.
type LogQuery struct {
	StartDate string
	EndDate   string
	Page      int64
	Limit     int64
}

// QueryLogs fetches a page of workout logs.
func (c *Client) QueryLogs(ctx context.Context, q LogQuery) (*service.LogPage, error) {
	params := url.Values{}
	if q.StartDate != "" {
		params.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("endDate", q.EndDate)
	}
	if q.Page > 0 {
		params.Set("page", strconv.FormatInt(q.Page, 10))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.FormatInt(q.Limit, 10))
	}
	path := "/api/v1/workout-logs"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out service.LogPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLog removes one workout log.
func (c *Client) DeleteLog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/workout-logs/"+url.PathEscape(id), nil, nil)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
