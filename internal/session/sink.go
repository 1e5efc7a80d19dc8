package session

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"ironlog/workout-app/internal/domain"
)

// LogStore is the external log storage collaborator the sink delegates
// persistence to. The CLI wires in the HTTP API client; tests use in-memory
// fakes.
type LogStore interface {
	CreateLog(ctx context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error)
}

// ValidationError reports why a session could not be submitted. The messages
// are intended for direct display to the user.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "cannot submit workout: " + strings.Join(e.Problems, "; ")
}

// SubmissionError wraps a store failure with a user-facing message; the
// underlying cause stays available for diagnostics via Unwrap.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return "failed to save workout log: " + e.Cause.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// Sink serializes a finished session into the persisted log format and hands
// it to the log store.
type Sink struct {
	store LogStore
	now   func() time.Time
}

// NewSink creates a submission sink backed by store.
func NewSink(store LogStore) *Sink {
	return &Sink{store: store, now: time.Now}
}

// Submit validates the session, builds the log record and persists it.
// Duration is the elapsed seconds rounded to whole minutes; sub-minute
// precision is intentionally discarded for compatibility with existing logs.
func (s *Sink) Submit(ctx context.Context, ws *WorkoutSession, elapsedSeconds int) (*domain.WorkoutLog, error) {
	if err := validateSession(ws); err != nil {
		return nil, err
	}

	exercises := make([]domain.LogExercise, len(ws.Exercises))
	for i, ex := range ws.Exercises {
		sets := make([]domain.LogSet, len(ex.Sets))
		for j, set := range ex.Sets {
			sets[j] = domain.LogSet{Reps: set.Reps, Weight: set.Weight}
		}
		exercises[i] = domain.LogExercise{
			Name:  ex.Name,
			Sets:  sets,
			Notes: ex.Notes,
		}
	}

	log := &domain.WorkoutLog{
		WorkoutID:   ws.WorkoutID,
		WorkoutName: ws.WorkoutName,
		StartTime:   ws.StartTime,
		EndTime:     s.now(),
		Duration:    int(math.Round(float64(elapsedSeconds) / 60.0)),
		Exercises:   exercises,
	}

	saved, err := s.store.CreateLog(ctx, log)
	if err != nil {
		return nil, &SubmissionError{Cause: err}
	}
	return saved, nil
}

// validateSession re-checks the submission schema before the network call.
// The set-count invariant is enforced by the state machine; everything else
// (names, numeric values) can only be caught here.
func validateSession(ws *WorkoutSession) error {
	var problems []string

	if ws == nil || len(ws.Exercises) == 0 {
		return &ValidationError{Problems: []string{"workout has no exercises"}}
	}
	if ws.WorkoutID == "" {
		problems = append(problems, "workout has no identifier")
	}
	if ws.WorkoutName == "" {
		problems = append(problems, "workout has no name")
	}

	for i, ex := range ws.Exercises {
		if ex.Name == "" {
			problems = append(problems, fmt.Sprintf("exercise %d has no name", i+1))
		}
		if len(ex.Sets) == 0 {
			problems = append(problems, fmt.Sprintf("exercise %q has no sets", ex.Name))
		}
		for j, set := range ex.Sets {
			if !isValidCount(set.Reps) {
				problems = append(problems, fmt.Sprintf("exercise %q set %d: reps must be a non-negative number", ex.Name, j+1))
			}
			if !isValidCount(set.Weight) {
				problems = append(problems, fmt.Sprintf("exercise %q set %d: weight must be a non-negative number", ex.Name, j+1))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func isValidCount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
