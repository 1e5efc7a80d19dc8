// Package session implements the live workout-session core: normalizing a
// workout source into an in-progress session, mutating it set by set while a
// timer runs, and submitting the finished session as a workout log.
package session

import (
	"errors"
	"time"
)

// UnknownExerciseName is the display fallback when a source exercise carries
// no resolvable name.
const UnknownExerciseName = "Unknown Exercise"

// ErrNoExercises rejects sources that would start an empty session.
var ErrNoExercises = errors.New("workout source has no exercises")

// ExerciseRef is a populated reference to a catalog exercise.
type ExerciseRef struct {
	Name string `json:"name"`
}

// SourceExercise is a single exercise as it appears on any workout source.
// Either the populated reference or the flat name may be present; name
// resolution prefers the reference.
type SourceExercise struct {
	Name string       `json:"name,omitempty"`
	Ref  *ExerciseRef `json:"exercise,omitempty"`
}

// displayName resolves the exercise name: populated reference first, then the
// flat field, then the unknown-exercise placeholder.
func (e SourceExercise) displayName() string {
	if e.Ref != nil && e.Ref.Name != "" {
		return e.Ref.Name
	}
	if e.Name != "" {
		return e.Name
	}
	return UnknownExerciseName
}

// Source is the tagged variant over the three workout shapes a session can
// start from: a predefined template, a user-created workout, or a condensed
// favorite/recent summary.
type Source interface {
	// workoutKey returns the identity the resulting log will be recorded
	// under.
	workoutKey() (id, name string)
	// sourceExercises returns the exercise list in order.
	sourceExercises() []SourceExercise
}

// Predefined is a static workout template shipped with the application. Its
// ID ("full-body-1" etc.) never exists in the workouts collection.
type Predefined struct {
	ID            string
	Name          string
	Duration      string // display hint, e.g. "60 minutes"
	ExerciseCount int
	Exercises     []SourceExercise
}

func (p Predefined) workoutKey() (string, string) { return p.ID, p.Name }
func (p Predefined) sourceExercises() []SourceExercise { return p.Exercises }

// UserWorkout is a user-created workout as returned by the workout storage
// API, with exercise references populated.
type UserWorkout struct {
	ID        string
	Name      string
	Exercises []SourceExercise
}

func (w UserWorkout) workoutKey() (string, string) { return w.ID, w.Name }
func (w UserWorkout) sourceExercises() []SourceExercise { return w.Exercises }

// Summary is a condensed workout shape returned by aggregate endpoints
// (favorites, recent logs). Identity fields differ by endpoint, so both
// variants are carried and resolved by priority: ID before WorkoutID, Name
// before WorkoutName.
type Summary struct {
	ID          string
	WorkoutID   string
	Name        string
	WorkoutName string
	Exercises   []SourceExercise
}

func (s Summary) workoutKey() (string, string) {
	id := s.ID
	if id == "" {
		id = s.WorkoutID
	}
	name := s.Name
	if name == "" {
		name = s.WorkoutName
	}
	return id, name
}

func (s Summary) sourceExercises() []SourceExercise { return s.Exercises }

// Normalize converts any workout source into a fresh in-progress session.
// Every exercise starts with exactly one zeroed set and empty notes; set data
// present on the source is intentionally discarded so the session always
// starts clean. The session's start time is the moment of normalization.
func Normalize(src Source) (*WorkoutSession, error) {
	return normalizeAt(src, time.Now())
}

func normalizeAt(src Source, now time.Time) (*WorkoutSession, error) {
	sourceExercises := src.sourceExercises()
	if len(sourceExercises) == 0 {
		return nil, ErrNoExercises
	}

	id, name := src.workoutKey()
	exercises := make([]SessionExercise, len(sourceExercises))
	for i, ex := range sourceExercises {
		exercises[i] = SessionExercise{
			Name: ex.displayName(),
			Sets: []SetEntry{{}},
		}
	}

	return &WorkoutSession{
		WorkoutID:   id,
		WorkoutName: name,
		StartTime:   now,
		Exercises:   exercises,
	}, nil
}
