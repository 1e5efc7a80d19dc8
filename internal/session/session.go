package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"ironlog/workout-app/internal/domain"

	"github.com/google/uuid"
)

// State of the session lifecycle. Finished and Cancelled are terminal.
type State int

const (
	Idle State = iota
	Active
	Finished
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SetEntry is one set of an in-progress session. Values are stored exactly as
// coerced from input, including NaN for non-numeric input; validation happens
// at submission, not here.
type SetEntry struct {
	Reps   float64 `json:"reps"`
	Weight float64 `json:"weight"`
}

// SessionExercise is one exercise of an in-progress session. The set list is
// never empty while the session is active.
type SessionExercise struct {
	Name  string     `json:"name"`
	Sets  []SetEntry `json:"sets"`
	Notes string     `json:"notes"`
}

// WorkoutSession is the canonical in-progress workout. It is owned
// exclusively by the session that created it and is discarded on cancellation
// or replaced by a persisted log on finish.
type WorkoutSession struct {
	WorkoutID   string            `json:"workoutId"`
	WorkoutName string            `json:"workoutName"`
	StartTime   time.Time         `json:"startTime"`
	Exercises   []SessionExercise `json:"exercises"`
}

// SetField selects which value of a set an update targets.
type SetField string

const (
	FieldReps   SetField = "reps"
	FieldWeight SetField = "weight"
)

// Session errors.
var (
	ErrNotActive       = errors.New("no active workout session")
	ErrIndexOutOfRange = errors.New("exercise or set index out of range")
	ErrUnknownField    = errors.New("unknown set field")
)

// Session is the state machine for one live workout. All mutations require
// the Active state; indices come from iterating the session's own snapshot
// and are re-checked on every call.
//
// Session methods are safe for use from a single goroutine interleaved with
// the timer's ticks; the timer maintains its own synchronization.
type Session struct {
	id      uuid.UUID
	state   State
	workout *WorkoutSession
	timer   *Timer
	sink    *Sink

	// newTimer is swapped in tests for a manually ticked timer.
	newTimer func(initial int) *Timer
}

// New creates an idle session that will submit finished workouts to store.
func New(store LogStore) *Session {
	return &Session{
		id:       uuid.New(),
		state:    Idle,
		sink:     NewSink(store),
		newTimer: startSecondTimer,
	}
}

// ID identifies this session instance, e.g. for diagnostics.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Start normalizes the source and transitions to Active with the timer at
// zero. A timer left over from a previous start is stopped first so only one
// counter ever runs.
func (s *Session) Start(src Source) error {
	workout, err := Normalize(src)
	if err != nil {
		return err
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.workout = workout
	s.timer = s.newTimer(0)
	s.state = Active
	return nil
}

// Elapsed returns the timer's whole-second count, 0 when no session ran.
func (s *Session) Elapsed() int {
	if s.timer == nil {
		return 0
	}
	return s.timer.Elapsed()
}

// Snapshot returns a deep copy of the in-progress workout for rendering.
func (s *Session) Snapshot() (WorkoutSession, error) {
	if s.state != Active {
		return WorkoutSession{}, ErrNotActive
	}
	copied := *s.workout
	copied.Exercises = make([]SessionExercise, len(s.workout.Exercises))
	for i, ex := range s.workout.Exercises {
		sets := make([]SetEntry, len(ex.Sets))
		copy(sets, ex.Sets)
		copied.Exercises[i] = SessionExercise{Name: ex.Name, Sets: sets, Notes: ex.Notes}
	}
	return copied, nil
}

// AddSet appends a zeroed set to the exercise. There is no upper bound.
func (s *Session) AddSet(exerciseIndex int) error {
	ex, err := s.exerciseAt(exerciseIndex)
	if err != nil {
		return err
	}
	ex.Sets = append(ex.Sets, SetEntry{})
	s.workout.Exercises[exerciseIndex] = *ex
	return nil
}

// RemoveSet removes the set at setIndex, unless it is the exercise's last
// remaining set, in which case the call is a no-op: an active exercise never
// has zero sets.
func (s *Session) RemoveSet(exerciseIndex, setIndex int) error {
	ex, err := s.exerciseAt(exerciseIndex)
	if err != nil {
		return err
	}
	if len(ex.Sets) <= 1 {
		return nil
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return ErrIndexOutOfRange
	}
	ex.Sets = append(ex.Sets[:setIndex], ex.Sets[setIndex+1:]...)
	s.workout.Exercises[exerciseIndex] = *ex
	return nil
}

// UpdateSet overwrites one value of one set with the numeric coercion of the
// raw input. Non-numeric input coerces to NaN and is stored as-is; the sink
// rejects it at submission.
func (s *Session) UpdateSet(exerciseIndex, setIndex int, field SetField, value string) error {
	ex, err := s.exerciseAt(exerciseIndex)
	if err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return ErrIndexOutOfRange
	}

	n, parseErr := strconv.ParseFloat(value, 64)
	if parseErr != nil {
		n = math.NaN()
	}

	switch field {
	case FieldReps:
		ex.Sets[setIndex].Reps = n
	case FieldWeight:
		ex.Sets[setIndex].Weight = n
	default:
		return ErrUnknownField
	}
	return nil
}

// UpdateNotes overwrites the notes of an exercise.
func (s *Session) UpdateNotes(exerciseIndex int, text string) error {
	ex, err := s.exerciseAt(exerciseIndex)
	if err != nil {
		return err
	}
	ex.Notes = text
	s.workout.Exercises[exerciseIndex] = *ex
	return nil
}

// Finish stops the timer and submits the session as a workout log. On success
// the session transitions to Finished and its data is discarded. On failure
// the session stays Active with the timer resumed from its prior count so the
// user can retry.
func (s *Session) Finish(ctx context.Context) (*domain.WorkoutLog, error) {
	if s.state != Active {
		return nil, ErrNotActive
	}

	// The timer must be stopped before the submission call so no tick can
	// fire while the session is being torn down.
	s.timer.Stop()
	elapsed := s.timer.Elapsed()

	log, err := s.sink.Submit(ctx, s.workout, elapsed)
	if err != nil {
		s.timer = s.newTimer(elapsed)
		return nil, err
	}

	s.state = Finished
	s.workout = nil
	s.timer = nil
	return log, nil
}

// Cancel stops the timer and discards all in-progress data unconditionally.
// Callers are responsible for obtaining the user's confirmation first.
func (s *Session) Cancel() error {
	if s.state != Active {
		return ErrNotActive
	}
	s.timer.Stop()
	s.timer = nil
	s.workout = nil
	s.state = Cancelled
	return nil
}

func (s *Session) exerciseAt(index int) (*SessionExercise, error) {
	if s.state != Active {
		return nil, ErrNotActive
	}
	if index < 0 || index >= len(s.workout.Exercises) {
		return nil, ErrIndexOutOfRange
	}
	return &s.workout.Exercises[index], nil
}
