package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ironlog/workout-app/internal/domain"
)

// fakeLogStore records submissions and can be told to fail.
type fakeLogStore struct {
	created []*domain.WorkoutLog
	err     error
}

func (f *fakeLogStore) CreateLog(_ context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, log)
	return log, nil
}

// testSession returns an active session over the given source with a
// manually ticked timer.
func testSession(t *testing.T, store LogStore, src Source) (*Session, chan time.Time) {
	t.Helper()
	ticks := make(chan time.Time)
	s := New(store)
	s.newTimer = func(initial int) *Timer {
		return startTimer(ticks, func() {}, initial)
	}
	if err := s.Start(src); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s, ticks
}

func fullBody(t *testing.T) Predefined {
	t.Helper()
	p, ok := LookupPredefined("full-body-1")
	if !ok {
		t.Fatal("full-body-1 template missing")
	}
	return p
}

// TestStartPredefined starts the 8-exercise full-body template and expects
// 8 exercises with one set each.
func TestStartPredefined(t *testing.T) {
	s, _ := testSession(t, &fakeLogStore{}, fullBody(t))

	if s.State() != Active {
		t.Fatalf("state = %v, want Active", s.State())
	}
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.WorkoutID != "full-body-1" {
		t.Errorf("workoutId = %q, want %q", snap.WorkoutID, "full-body-1")
	}
	if len(snap.Exercises) != 8 {
		t.Fatalf("exercises = %d, want 8", len(snap.Exercises))
	}
	for i, ex := range snap.Exercises {
		if len(ex.Sets) != 1 {
			t.Errorf("exercise %d: sets = %d, want 1", i, len(ex.Sets))
		}
	}
}

// TestAddSetTwice verifies two AddSet calls grow a one-set exercise to three
// zeroed sets.
func TestAddSetTwice(t *testing.T) {
	s, _ := testSession(t, &fakeLogStore{}, fullBody(t))

	if err := s.AddSet(0); err != nil {
		t.Fatalf("addSet: %v", err)
	}
	if err := s.AddSet(0); err != nil {
		t.Fatalf("addSet: %v", err)
	}

	snap, _ := s.Snapshot()
	if len(snap.Exercises[0].Sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(snap.Exercises[0].Sets))
	}
	for i, set := range snap.Exercises[0].Sets {
		if set.Reps != 0 || set.Weight != 0 {
			t.Errorf("set %d = %+v, want zeroed", i, set)
		}
	}
}

// TestRemoveLastSetIsNoop verifies the invariant that an exercise never
// drops to zero sets: removing the only set does nothing.
func TestRemoveLastSetIsNoop(t *testing.T) {
	s, _ := testSession(t, &fakeLogStore{}, fullBody(t))

	if err := s.RemoveSet(0, 0); err != nil {
		t.Fatalf("removeSet: %v", err)
	}
	snap, _ := s.Snapshot()
	if len(snap.Exercises[0].Sets) != 1 {
		t.Errorf("sets = %d, want 1 (no-op)", len(snap.Exercises[0].Sets))
	}
}

// TestAddThenRemoveRestoresCount verifies AddSet followed by RemoveSet of the
// added index returns the exercise to its prior set count.
func TestAddThenRemoveRestoresCount(t *testing.T) {
	s, _ := testSession(t, &fakeLogStore{}, fullBody(t))

	if err := s.AddSet(2); err != nil {
		t.Fatalf("addSet: %v", err)
	}
	if err := s.RemoveSet(2, 1); err != nil {
		t.Fatalf("removeSet: %v", err)
	}

	snap, _ := s.Snapshot()
	if len(snap.Exercises[2].Sets) != 1 {
		t.Errorf("sets = %d, want 1", len(snap.Exercises[2].Sets))
	}
}

// TestUpdateSetCoercion verifies numeric strings are coerced and stored, and
// non-numeric input is stored as NaN rather than rejected.
func TestUpdateSetCoercion(t *testing.T) {
	s, _ := testSession(t, &fakeLogStore{}, fullBody(t))

	if err := s.UpdateSet(0, 0, FieldWeight, "60"); err != nil {
		t.Fatalf("updateSet: %v", err)
	}
	snap, _ := s.Snapshot()
	if got := snap.Exercises[0].Sets[0]; got.Reps != 0 || got.Weight != 60 {
		t.Errorf("set = %+v, want {reps:0 weight:60}", got)
	}

	if err := s.UpdateSet(0, 0, FieldReps, "not a number"); err != nil {
		t.Fatalf("updateSet: %v", err)
	}
	snap, _ = s.Snapshot()
	if !math.IsNaN(snap.Exercises[0].Sets[0].Reps) {
		t.Errorf("reps = %v, want NaN", snap.Exercises[0].Sets[0].Reps)
	}
}

// TestUpdateNotes verifies notes are overwritten per exercise.
func TestUpdateNotes(t *testing.T) {
	s, _ := testSession(t, &fakeLogStore{}, fullBody(t))

	if err := s.UpdateNotes(1, "felt heavy"); err != nil {
		t.Fatalf("updateNotes: %v", err)
	}
	snap, _ := s.Snapshot()
	if snap.Exercises[1].Notes != "felt heavy" {
		t.Errorf("notes = %q, want %q", snap.Exercises[1].Notes, "felt heavy")
	}
}

// TestFinishRoundsDuration verifies the finish scenario: 125 elapsed seconds
// submit a duration of 2 minutes (round(125/60) = 2).
func TestFinishRoundsDuration(t *testing.T) {
	store := &fakeLogStore{}
	s, ticks := testSession(t, store, fullBody(t))

	tick(ticks, 125)
	log, err := s.Finish(context.Background())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if s.State() != Finished {
		t.Errorf("state = %v, want Finished", s.State())
	}
	if log.Duration != 2 {
		t.Errorf("duration = %d, want 2", log.Duration)
	}
	if len(store.created) != 1 {
		t.Fatalf("created logs = %d, want 1", len(store.created))
	}
	if len(log.Exercises) != 8 {
		t.Errorf("log exercises = %d, want 8", len(log.Exercises))
	}
}

// TestFinishFailureKeepsSessionActive verifies a rejected submission leaves
// the session intact for retry.
func TestFinishFailureKeepsSessionActive(t *testing.T) {
	store := &fakeLogStore{err: errors.New("service unavailable")}
	s, _ := testSession(t, store, fullBody(t))

	_, err := s.Finish(context.Background())
	if err == nil {
		t.Fatal("expected finish to fail")
	}
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("err = %T, want *SubmissionError", err)
	}
	if s.State() != Active {
		t.Errorf("state = %v, want Active after failed submit", s.State())
	}

	// The session retries successfully once the store recovers.
	store.err = nil
	if _, err := s.Finish(context.Background()); err != nil {
		t.Fatalf("retry finish: %v", err)
	}
	if s.State() != Finished {
		t.Errorf("state = %v, want Finished", s.State())
	}
}

// TestValidationFailureKeepsSessionActive submits a workout with an empty
// exercise name: submission fails and the session stays Active.
func TestValidationFailureKeepsSessionActive(t *testing.T) {
	store := &fakeLogStore{}
	s, _ := testSession(t, store, UserWorkout{
		ID:        "w1",
		Name:      "Broken",
		Exercises: []SourceExercise{{Ref: &ExerciseRef{Name: ""}}},
	})

	// The normalizer resolves a blank reference to the placeholder, so force
	// the invalid shape through the snapshot path the way a corrupted source
	// would surface: submit directly through the sink.
	_, err := s.sink.Submit(context.Background(), &WorkoutSession{
		WorkoutID:   "w1",
		WorkoutName: "Broken",
		StartTime:   time.Now(),
		Exercises:   []SessionExercise{{Name: "", Sets: []SetEntry{{}}}},
	}, 60)

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %T (%v), want *ValidationError", err, err)
	}
	if len(store.created) != 0 {
		t.Errorf("created logs = %d, want 0", len(store.created))
	}
	if s.State() != Active {
		t.Errorf("state = %v, want Active", s.State())
	}
}

// TestCancelDiscards verifies cancellation discards the session data and
// stops the timer.
func TestCancelDiscards(t *testing.T) {
	store := &fakeLogStore{}
	s, _ := testSession(t, store, fullBody(t))

	if err := s.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if s.State() != Cancelled {
		t.Errorf("state = %v, want Cancelled", s.State())
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrNotActive) {
		t.Errorf("snapshot err = %v, want ErrNotActive", err)
	}
	if len(store.created) != 0 {
		t.Errorf("created logs = %d, want 0", len(store.created))
	}
}

// TestMutationsRequireActiveSession verifies the whole mutation API rejects
// calls outside the Active state, which is what makes a zero-set exercise
// unconstructible from the outside.
func TestMutationsRequireActiveSession(t *testing.T) {
	s := New(&fakeLogStore{})

	if err := s.AddSet(0); !errors.Is(err, ErrNotActive) {
		t.Errorf("addSet err = %v, want ErrNotActive", err)
	}
	if err := s.RemoveSet(0, 0); !errors.Is(err, ErrNotActive) {
		t.Errorf("removeSet err = %v, want ErrNotActive", err)
	}
	if err := s.UpdateSet(0, 0, FieldReps, "5"); !errors.Is(err, ErrNotActive) {
		t.Errorf("updateSet err = %v, want ErrNotActive", err)
	}
	if err := s.UpdateNotes(0, "x"); !errors.Is(err, ErrNotActive) {
		t.Errorf("updateNotes err = %v, want ErrNotActive", err)
	}
	if _, err := s.Finish(context.Background()); !errors.Is(err, ErrNotActive) {
		t.Errorf("finish err = %v, want ErrNotActive", err)
	}
	if err := s.Cancel(); !errors.Is(err, ErrNotActive) {
		t.Errorf("cancel err = %v, want ErrNotActive", err)
	}
}

// TestStartReplacesRunningTimer verifies that starting again stops the prior
// timer so only one counter runs per session.
func TestStartReplacesRunningTimer(t *testing.T) {
	timersStarted := 0
	stops := 0
	ticks := make(chan time.Time)

	s := New(&fakeLogStore{})
	s.newTimer = func(initial int) *Timer {
		timersStarted++
		return startTimer(ticks, func() { stops++ }, initial)
	}

	if err := s.Start(fullBody(t)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(fullBody(t)); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if timersStarted != 2 {
		t.Errorf("timers started = %d, want 2", timersStarted)
	}
	if stops != 1 {
		t.Errorf("timers stopped = %d, want 1 (the prior timer)", stops)
	}
	if got := s.Elapsed(); got != 0 {
		t.Errorf("elapsed after restart = %d, want 0", got)
	}
}
