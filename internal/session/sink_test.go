package session

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func validWorkoutSession() *WorkoutSession {
	return &WorkoutSession{
		WorkoutID:   "w1",
		WorkoutName: "Push Day",
		StartTime:   time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		Exercises: []SessionExercise{
			{Name: "Bench Press", Sets: []SetEntry{{Reps: 8, Weight: 60}}},
			{Name: "Overhead Press", Sets: []SetEntry{{Reps: 10, Weight: 30}, {Reps: 8, Weight: 30}}},
		},
	}
}

func TestSubmitBuildsLog(t *testing.T) {
	store := &fakeLogStore{}
	sink := NewSink(store)
	endTime := time.Date(2025, 3, 10, 18, 45, 0, 0, time.UTC)
	sink.now = func() time.Time { return endTime }

	ws := validWorkoutSession()
	log, err := sink.Submit(context.Background(), ws, 2700)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if log.WorkoutID != "w1" || log.WorkoutName != "Push Day" {
		t.Errorf("workout ref = %q/%q, want w1/Push Day", log.WorkoutID, log.WorkoutName)
	}
	if !log.StartTime.Equal(ws.StartTime) {
		t.Errorf("startTime = %v, want %v", log.StartTime, ws.StartTime)
	}
	if !log.EndTime.Equal(endTime) {
		t.Errorf("endTime = %v, want %v", log.EndTime, endTime)
	}
	if log.Duration != 45 {
		t.Errorf("duration = %d, want 45", log.Duration)
	}
	if len(log.Exercises) != 2 || len(log.Exercises[1].Sets) != 2 {
		t.Fatalf("exercises not carried over: %+v", log.Exercises)
	}
	if got := log.Exercises[0].Sets[0]; got.Reps != 8 || got.Weight != 60 {
		t.Errorf("set = %+v, want {8 60}", got)
	}
}

func TestSubmitDurationRounding(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{0, 0},
		{29, 0},
		{30, 1},
		{59, 1},
		{60, 1},
		{90, 2},
		{125, 2},
		{3599, 60},
	}
	for _, tt := range tests {
		store := &fakeLogStore{}
		sink := NewSink(store)
		log, err := sink.Submit(context.Background(), validWorkoutSession(), tt.seconds)
		if err != nil {
			t.Fatalf("submit(%d): %v", tt.seconds, err)
		}
		if log.Duration != tt.want {
			t.Errorf("duration(%ds) = %d, want %d", tt.seconds, log.Duration, tt.want)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkoutSession)
		problem string
	}{
		{
			name:    "missing workout id",
			mutate:  func(ws *WorkoutSession) { ws.WorkoutID = "" },
			problem: "identifier",
		},
		{
			name:    "missing workout name",
			mutate:  func(ws *WorkoutSession) { ws.WorkoutName = "" },
			problem: "no name",
		},
		{
			name:    "empty exercise name",
			mutate:  func(ws *WorkoutSession) { ws.Exercises[0].Name = "" },
			problem: "exercise 1 has no name",
		},
		{
			name:    "nan reps",
			mutate:  func(ws *WorkoutSession) { ws.Exercises[0].Sets[0].Reps = math.NaN() },
			problem: "reps must be a non-negative number",
		},
		{
			name:    "negative weight",
			mutate:  func(ws *WorkoutSession) { ws.Exercises[0].Sets[0].Weight = -5 },
			problem: "weight must be a non-negative number",
		},
		{
			name:    "infinite weight",
			mutate:  func(ws *WorkoutSession) { ws.Exercises[1].Sets[1].Weight = math.Inf(1) },
			problem: "weight must be a non-negative number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLogStore{}
			ws := validWorkoutSession()
			tt.mutate(ws)

			_, err := NewSink(store).Submit(context.Background(), ws, 60)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("err = %T (%v), want *ValidationError", err, err)
			}
			found := false
			for _, p := range valErr.Problems {
				if strings.Contains(p, tt.problem) {
					found = true
				}
			}
			if !found {
				t.Errorf("problems = %v, want one containing %q", valErr.Problems, tt.problem)
			}
			if len(store.created) != 0 {
				t.Errorf("store was called despite validation failure")
			}
		})
	}
}

func TestSubmitEmptyWorkout(t *testing.T) {
	store := &fakeLogStore{}
	_, err := NewSink(store).Submit(context.Background(), &WorkoutSession{WorkoutID: "w1", WorkoutName: "Empty"}, 60)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
}

func TestSubmitWrapsStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	store := &fakeLogStore{err: cause}

	_, err := NewSink(store).Submit(context.Background(), validWorkoutSession(), 60)
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("err = %T, want *SubmissionError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not preserved through Unwrap: %v", err)
	}
}
