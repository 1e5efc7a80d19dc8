package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogSet is one performed set. Both values must be non-negative numbers; the
// server re-validates even though the client enforces this before submission.
type LogSet struct {
	Reps   float64 `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"`
}

// LogExercise is one exercise of a finished session as it was performed.
type LogExercise struct {
	Name  string   `bson:"name" json:"name"`
	Sets  []LogSet `bson:"sets" json:"sets"`
	Notes string   `bson:"notes,omitempty" json:"notes"`
}

// WorkoutLog is the persisted record of a completed workout session. It is
// created exactly once per finished session and immutable except for deletion.
//
// WorkoutID is a plain string rather than an ObjectID: predefined workout
// templates shipped with the client use identifiers like "full-body-1" that
// never exist in the workouts collection.
type WorkoutLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutID   string             `bson:"workoutId" json:"workoutId"`
	WorkoutName string             `bson:"workoutName" json:"workoutName"`
	StartTime   time.Time          `bson:"startTime" json:"startTime"`
	EndTime     time.Time          `bson:"endTime" json:"endTime"`
	Duration    int                `bson:"duration" json:"duration"` // whole minutes, rounded
	Exercises   []LogExercise      `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
