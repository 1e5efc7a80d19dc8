package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout categories and difficulties accepted by validation.
const (
	CategoryStrength    = "strength"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
	CategoryFullBody    = "full-body"
	CategoryUpperBody   = "upper-body"
	CategoryLowerBody   = "lower-body"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// WorkoutSet is a planned set inside a user-created workout. Reps and weight
// here are the plan, not what was actually performed; performed values live in
// WorkoutLog entries.
type WorkoutSet struct {
	Reps      float64 `bson:"reps" json:"reps"`
	Weight    float64 `bson:"weight" json:"weight"`
	Completed bool    `bson:"completed" json:"completed"`
}

// WorkoutExercise references a catalog exercise within a workout by ID. The
// display name is resolved (populated) at read time.
type WorkoutExercise struct {
	ExerciseID primitive.ObjectID `bson:"exercise" json:"exercise"`
	Sets       []WorkoutSet       `bson:"sets" json:"sets"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Workout is a user-created workout template.
type Workout struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises         []WorkoutExercise  `bson:"exercises" json:"exercises"`
	IsFavorite        bool               `bson:"isFavorite" json:"isFavorite"`
	Category          string             `bson:"category" json:"category"`
	Difficulty        string             `bson:"difficulty" json:"difficulty"`
	EstimatedDuration int                `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"` // minutes
	LastPerformed     *time.Time         `bson:"lastPerformed,omitempty" json:"lastPerformed,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// PopulatedExercise is a workout exercise with its catalog name resolved.
// A reference to a deleted catalog entry resolves to "Unknown Exercise".
type PopulatedExercise struct {
	ExerciseID primitive.ObjectID `json:"exerciseId"`
	Name       string             `json:"name"`
	Sets       []WorkoutSet       `json:"sets"`
	Notes      string             `json:"notes,omitempty"`
}

// PopulatedWorkout is the read-side shape of a workout, with exercise names
// filled in from the catalog.
type PopulatedWorkout struct {
	ID                primitive.ObjectID  `json:"id"`
	UserID            primitive.ObjectID  `json:"userId"`
	Name              string              `json:"name"`
	Description       string              `json:"description,omitempty"`
	Exercises         []PopulatedExercise `json:"exercises"`
	IsFavorite        bool                `json:"isFavorite"`
	Category          string              `json:"category"`
	Difficulty        string              `json:"difficulty"`
	EstimatedDuration int                 `json:"estimatedDuration,omitempty"`
	LastPerformed     *time.Time          `json:"lastPerformed,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// UnknownExerciseName is used when a workout references a catalog entry that
// no longer exists.
const UnknownExerciseName = "Unknown Exercise"
