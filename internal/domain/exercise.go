package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single entry in the shared exercise catalog. The catalog is
// read-only for regular users; admins maintain it.
type Exercise struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Force            string             `bson:"force,omitempty" json:"force,omitempty"`         // e.g. "push", "pull", "static"
	Level            string             `bson:"level,omitempty" json:"level,omitempty"`         // e.g. "beginner", "intermediate", "expert"
	Mechanic         string             `bson:"mechanic,omitempty" json:"mechanic,omitempty"`   // e.g. "compound", "isolation"
	Equipment        string             `bson:"equipment,omitempty" json:"equipment,omitempty"` // e.g. "barbell", "body only"
	PrimaryMuscles   []string           `bson:"primaryMuscles" json:"primaryMuscles"`
	SecondaryMuscles []string           `bson:"secondaryMuscles" json:"secondaryMuscles"`
	Instructions     []string           `bson:"instructions" json:"instructions"`
	Category         string             `bson:"category,omitempty" json:"category,omitempty"` // e.g. "strength", "cardio"

	// MediaObjectKey is the object storage key of an optional demonstration
	// video or image uploaded by an admin. Presigned URLs are derived from it
	// at read time and are never persisted.
	MediaObjectKey string `bson:"mediaObjectKey,omitempty" json:"-"`
}
