package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissingExercise records an exercise name the resolver could not match.
// Entries are appended by the resolver and only flipped to Resolved by an admin.
type MissingExercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	RequestedAt  time.Time          `bson:"requestedAt" json:"requestedAt"`
	Resolved     bool               `bson:"resolved" json:"resolved"`
	ResolvedAt   *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}
