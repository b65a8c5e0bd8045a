// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a catalog entry: a named exercise and its demonstration video.
// Name is the catalog key and is unique case-insensitively.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	MuscleGroup string             `bson:"muscleGroup" json:"muscleGroup"` // e.g., "Peito", "Pernas"
	VideoURL    string             `bson:"videoUrl" json:"videoUrl"`
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	// VideoObjectKey is set when the video was uploaded to our own object storage,
	// so deleting the entry can delete the object too.
	VideoObjectKey string `bson:"videoObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
