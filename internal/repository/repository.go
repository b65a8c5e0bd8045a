package repository

import (
	"context"

	"fitai/plan-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicateName = RepositoryError("duplicate name")
	ErrUpdateFailed  = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseCatalog is the read side of the exercise catalog used by the
// resolver. Both finders are case-insensitive and return the first entry by
// name order, or ErrNotFound.
type ExerciseCatalog interface {
	FindByNameExact(ctx context.Context, name string) (*domain.Exercise, error)
	FindByNameContaining(ctx context.Context, fragment string) (*domain.Exercise, error)
}

// ExerciseRepository adds the administrative write side to the catalog.
type ExerciseRepository interface {
	ExerciseCatalog
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MissingExerciseLog is the append side of the missing-exercise feedback queue.
type MissingExerciseLog interface {
	Append(ctx context.Context, exerciseName string) error
}

// MissingExerciseRepository adds the curation side of the feedback queue.
type MissingExerciseRepository interface {
	MissingExerciseLog
	List(ctx context.Context, resolved *bool) ([]domain.MissingExercise, error)
	MarkResolved(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
