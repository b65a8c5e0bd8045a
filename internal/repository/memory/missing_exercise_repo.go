package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissingExerciseRepository implements repository.MissingExerciseRepository.
type MissingExerciseRepository struct {
	mu      sync.Mutex
	records []domain.MissingExercise
}

func NewMissingExerciseRepository() *MissingExerciseRepository {
	return &MissingExerciseRepository{}
}

var _ repository.MissingExerciseRepository = (*MissingExerciseRepository)(nil)

func (r *MissingExerciseRepository) Append(_ context.Context, exerciseName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, domain.MissingExercise{
		ID:           primitive.NewObjectID(),
		ExerciseName: exerciseName,
		RequestedAt:  time.Now().UTC(),
	})
	return nil
}

// List returns records newest first.
func (r *MissingExerciseRepository) List(_ context.Context, resolved *bool) ([]domain.MissingExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.MissingExercise{}
	for _, rec := range r.records {
		if resolved == nil || rec.Resolved == *resolved {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

func (r *MissingExerciseRepository) MarkResolved(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			now := time.Now().UTC()
			r.records[i].Resolved = true
			r.records[i].ResolvedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

// Names returns the logged names in insertion order.
func (r *MissingExerciseRepository) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.records))
	for i, rec := range r.records {
		names[i] = rec.ExerciseName
	}
	return names
}
