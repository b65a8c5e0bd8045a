// Package memory holds in-process repository implementations used by the
// "memory" database driver and by tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseRepository implements repository.ExerciseRepository over a map.
type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[primitive.ObjectID]domain.Exercise
}

// NewExerciseRepository returns a catalog seeded with the given entries.
func NewExerciseRepository(seed ...domain.Exercise) *ExerciseRepository {
	r := &ExerciseRepository{exercises: make(map[primitive.ObjectID]domain.Exercise)}
	for i := range seed {
		e := seed[i]
		if _, err := r.Create(context.Background(), &e); err != nil {
			panic(err)
		}
	}
	return r
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)

func (r *ExerciseRepository) FindByNameExact(_ context.Context, name string) (*domain.Exercise, error) {
	return r.first(func(e domain.Exercise) bool {
		return strings.EqualFold(e.Name, name)
	})
}

func (r *ExerciseRepository) FindByNameContaining(_ context.Context, fragment string) (*domain.Exercise, error) {
	fragment = strings.ToLower(fragment)
	return r.first(func(e domain.Exercise) bool {
		return strings.Contains(strings.ToLower(e.Name), fragment)
	})
}

// first returns the lowest entry by name satisfying match.
func (r *ExerciseRepository) first(match func(domain.Exercise) bool) (*domain.Exercise, error) {
	for _, e := range r.sorted() {
		if match(e) {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ExerciseRepository) sorted() []domain.Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (r *ExerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(exercise.Name, primitive.NilObjectID) {
		return primitive.NilObjectID, repository.ErrDuplicateName
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *ExerciseRepository) nameTaken(name string, except primitive.ObjectID) bool {
	for id, e := range r.exercises {
		if id != except && strings.EqualFold(e.Name, name) {
			return true
		}
	}
	return false
}

func (r *ExerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *ExerciseRepository) List(context.Context) ([]domain.Exercise, error) {
	return r.sorted(), nil
}

func (r *ExerciseRepository) Update(_ context.Context, exercise *domain.Exercise) error {
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.exercises[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(exercise.Name, exercise.ID) {
		return repository.ErrDuplicateName
	}
	exercise.CreatedAt = existing.CreatedAt
	exercise.UpdatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *ExerciseRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}
