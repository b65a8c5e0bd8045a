package service

import (
	"context"
	"errors"
	"strings"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository"
	"fitai/plan-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound        = apperr.ErrNotFound.WithMessage("exercise not found")
	ErrMissingExerciseNotFound = apperr.ErrNotFound.WithMessage("missing-exercise record not found")
	ErrExerciseNameTaken       = apperr.ErrConflict.WithMessage("an exercise with this name already exists")
	ErrStorageDisabled         = apperr.ErrInternal.WithMessage("video storage is not configured")
)

// ExerciseInput carries the editable fields of a catalog entry.
type ExerciseInput struct {
	Name        string
	MuscleGroup string
	VideoURL    string
	Difficulty  string
	Description string
}

// VideoUpload is a presigned upload slot for an exercise video.
type VideoUpload struct {
	UploadURL   string `json:"uploadUrl"`
	ObjectKey   string `json:"objectKey"`
	VideoURL    string `json:"videoUrl"`
	ContentType string `json:"contentType"`
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error
	RequestVideoUpload(ctx context.Context, exerciseID primitive.ObjectID, fileName, contentType string) (*VideoUpload, error)

	ListMissingExercises(ctx context.Context, resolved *bool) ([]domain.MissingExercise, error)
	ResolveMissingExercise(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	missingRepo  repository.MissingExerciseRepository
	fileStorage  storage.FileStorage // nil when S3 is disabled
	logger       *zap.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, missingRepo repository.MissingExerciseRepository, fileStorage storage.FileStorage, logger *zap.Logger) ExerciseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		missingRepo:  missingRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func (in ExerciseInput) validate() error {
	var bad []string
	if strings.TrimSpace(in.Name) == "" {
		bad = append(bad, "name")
	}
	if strings.TrimSpace(in.MuscleGroup) == "" {
		bad = append(bad, "muscleGroup")
	}
	if len(bad) > 0 {
		return apperr.Missing(bad...)
	}
	return nil
}

// CreateExercise adds a catalog entry.
func (s *exerciseService) CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:        strings.TrimSpace(input.Name),
		MuscleGroup: input.MuscleGroup,
		VideoURL:    input.VideoURL,
		Difficulty:  input.Difficulty,
		Description: input.Description,
	}

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, mapExerciseRepoError(err)
	}
	s.logger.Info("exercise created", zap.String("name", exercise.Name), zap.String("id", exercise.ID.Hex()))
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, mapExerciseRepoError(err)
	}
	return exercise, nil
}

// ListExercises returns the whole catalog sorted by name.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// UpdateExercise replaces the editable fields of an entry. Pointing VideoURL
// somewhere else releases an uploaded object.
func (s *exerciseService) UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, mapExerciseRepoError(err)
	}

	oldKey := existing.VideoObjectKey
	if input.VideoURL != existing.VideoURL {
		existing.VideoObjectKey = ""
	}
	existing.Name = strings.TrimSpace(input.Name)
	existing.MuscleGroup = input.MuscleGroup
	existing.VideoURL = input.VideoURL
	existing.Difficulty = input.Difficulty
	existing.Description = input.Description

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		return nil, mapExerciseRepoError(err)
	}
	if oldKey != "" && existing.VideoObjectKey == "" {
		s.deleteVideo(ctx, oldKey)
	}
	return existing, nil
}

// DeleteExercise removes an entry and any video uploaded for it.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return mapExerciseRepoError(err)
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		return mapExerciseRepoError(err)
	}
	if existing.VideoObjectKey != "" {
		s.deleteVideo(ctx, existing.VideoObjectKey)
	}
	s.logger.Info("exercise deleted", zap.String("name", existing.Name), zap.String("id", exerciseID.Hex()))
	return nil
}

// RequestVideoUpload presigns a PUT for a new video object and points the
// entry's VideoURL at it. The previous uploaded object, if any, is released.
func (s *exerciseService) RequestVideoUpload(ctx context.Context, exerciseID primitive.ObjectID, fileName, contentType string) (*VideoUpload, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageDisabled
	}
	if !strings.HasPrefix(contentType, "video/") {
		return nil, apperr.Invalid("contentType")
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, mapExerciseRepoError(err)
	}

	objectKey := storage.NewVideoObjectKey(fileName)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, apperr.ErrInternal.WithCause(err)
	}
	videoURL, err := s.fileStorage.ObjectURL(ctx, objectKey)
	if err != nil {
		return nil, apperr.ErrInternal.WithCause(err)
	}

	oldKey := exercise.VideoObjectKey
	exercise.VideoURL = videoURL
	exercise.VideoObjectKey = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, mapExerciseRepoError(err)
	}
	if oldKey != "" {
		s.deleteVideo(ctx, oldKey)
	}

	return &VideoUpload{
		UploadURL:   uploadURL,
		ObjectKey:   objectKey,
		VideoURL:    videoURL,
		ContentType: contentType,
	}, nil
}

// deleteVideo is best effort; an orphaned object is only wasted space.
func (s *exerciseService) deleteVideo(ctx context.Context, key string) {
	if s.fileStorage == nil {
		return
	}
	if err := s.fileStorage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to delete exercise video", zap.String("key", key), zap.Error(err))
	}
}

// ListMissingExercises returns the curation queue, optionally filtered.
func (s *exerciseService) ListMissingExercises(ctx context.Context, resolved *bool) ([]domain.MissingExercise, error) {
	return s.missingRepo.List(ctx, resolved)
}

// ResolveMissingExercise marks a record as handled.
func (s *exerciseService) ResolveMissingExercise(ctx context.Context, id primitive.ObjectID) error {
	if err := s.missingRepo.MarkResolved(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMissingExerciseNotFound
		}
		return err
	}
	return nil
}

func mapExerciseRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrExerciseNotFound
	case errors.Is(err, repository.ErrDuplicateName):
		return ErrExerciseNameTaken
	default:
		return err
	}
}
