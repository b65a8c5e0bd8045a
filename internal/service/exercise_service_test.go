package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStorage struct {
	deleted []string
	failPut bool
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	if f.failPut {
		return "", errors.New("signing failed")
	}
	return "https://s3.local/upload/" + key + "?ct=" + contentType, nil
}

func (f *fakeStorage) ObjectURL(_ context.Context, key string) (string, error) {
	return "https://cdn.local/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func newExerciseService(store *fakeStorage) (ExerciseService, *memory.MissingExerciseRepository) {
	misses := memory.NewMissingExerciseRepository()
	if store == nil {
		return NewExerciseService(memory.NewExerciseRepository(), misses, nil, nil), misses
	}
	return NewExerciseService(memory.NewExerciseRepository(), misses, store, nil), misses
}

func TestExerciseService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc, _ := newExerciseService(nil)

	created, err := svc.CreateExercise(ctx, ExerciseInput{Name: "  Remada Curvada ", MuscleGroup: "Costas", VideoURL: "https://v/remada"})
	if err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}
	if created.Name != "Remada Curvada" || created.ID.IsZero() {
		t.Errorf("created = %+v", created)
	}

	if _, err := svc.CreateExercise(ctx, ExerciseInput{Name: "remada curvada", MuscleGroup: "Costas"}); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate create: err = %v", err)
	}

	updated, err := svc.UpdateExercise(ctx, created.ID, ExerciseInput{Name: "Remada Curvada", MuscleGroup: "Dorsais", Difficulty: "intermediario"})
	if err != nil {
		t.Fatalf("UpdateExercise: %v", err)
	}
	if updated.MuscleGroup != "Dorsais" || updated.VideoURL != "" {
		t.Errorf("updated = %+v", updated)
	}

	list, _ := svc.ListExercises(ctx)
	if len(list) != 1 {
		t.Fatalf("list = %d entries", len(list))
	}

	if err := svc.DeleteExercise(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetExerciseByID(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("after delete: err = %v", err)
	}
}

func TestExerciseService_CreateRequiresNameAndGroup(t *testing.T) {
	svc, _ := newExerciseService(nil)
	_, err := svc.CreateExercise(context.Background(), ExerciseInput{})
	if got := apperr.FieldsOf(err); strings.Join(got, ",") != "name,muscleGroup" {
		t.Errorf("fields = %v", got)
	}
}

func TestExerciseService_VideoUploadLifecycle(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	svc, _ := newExerciseService(store)

	ex, _ := svc.CreateExercise(ctx, ExerciseInput{Name: "Leg Press", MuscleGroup: "Pernas"})

	first, err := svc.RequestVideoUpload(ctx, ex.ID, "legpress.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("RequestVideoUpload: %v", err)
	}
	if !strings.HasPrefix(first.ObjectKey, "exercises/") || first.VideoURL != "https://cdn.local/"+first.ObjectKey {
		t.Errorf("upload = %+v", first)
	}
	got, _ := svc.GetExerciseByID(ctx, ex.ID)
	if got.VideoURL != first.VideoURL || got.VideoObjectKey != first.ObjectKey {
		t.Errorf("entry not pointed at the upload: %+v", got)
	}

	// A second upload replaces the first object.
	second, err := svc.RequestVideoUpload(ctx, ex.ID, "legpress2.mp4", "video/mp4")
	if err != nil {
		t.Fatal(err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != first.ObjectKey {
		t.Errorf("deleted = %v, want [%s]", store.deleted, first.ObjectKey)
	}

	// Deleting the entry releases the current object.
	if err := svc.DeleteExercise(ctx, ex.ID); err != nil {
		t.Fatal(err)
	}
	if len(store.deleted) != 2 || store.deleted[1] != second.ObjectKey {
		t.Errorf("deleted = %v", store.deleted)
	}
}

func TestExerciseService_VideoUploadErrors(t *testing.T) {
	ctx := context.Background()

	disabled, _ := newExerciseService(nil)
	if _, err := disabled.RequestVideoUpload(ctx, primitive.NewObjectID(), "a.mp4", "video/mp4"); !errors.Is(err, ErrStorageDisabled) {
		t.Errorf("storage disabled: err = %v", err)
	}

	svc, _ := newExerciseService(&fakeStorage{})
	if _, err := svc.RequestVideoUpload(ctx, primitive.NewObjectID(), "a.png", "image/png"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("wrong content type: err = %v", err)
	}
	if _, err := svc.RequestVideoUpload(ctx, primitive.NewObjectID(), "a.mp4", "video/mp4"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown exercise: err = %v", err)
	}
}

func TestExerciseService_MissingExerciseQueue(t *testing.T) {
	ctx := context.Background()
	svc, misses := newExerciseService(nil)
	_ = misses.Append(ctx, "Burpee")

	open := false
	pending, err := svc.ListMissingExercises(ctx, &open)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %v, %v", pending, err)
	}
	if err := svc.ResolveMissingExercise(ctx, pending[0].ID); err != nil {
		t.Fatal(err)
	}
	if pending, _ = svc.ListMissingExercises(ctx, &open); len(pending) != 0 {
		t.Errorf("pending after resolve = %d", len(pending))
	}
	if err := svc.ResolveMissingExercise(ctx, primitive.NewObjectID()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown record: err = %v", err)
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(memory.NewUserRepository(), "secret", time.Hour)

	user, err := auth.Register(ctx, "Ana", "ana@fitai.app", "s3nh4-forte", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked")
	}
	if _, err := auth.Register(ctx, "Ana", "ANA@fitai.app", "s3nh4-forte", domain.RoleAdmin); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate: err = %v", err)
	}

	token, got, err := auth.Login(ctx, "ana@fitai.app", "s3nh4-forte")
	if err != nil || token == "" || got.Email != "ana@fitai.app" {
		t.Fatalf("Login = %q, %+v, %v", token, got, err)
	}

	if _, _, err := auth.Login(ctx, "ana@fitai.app", "wrong-password"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody@fitai.app", "whatever1"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("unknown user: err = %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	auth := NewAuthService(memory.NewUserRepository(), "secret", time.Hour)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "", "", "", domain.RoleAdmin); strings.Join(apperr.FieldsOf(err), ",") != "name,email,password" {
		t.Errorf("missing: err = %v", err)
	}
	if _, err := auth.Register(ctx, "Ana", "a@b.c", "short", domain.RoleAdmin); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("short password: err = %v", err)
	}
	if _, err := auth.Register(ctx, "Ana", "a@b.c", "long-enough", domain.Role("trainer")); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("unknown role: err = %v", err)
	}
}
