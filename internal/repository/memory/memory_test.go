package memory

import (
	"context"
	"errors"
	"testing"

	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository"
)

func TestExerciseRepository_FindersIgnoreCaseAndOrderByName(t *testing.T) {
	ctx := context.Background()
	repo := NewExerciseRepository(
		domain.Exercise{Name: "Rosca Scott", VideoURL: "scott"},
		domain.Exercise{Name: "Rosca Direta", VideoURL: "direta"},
	)

	got, err := repo.FindByNameExact(ctx, "rosca scott")
	if err != nil || got.VideoURL != "scott" {
		t.Fatalf("FindByNameExact = %+v, %v", got, err)
	}

	got, err = repo.FindByNameContaining(ctx, "ROSCA")
	if err != nil || got.VideoURL != "direta" {
		t.Fatalf("FindByNameContaining = %+v, %v; want Rosca Direta", got, err)
	}

	if _, err := repo.FindByNameExact(ctx, "rosca"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExerciseRepository_UniqueNameCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewExerciseRepository(domain.Exercise{Name: "Agachamento"})

	_, err := repo.Create(ctx, &domain.Exercise{Name: "AGACHAMENTO"})
	if !errors.Is(err, repository.ErrDuplicateName) {
		t.Fatalf("Create duplicate: got %v", err)
	}

	other := &domain.Exercise{Name: "Leg Press"}
	if _, err := repo.Create(ctx, other); err != nil {
		t.Fatal(err)
	}
	other.Name = "agachamento"
	if err := repo.Update(ctx, other); !errors.Is(err, repository.ErrDuplicateName) {
		t.Errorf("Update to duplicate name: got %v", err)
	}
}

func TestMissingExerciseRepository_ListAndResolve(t *testing.T) {
	ctx := context.Background()
	repo := NewMissingExerciseRepository()
	_ = repo.Append(ctx, "Burpee")
	_ = repo.Append(ctx, "Burpee")

	open := false
	pending, _ := repo.List(ctx, &open)
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}

	if err := repo.MarkResolved(ctx, pending[0].ID); err != nil {
		t.Fatal(err)
	}
	pending, _ = repo.List(ctx, &open)
	if len(pending) != 1 {
		t.Errorf("pending after resolve = %d, want 1", len(pending))
	}
	all, _ := repo.List(ctx, nil)
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := &domain.User{Email: "Admin@Example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	if _, err := repo.Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetByEmail(ctx, "admin@example.COM")
	if err != nil || got.ID != u.ID {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
	if _, err := repo.Create(ctx, &domain.User{Email: "admin@example.com", PasswordHash: "y", Role: domain.RoleAdmin}); err == nil {
		t.Error("expected duplicate email error")
	}
}
