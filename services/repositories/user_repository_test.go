package repositories

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/AmbHasan/My-quran-journey/model"
)

func TestApplyExperienceKeepsLevelInStep(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	learning := NewLearningRepository(db)

	user, err := users.CreateUser(ctx, &model.User{Email: "x@example.com", Username: "xavier", PasswordHash: "h", Level: 1, IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, delta := range []int{60, 60, 150} {
		if _, err := learning.ApplyExperience(ctx, user.ID, delta); err != nil {
			t.Fatalf("apply %d: %v", delta, err)
		}
	}

	updated, err := users.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.ExperiencePoints != 270 || updated.Level != 3 {
		t.Fatalf("expected 270 xp at level 3, got %d at %d", updated.ExperiencePoints, updated.Level)
	}

	if _, err := learning.ApplyExperience(ctx, "missing", 10); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetActiveUserSkipsInactive(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	user, err := users.CreateUser(ctx, &model.User{Email: "y@example.com", Username: "yusuf", PasswordHash: "h", Level: 1, IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := users.GetActiveUser(ctx, user.ID); err != nil {
		t.Fatalf("active lookup: %v", err)
	}

	if err := users.SetActive(ctx, user.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := users.GetActiveUser(ctx, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	if _, err := users.CreateUser(ctx, &model.User{Email: "z@example.com", Username: "zaid", PasswordHash: "h", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := users.CreateUser(ctx, &model.User{Email: "z@example.com", Username: "zaid2", PasswordHash: "h", IsActive: true})
	if err == nil {
		t.Fatal("expected a unique violation")
	}
}
