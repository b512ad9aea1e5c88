package seeders

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
	"github.com/AmbHasan/My-quran-journey/shared"
)

const demoPassword = "bismillah123"

// DemoUser pairs a seeded account with the sessions it should receive.
type DemoUser struct {
	ID       string
	Email    string
	Username string
	Sessions []DemoSession
}

type DemoSession struct {
	SurahNumber     int
	AyahNumber      int
	SessionType     string
	DurationMinutes int
}

var demoUsers = []DemoUser{
	{
		Email:    "amina@example.com",
		Username: "amina",
		Sessions: []DemoSession{
			{1, 1, shared.SessionTypeMemorization, 20},
			{1, 2, shared.SessionTypeMemorization, 15},
			{112, 1, shared.SessionTypeRecitation, 10},
		},
	},
	{
		Email:    "yusuf@example.com",
		Username: "yusuf",
		Sessions: []DemoSession{
			{2, 255, shared.SessionTypeReading, 30},
			{18, 10, shared.SessionTypeTranslation, 25},
		},
	},
	{
		Email:    "maryam@example.com",
		Username: "maryam",
		Sessions: []DemoSession{
			{36, 1, shared.SessionTypeRecitation, 12},
		},
	},
}

// UserSeeder creates demo accounts that can log in with demoPassword.
type UserSeeder struct {
	users *repositories.UserRepository
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{users: repositories.NewUserRepository(db)}
}

// SeedUsers creates missing demo users. Existing accounts are kept and
// returned without their session plan so they are not credited twice.
func (s *UserSeeder) SeedUsers() ([]DemoUser, error) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	seeded := make([]DemoUser, 0, len(demoUsers))
	for _, demo := range demoUsers {
		existing, err := s.users.GetUserByEmail(ctx, demo.Email)
		if err == nil {
			log.WithField("email", demo.Email).Info("Demo user already exists, skipping")
			seeded = append(seeded, DemoUser{ID: existing.ID, Email: existing.Email, Username: existing.Username})
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user, err := s.users.CreateUser(ctx, &model.User{
			Email:            demo.Email,
			Username:         demo.Username,
			PasswordHash:     string(hash),
			Level:            1,
			CurrentSurah:     1,
			CurrentAyah:      1,
			PreferredReciter: "7",
			IsActive:         true,
			PlanType:         shared.PlanFree,
		})
		if err != nil {
			return nil, err
		}

		demo.ID = user.ID
		seeded = append(seeded, demo)
		log.WithField("email", demo.Email).Infof("Created demo user (password: %s)", demoPassword)
	}
	return seeded, nil
}

// ExistingUsers returns the demo accounts already present, each with its
// full session plan.
func (s *UserSeeder) ExistingUsers() ([]DemoUser, error) {
	ctx := context.Background()

	out := make([]DemoUser, 0, len(demoUsers))
	for _, demo := range demoUsers {
		user, err := s.users.GetUserByEmail(ctx, demo.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		demo.ID = user.ID
		out = append(out, demo)
	}
	return out, nil
}
