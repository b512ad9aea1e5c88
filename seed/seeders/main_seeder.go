package seeders

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll creates the demo users and then their learning history.
func (s *MainSeeder) SeedAll() error {
	log.Info("Starting database seeding...")

	users, err := s.SeedUsersOnly()
	if err != nil {
		log.WithError(err).Error("User seeding failed")
		return err
	}

	if err := NewActivitySeeder(s.db).SeedActivity(users); err != nil {
		log.WithError(err).Error("Activity seeding failed")
		return err
	}

	log.Info("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() ([]DemoUser, error) {
	return NewUserSeeder(s.db).SeedUsers()
}

// SeedActivityOnly seeds activity for demo users that already exist.
func (s *MainSeeder) SeedActivityOnly() error {
	users, err := NewUserSeeder(s.db).ExistingUsers()
	if err != nil {
		return err
	}
	return NewActivitySeeder(s.db).SeedActivity(users)
}
