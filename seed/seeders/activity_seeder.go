package seeders

import (
	"context"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/services"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
	"github.com/AmbHasan/My-quran-journey/shared"
)

// ActivitySeeder records demo sessions through the same ledger the API uses,
// so points and levels stay consistent.
type ActivitySeeder struct {
	sessions *repositories.LearningRepository
	learning *services.LearningService
}

func NewActivitySeeder(db *gorm.DB) *ActivitySeeder {
	sessions := repositories.NewLearningRepository(db)
	return &ActivitySeeder{
		sessions: sessions,
		learning: services.NewLearningService(
			sessions,
			repositories.NewProgressRepository(db),
			repositories.NewUserRepository(db),
		),
	}
}

// SeedActivity records the session plan of every user that has no sessions
// yet, so re-running it never credits experience twice.
func (s *ActivitySeeder) SeedActivity(users []DemoUser) error {
	ctx := context.Background()

	for _, user := range users {
		existing, err := s.sessions.CountSessions(ctx, user.ID)
		if err != nil {
			return err
		}
		if existing > 0 {
			log.WithField("username", user.Username).Info("Activity already seeded, skipping")
			continue
		}

		for _, session := range user.Sessions {
			resp, err := s.learning.RecordSession(ctx, user.ID, dto.LearningSessionRequest{
				SurahNumber:     session.SurahNumber,
				AyahNumber:      session.AyahNumber,
				SessionType:     session.SessionType,
				DurationMinutes: session.DurationMinutes,
			})
			if err != nil {
				return err
			}

			err = s.learning.UpdateProgress(ctx, user.ID, dto.ProgressRequest{
				SurahNumber:      session.SurahNumber,
				AyahNumber:       session.AyahNumber,
				Completed:        session.SessionType == shared.SessionTypeMemorization,
				ExperienceGained: resp.ExperienceGained,
				DifficultyLevel:  shared.DifficultyBeginner,
			})
			if err != nil {
				return err
			}
		}

		if len(user.Sessions) > 0 {
			log.WithFields(log.Fields{
				"username": user.Username,
				"sessions": len(user.Sessions),
			}).Info("Seeded learning activity")
		}
	}
	return nil
}
