package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
	"github.com/AmbHasan/My-quran-journey/shared"
)

const (
	LEARNING_SVC = "learning_svc"

	pointsPerLevel          = 100
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

// Transactor is implemented by experience stores that can run the session
// insert and the points update atomically.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(tx repositories.ExperienceStore) error) error
}

type ProgressStore interface {
	Upsert(ctx context.Context, progress *model.UserProgress) error
	ListForUser(ctx context.Context, userID string) ([]model.UserProgress, error)
}

type LeaderboardStore interface {
	TopByExperience(ctx context.Context, limit int) ([]model.User, error)
}

// LearningService owns the experience ledger and per-verse progress.
type LearningService struct {
	appContext.DefaultService

	store    repositories.ExperienceStore
	progress ProgressStore
	users    LeaderboardStore
	now      func() time.Time
}

func NewLearningService(store repositories.ExperienceStore, progress ProgressStore, users LeaderboardStore) *LearningService {
	return &LearningService{
		store:    store,
		progress: progress,
		users:    users,
		now:      time.Now,
	}
}

func (svc LearningService) Id() string {
	return LEARNING_SVC
}

func (svc *LearningService) Configure(ctx *appContext.Context) error {
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *LearningService) Start() error {
	db := svc.Service(POSTGRES_SVC).(*PostgresService).Db()
	svc.store = repositories.NewLearningRepository(db)
	svc.progress = repositories.NewProgressRepository(db)
	svc.users = repositories.NewUserRepository(db)
	return nil
}

// BaseRate is the experience earned per minute for a session type.
func BaseRate(sessionType string) int {
	switch sessionType {
	case shared.SessionTypeMemorization:
		return 20
	case shared.SessionTypeRecitation:
		return 15
	default:
		return 10
	}
}

func ExperienceFor(sessionType string, minutes int) int {
	return BaseRate(sessionType) * minutes
}

func LevelFor(experiencePoints int) int {
	return experiencePoints/pointsPerLevel + 1
}

// RecordSession stores the session and credits its experience to the user.
func (svc *LearningService) RecordSession(ctx context.Context, userID string, req dto.LearningSessionRequest) (*dto.LearningSessionResponse, error) {
	gained := ExperienceFor(req.SessionType, req.DurationMinutes)
	session := &model.LearningSession{
		UserID:           userID,
		SurahNumber:      req.SurahNumber,
		AyahNumber:       req.AyahNumber,
		SessionType:      req.SessionType,
		DurationMinutes:  req.DurationMinutes,
		ExperienceGained: gained,
		CreatedAt:        svc.now(),
	}

	logEntry := log.WithFields(log.Fields{
		"user_id":      userID,
		"session_type": req.SessionType,
		"experience":   gained,
	})

	var user *model.User
	if tx, ok := svc.store.(Transactor); ok {
		err := tx.WithTransaction(ctx, func(store repositories.ExperienceStore) error {
			if err := store.CreateLearningSession(ctx, session); err != nil {
				return err
			}
			updated, err := store.ApplyExperience(ctx, userID, gained)
			if err != nil {
				return err
			}
			user = updated
			return nil
		})
		if err != nil {
			logEntry.WithError(err).Error("Failed to record learning session")
			return nil, persistenceError(err, "Failed to record learning session")
		}
	} else {
		if err := svc.store.CreateLearningSession(ctx, session); err != nil {
			logEntry.WithError(err).Error("Failed to record learning session")
			return nil, persistenceError(err, "Failed to record learning session")
		}

		updated, err := svc.store.ApplyExperience(ctx, userID, gained)
		if err != nil {
			ledgerPartialFailuresTotal.Inc()
			logEntry.WithError(err).WithField("session_id", session.ID).
				Error("Learning session stored but experience update failed")
			return nil, fmt.Errorf("%w: session %s: %w", shared.ErrPartialFailure, session.ID, HandleDBError(err))
		}
		user = updated
	}

	ledgerExperienceAwardedTotal.WithLabelValues(req.SessionType).Add(float64(gained))

	return &dto.LearningSessionResponse{
		Message:          "Session created",
		ExperienceGained: gained,
		ExperiencePoints: user.ExperiencePoints,
		Level:            user.Level,
	}, nil
}

// UpdateProgress records the latest report for a verse, replacing any
// earlier one.
func (svc *LearningService) UpdateProgress(ctx context.Context, userID string, req dto.ProgressRequest) error {
	row := &model.UserProgress{
		UserID:           userID,
		SurahNumber:      req.SurahNumber,
		AyahNumber:       req.AyahNumber,
		Completed:        req.Completed,
		ExperienceGained: req.ExperienceGained,
		DifficultyLevel:  req.DifficultyLevel,
		CompletedAt:      svc.now(),
	}

	if err := svc.progress.Upsert(ctx, row); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"surah":   req.SurahNumber,
			"ayah":    req.AyahNumber,
		}).Error("Failed to update progress")
		return persistenceError(err, "Failed to update progress")
	}
	return nil
}

func (svc *LearningService) GetProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	rows, err := svc.progress.ListForUser(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to list progress")
		return nil, persistenceError(err, "Failed to get progress")
	}

	out := make([]dto.ProgressResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ProgressResponse{
			ID:               row.ID,
			UserID:           row.UserID,
			SurahNumber:      row.SurahNumber,
			AyahNumber:       row.AyahNumber,
			Completed:        row.Completed,
			ExperienceGained: row.ExperienceGained,
			CompletedAt:      row.CompletedAt,
			DifficultyLevel:  row.DifficultyLevel,
		})
	}
	return out, nil
}

func ClampLeaderboardLimit(limit int) int {
	if limit < 1 {
		return defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

func (svc *LearningService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	users, err := svc.users.TopByExperience(ctx, ClampLeaderboardLimit(limit))
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard")
		return nil, persistenceError(err, "Failed to get leaderboard")
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:             i + 1,
			Username:         u.Username,
			Level:            u.Level,
			ExperiencePoints: u.ExperiencePoints,
		})
	}
	return entries, nil
}

func persistenceError(err error, message string) error {
	return shared.NewInternalError(wrapPersistence(err), message)
}
