package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AmbHasan/My-quran-journey/model"
)

// ExperienceStore is the write side of the experience ledger.
type ExperienceStore interface {
	CreateLearningSession(ctx context.Context, session *model.LearningSession) error
	ApplyExperience(ctx context.Context, userID string, delta int) (*model.User, error)
}

// LearningRepository stores learning sessions and applies experience to users.
type LearningRepository struct {
	BaseRepository
}

func NewLearningRepository(db *gorm.DB) *LearningRepository {
	return &LearningRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *LearningRepository) CreateLearningSession(ctx context.Context, session *model.LearningSession) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	session.ID = id.String()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	return ds.db.WithContext(ctx).Create(session).Error
}

// ApplyExperience adds delta to the user's points and recomputes the level in
// the same statement, then reads back the new totals.
func (ds *LearningRepository) ApplyExperience(ctx context.Context, userID string, delta int) (*model.User, error) {
	now := time.Now()
	res := ds.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"experience_points": gorm.Expr("experience_points + ?", delta),
		"level":             gorm.Expr("(experience_points + ?) / 100 + 1", delta),
		"last_activity":     now,
		"updated_at":        now,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user model.User
	err := ds.db.WithContext(ctx).
		Select("id", "level", "experience_points").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountSessions returns how many learning sessions the user has recorded.
func (ds *LearningRepository) CountSessions(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := ds.db.WithContext(ctx).
		Model(&model.LearningSession{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// WithTransaction runs fn against a repository bound to a single transaction.
func (ds *LearningRepository) WithTransaction(ctx context.Context, fn func(tx ExperienceStore) error) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewLearningRepository(tx))
	})
}
