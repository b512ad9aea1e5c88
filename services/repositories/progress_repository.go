package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AmbHasan/My-quran-journey/model"
)

const maxProgressRows = 1000

type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Upsert inserts the row or replaces the mutable fields of the existing row
// for the same (user, surah, ayah) in one statement.
func (ds *ProgressRepository) Upsert(ctx context.Context, progress *model.UserProgress) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	now := time.Now()
	progress.ID = id.String()
	progress.CreatedAt = now
	progress.UpdatedAt = now
	if progress.CompletedAt.IsZero() {
		progress.CompletedAt = now
	}

	return ds.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "surah_number"}, {Name: "ayah_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "experience_gained", "difficulty_level", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (ds *ProgressRepository) ListForUser(ctx context.Context, userID string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := ds.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(maxProgressRows).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
