package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AmbHasan/My-quran-journey/model"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := ds.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveUser returns gorm.ErrRecordNotFound for unknown and inactive users alike.
func (ds *UserRepository) GetActiveUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := ds.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", userID, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.ID = id.String()
	user.LastActivity = now
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := ds.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	return ds.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	}).Error
}

// TopByExperience lists active users ordered by experience, highest first.
func (ds *UserRepository) TopByExperience(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := ds.db.WithContext(ctx).
		Select("id", "username", "level", "experience_points").
		Where("is_active = ?", true).
		Order("experience_points DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ActivatePremium marks the user premium in a single update statement.
func (ds *UserRepository) ActivatePremium(ctx context.Context, userID, planType, paymentIntentID string) (int64, error) {
	now := time.Now()
	res := ds.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_premium":           true,
		"plan_type":            planType,
		"premium_activated_at": &now,
		"payment_intent_id":    paymentIntentID,
		"updated_at":           now,
	})
	return res.RowsAffected, res.Error
}
