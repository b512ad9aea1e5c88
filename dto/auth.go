package dto

import (
	"time"

	"github.com/AmbHasan/My-quran-journey/model"
)

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Username string `json:"username" validate:"required,min=3,max=30" example:"abdullah"`
	Password string `json:"password" validate:"required,password_policy" example:"bismillah123"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"bismillah123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type AuthResponse struct {
	AccessToken string      `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User        UserProfile `json:"user"`
}

// UserProfile is the user record without the password hash.
type UserProfile struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	Level              int        `json:"level"`
	ExperiencePoints   int        `json:"experience_points"`
	CurrentSurah       int        `json:"current_surah"`
	CurrentAyah        int        `json:"current_ayah"`
	StreakDays         int        `json:"streak_days"`
	LastActivity       time.Time  `json:"last_activity"`
	CreatedAt          time.Time  `json:"created_at"`
	PreferredReciter   string     `json:"preferred_reciter"`
	IsActive           bool       `json:"is_active"`
	IsPremium          bool       `json:"is_premium"`
	PlanType           string     `json:"plan_type"`
	PremiumActivatedAt *time.Time `json:"premium_activated_at"`
	StripeCustomerID   *string    `json:"stripe_customer_id"`
	PaymentIntentID    *string    `json:"payment_intent_id"`
}

func NewUserProfile(user *model.User) UserProfile {
	return UserProfile{
		ID:                 user.ID,
		Email:              user.Email,
		Username:           user.Username,
		Level:              user.Level,
		ExperiencePoints:   user.ExperiencePoints,
		CurrentSurah:       user.CurrentSurah,
		CurrentAyah:        user.CurrentAyah,
		StreakDays:         user.StreakDays,
		LastActivity:       user.LastActivity,
		CreatedAt:          user.CreatedAt,
		PreferredReciter:   user.PreferredReciter,
		IsActive:           user.IsActive,
		IsPremium:          user.IsPremium,
		PlanType:           user.PlanType,
		PremiumActivatedAt: user.PremiumActivatedAt,
		StripeCustomerID:   user.StripeCustomerID,
		PaymentIntentID:    user.PaymentIntentID,
	}
}
