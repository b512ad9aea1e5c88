package model

import "time"

type User struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:text"`
	Email              string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Username           string     `json:"username" gorm:"not null;size:30"`
	PasswordHash       string     `json:"-" gorm:"not null"`
	Level              int        `json:"level" gorm:"default:1;not null"`
	ExperiencePoints   int        `json:"experience_points" gorm:"default:0;not null;index:idx_users_experience_points,sort:desc"`
	CurrentSurah       int        `json:"current_surah" gorm:"default:1;not null"`
	CurrentAyah        int        `json:"current_ayah" gorm:"default:1;not null"`
	StreakDays         int        `json:"streak_days" gorm:"default:0;not null"`
	LastActivity       time.Time  `json:"last_activity"`
	PreferredReciter   string     `json:"preferred_reciter" gorm:"default:'7';size:20"`
	IsActive           bool       `json:"is_active" gorm:"default:true;not null"`
	IsPremium          bool       `json:"is_premium" gorm:"default:false;not null"`
	PlanType           string     `json:"plan_type" gorm:"default:'free';size:50"`
	PremiumActivatedAt *time.Time `json:"premium_activated_at"`
	StripeCustomerID   *string    `json:"stripe_customer_id"`
	PaymentIntentID    *string    `json:"payment_intent_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
