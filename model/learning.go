package model

import "time"

// LearningSession is written once per learning activity and never changed.
type LearningSession struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	UserID           string    `json:"user_id" gorm:"not null;index:idx_learning_sessions_user_created,priority:1"`
	SurahNumber      int       `json:"surah_number" gorm:"not null"`
	AyahNumber       int       `json:"ayah_number" gorm:"not null"`
	SessionType      string    `json:"session_type" gorm:"not null;size:20"`
	DurationMinutes  int       `json:"duration_minutes" gorm:"not null"`
	ExperienceGained int       `json:"experience_gained" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"not null;index:idx_learning_sessions_user_created,priority:2,sort:desc"`
}

// UserProgress holds at most one row per (user, surah, ayah).
type UserProgress struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	UserID           string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_progress_verse,priority:1"`
	SurahNumber      int       `json:"surah_number" gorm:"not null;uniqueIndex:idx_user_progress_verse,priority:2"`
	AyahNumber       int       `json:"ayah_number" gorm:"not null;uniqueIndex:idx_user_progress_verse,priority:3"`
	Completed        bool      `json:"completed" gorm:"not null"`
	ExperienceGained int       `json:"experience_gained" gorm:"not null"`
	DifficultyLevel  string    `json:"difficulty_level" gorm:"not null;size:20"`
	CompletedAt      time.Time `json:"completed_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
