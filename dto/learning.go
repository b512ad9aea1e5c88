package dto

import "time"

type LearningSessionRequest struct {
	SurahNumber     int    `json:"surah_number" validate:"required,min=1,max=114" example:"1"`
	AyahNumber      int    `json:"ayah_number" validate:"required,min=1" example:"1"`
	SessionType     string `json:"session_type" validate:"required,session_type" example:"memorization"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=300" example:"10"`
}

func (r LearningSessionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LearningSessionResponse struct {
	Message          string `json:"message" example:"Session created"`
	ExperienceGained int    `json:"experience_gained" example:"200"`
	ExperiencePoints int    `json:"experience_points" example:"1250"`
	Level            int    `json:"level" example:"13"`
}

type ProgressRequest struct {
	SurahNumber      int    `json:"surah_number" validate:"required,min=1,max=114" example:"1"`
	AyahNumber       int    `json:"ayah_number" validate:"required,min=1" example:"7"`
	Completed        bool   `json:"completed" example:"true"`
	ExperienceGained int    `json:"experience_gained" validate:"min=0" example:"50"`
	DifficultyLevel  string `json:"difficulty_level" validate:"required,difficulty" example:"beginner"`
}

func (r ProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ProgressResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	SurahNumber      int       `json:"surah_number"`
	AyahNumber       int       `json:"ayah_number"`
	Completed        bool      `json:"completed"`
	ExperienceGained int       `json:"experience_gained"`
	CompletedAt      time.Time `json:"completed_at"`
	DifficultyLevel  string    `json:"difficulty_level"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Progress updated"`
}

type LeaderboardEntry struct {
	Rank             int    `json:"rank" example:"1"`
	Username         string `json:"username" example:"abdullah"`
	Level            int    `json:"level" example:"13"`
	ExperiencePoints int    `json:"experience_points" example:"1250"`
}

type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2026-01-01T00:00:00Z"`
	Version   string `json:"version" example:"1.0.0"`
}
