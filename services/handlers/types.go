package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error)
}

type QuranServiceInterface interface {
	GetChapters(ctx context.Context) []dto.Chapter
	GetVerses(ctx context.Context, chapterID, perPage int) ([]dto.Verse, error)
	GetAudioURL(ctx context.Context, chapterID, verseNumber int, reciter string) *string
	GetReciters() []dto.Reciter
}

type LearningServiceInterface interface {
	RecordSession(ctx context.Context, userID string, req dto.LearningSessionRequest) (*dto.LearningSessionResponse, error)
	UpdateProgress(ctx context.Context, userID string, req dto.ProgressRequest) error
	GetProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
	Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type PaymentServiceInterface interface {
	CreatePaymentIntent(ctx context.Context, user *model.User, planType string) (*dto.PaymentIntentResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*dto.WebhookResponse, error)
	SubscriptionStatus(user *model.User) *dto.SubscriptionStatusResponse
}

// parseAndValidate decodes the JSON body into req and runs its validation tags.
// On failure the 400 response has already been written and handled is true.
func parseAndValidate(c *fiber.Ctx, req dto.Validator) (handled bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return true, shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return true, c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	return false, nil
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(shared.UserID).(string)
	return userID
}

func currentUser(c *fiber.Ctx) (*model.User, error) {
	user, ok := c.Locals(shared.CurrentUser).(*model.User)
	if !ok || user == nil {
		return nil, shared.NewUnauthorizedError(shared.ErrUserNotFound, "Unauthorized")
	}
	return user, nil
}
