package services

import (
	"context"
	"errors"
	"strings"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
	"github.com/AmbHasan/My-quran-journey/shared"
)

const (
	maxUsernameLength = 30
	minUsernameLength = 3
)

// AuthService registers and logs in users and resolves bearer tokens to
// active users.
type AuthService struct {
	appContext.DefaultService

	jwtSvc   *JWTService
	userRepo *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func NewAuthService(db *gorm.DB, jwtSvc *JWTService) *AuthService {
	return &AuthService{
		jwtSvc:   jwtSvc,
		userRepo: repositories.NewUserRepository(db),
	}
}

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.userRepo = repositories.NewUserRepository(svc.Service(POSTGRES_SVC).(*PostgresService).Db())
	return nil
}

func (svc *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := dto.SanitizeString(req.Username, maxUsernameLength)
	if len([]rune(username)) < minUsernameLength {
		return nil, shared.NewBadRequestError(shared.ErrValidation, "Username must be at least 3 characters long")
	}

	if _, err := svc.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, shared.NewBadRequestError(shared.ErrValidation, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, wrapPersistence(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.userRepo.CreateUser(ctx, &model.User{
		Email:            email,
		Username:         username,
		PasswordHash:     string(hash),
		Level:            1,
		CurrentSurah:     1,
		CurrentAyah:      1,
		PreferredReciter: "7",
		IsActive:         true,
		PlanType:         shared.PlanFree,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shared.NewBadRequestError(shared.ErrValidation, "Email already registered")
		}
		log.WithError(err).WithField("email", email).Error("Failed to create user")
		return nil, wrapPersistence(err)
	}

	token, err := svc.jwtSvc.Issue(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	log.WithField("user_id", user.ID).Info("User registered")
	return &dto.AuthResponse{AccessToken: token, User: dto.NewUserProfile(user)}, nil
}

func (svc *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := svc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
		}
		log.WithError(err).Error("Failed to look up user by email")
		return nil, wrapPersistence(err)
	}

	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(shared.ErrUserNotFound, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	token, err := svc.jwtSvc.Issue(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	return &dto.AuthResponse{AccessToken: token, User: dto.NewUserProfile(user)}, nil
}

// Resolve maps a bearer token to its active user. It never writes.
func (svc *AuthService) Resolve(ctx context.Context, token string) (*model.User, error) {
	userID, err := svc.jwtSvc.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := svc.userRepo.GetActiveUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUserNotFound
		}
		log.WithError(err).WithField("user_id", userID).Error("Failed to resolve user")
		return nil, wrapPersistence(err)
	}
	return user, nil
}

func (svc *AuthService) GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := svc.userRepo.GetActiveUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, wrapPersistence(err)
	}
	profile := dto.NewUserProfile(user)
	return &profile, nil
}

// ExtractTokenFromHeader is exposed for the auth middleware.
func (svc *AuthService) ExtractTokenFromHeader(authHeader string) (string, error) {
	return svc.jwtSvc.ExtractTokenFromHeader(authHeader)
}
