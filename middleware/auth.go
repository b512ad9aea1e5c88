package middleware

import (
	stdctx "context"
	"errors"
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/services"
	"github.com/AmbHasan/My-quran-journey/shared"
)

// TokenResolver turns a bearer token into an active user.
type TokenResolver interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	Resolve(ctx stdctx.Context, token string) (*model.User, error)
}

type AuthMiddleware struct {
	context.DefaultService

	resolver TokenResolver
}

func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

func (svc AuthMiddleware) Id() string {
	return shared.AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	svc.resolver = svc.Service(services.AUTH_SVC).(*services.AuthService)
	return nil
}

func (svc *AuthMiddleware) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.resolver.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		user, err := svc.resolver.Resolve(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, shared.ErrInvalidToken):
				return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			case errors.Is(err, shared.ErrUserNotFound):
				return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "User not found")
			}
			log.WithError(err).Error("Failed to resolve bearer token")
			return shared.ResponseError(c, err)
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.CurrentUser, user)
		return c.Next()
	}
}
