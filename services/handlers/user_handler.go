package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/shared"
)

type UserHandler struct {
	authSvc AuthServiceInterface
}

func NewUserHandler(authSvc AuthServiceInterface) *UserHandler {
	return &UserHandler{authSvc: authSvc}
}

// @Summary Get user profile
// @Description Get the authenticated user's profile
// @Tags user
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserProfile}
// @Failure 401 {object} shared.Response
// @Router /api/user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.authSvc.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, profile)
}
