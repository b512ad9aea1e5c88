package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

// @Summary Register a new user
// @Description Create a new user account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 429 {object} shared.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if handled, err := parseAndValidate(c, &req); handled {
		return err
	}

	resp, err := h.authSvc.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "User registered successfully", resp)
}

// @Summary Login user
// @Description Authenticate an active user and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.AuthResponse}
// @Failure 401 {object} shared.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if handled, err := parseAndValidate(c, &req); handled {
		return err
	}

	resp, err := h.authSvc.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}
