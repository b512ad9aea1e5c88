package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/shared"
)

type LearningHandler struct {
	learningSvc LearningServiceInterface
}

func NewLearningHandler(learningSvc LearningServiceInterface) *LearningHandler {
	return &LearningHandler{learningSvc: learningSvc}
}

// @Summary Record a learning session
// @Description Stores the session and credits experience to the user
// @Tags learning
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param sessionRequest body dto.LearningSessionRequest true "Session details"
// @Success 200 {object} shared.Response{data=dto.LearningSessionResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} shared.Response
// @Router /api/learning/session [post]
func (h *LearningHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.LearningSessionRequest
	if handled, err := parseAndValidate(c, &req); handled {
		return err
	}

	resp, err := h.learningSvc.RecordSession(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get learning progress
// @Tags learning
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.ProgressResponse}
// @Router /api/learning/progress [get]
func (h *LearningHandler) GetProgress(c *fiber.Ctx) error {
	progress, err := h.learningSvc.GetProgress(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, progress)
}

// @Summary Update verse progress
// @Description Replaces the stored progress for the verse, or creates it
// @Tags learning
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param progressRequest body dto.ProgressRequest true "Progress details"
// @Success 200 {object} shared.Response{data=dto.MessageResponse}
// @Router /api/learning/progress [post]
func (h *LearningHandler) UpdateProgress(c *fiber.Ctx) error {
	var req dto.ProgressRequest
	if handled, err := parseAndValidate(c, &req); handled {
		return err
	}

	if err := h.learningSvc.UpdateProgress(c.UserContext(), currentUserID(c), req); err != nil {
		return err
	}
	return shared.ResponseOK(c, dto.MessageResponse{Message: "Progress updated"})
}
