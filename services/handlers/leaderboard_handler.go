package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmbHasan/My-quran-journey/shared"
)

type LeaderboardHandler struct {
	learningSvc LearningServiceInterface
}

func NewLeaderboardHandler(learningSvc LearningServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{learningSvc: learningSvc}
}

// @Summary Get leaderboard
// @Description Active users ranked by experience points
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Limit results (default 10, max 50)"
// @Success 200 {object} shared.Response{data=[]dto.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	leaderboard, err := h.learningSvc.Leaderboard(c.UserContext(), limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", leaderboard)
}
