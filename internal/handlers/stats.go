// stats.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"github.com/NgocTV11/kids-memories-backend/internal/services"
	"github.com/NgocTV11/kids-memories-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatsHandler serves the signed-in user's own content counters
type StatsHandler struct {
	DB *gorm.DB
}

// Me handles GET /api/stats
// @Summary Content counters for the signed-in user
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.UserStats
// @Router /stats [get]
func (h *StatsHandler) Me(c *fiber.Ctx) error {
	userID, role := identity(c)
	stats, err := services.GetUserStats(h.DB, userID, role)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}
