package server

import (
	"context"
	"time"

	"dormly/logger"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health reports whether the database answers
func (h *HealthController) Health(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.Error("Database ping failed", err)
		return utils.SendSuccess(c, fiber.StatusServiceUnavailable, "Database unavailable", fiber.Map{"database": "down"})
	}
	return utils.SendSuccess(c, fiber.StatusOK, "OK", fiber.Map{"database": "up"})
}
