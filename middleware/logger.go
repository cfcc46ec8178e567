package middleware

import (
	"time"

	"dormly/logger"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger queues a sanitized copy of every request and response on
// the async logger once the handler chain has run.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let fiber's error handler write the response before it is logged.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				c.Status(fiber.StatusInternalServerError)
			}
		}

		var userID *uint
		if id := UserID(c); id != 0 {
			userID = &id
		}
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c, userID, time.Since(start)))
		return nil
	}
}
