package middleware

import (
	"strings"

	"dormly/logger"
	"dormly/services/auth"
	"dormly/types"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID   = "userID"
	localUsername = "username"
)

// IsAuthenticated checks for a valid access token in the Authorization
// header, falling back to the "access" cookie, and stores the user id in
// the request locals.
func IsAuthenticated(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Invalid authorization header format",
					Status:  fiber.StatusUnauthorized,
				})
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Authorization token missing",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			logger.Warning("JWT verification failed: " + err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localUsername, claims.Username)

		return c.Next()
	}
}

// UserID returns the authenticated user id, 0 when the request did not pass
// IsAuthenticated.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}
