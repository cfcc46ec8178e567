package auth

import (
	"dormly/logger"
	"dormly/middleware"
	authService "dormly/services/auth"
	"dormly/types"
	authTypes "dormly/types/auth"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	service *authService.Service
}

func NewAuthController(service *authService.Service) *AuthController {
	return &AuthController{service: service}
}

// Register creates an account
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendError(c, "Invalid request body", utils.ErrInvalidBody)
	}

	user, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, "Error registering user", err)
	}

	logger.Info("Registered user " + user.Username)
	return utils.SendSuccess(c, fiber.StatusCreated, "User registered successfully", user)
}

// Login checks the credentials and returns an access token
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendError(c, "Invalid request body", utils.ErrInvalidBody)
	}

	token, user, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, "Error logging in", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    user,
	})
}

// Profile returns the logged in user
func (h *AuthController) Profile(c *fiber.Ctx) error {
	user, err := h.service.Profile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, "Error fetching user", err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "User profile retrieved successfully", user)
}
