package utils

import (
	"dormly/apperror"
	"dormly/logger"
	"dormly/types"

	"github.com/gofiber/fiber/v2"
)

// SendError writes err in the response envelope. Validation errors carry
// every violation in data.errors. Storage errors are logged and answered
// with a generic message.
func SendError(c *fiber.Ctx, context string, err error) error {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()

	if appErr.Kind == apperror.KindStorage {
		logger.Error(context, err)
	}

	resp := types.ApiResponse{
		Message: appErr.PublicMessage(),
		Status:  status,
	}
	if appErr.Kind == apperror.KindValidation {
		resp.Data = types.ValidationErrors{Errors: appErr.Details}
	}
	return c.Status(status).JSON(resp)
}

// SendSuccess writes data in the response envelope.
func SendSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

// SendList writes a list with its count.
func SendList[T any](c *fiber.Ctx, message string, items []T) error {
	count := len(items)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusOK,
		Count:   &count,
		Data:    items,
	})
}

// ErrInvalidBody answers a request whose body could not be parsed.
var ErrInvalidBody = apperror.Validation("Invalid request body")
