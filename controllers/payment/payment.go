package payment

import (
	"dormly/logger"
	"dormly/middleware"
	paymentService "dormly/services/payment"
	paymentTypes "dormly/types/payment"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct {
	service *paymentService.Service
}

func NewPaymentController(service *paymentService.Service) *PaymentController {
	return &PaymentController{service: service}
}

// CreateCharge pays for a pending booking with a card token
func (pc *PaymentController) CreateCharge(c *fiber.Ctx) error {
	var req paymentTypes.CreateChargeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendError(c, "Invalid request body", utils.ErrInvalidBody)
	}

	result, err := pc.service.CreateCharge(c.UserContext(), req, middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, "Payment processing failed", err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Payment successful", result)
}

// Verify looks up a charge at the gateway
func (pc *PaymentController) Verify(c *fiber.Ctx) error {
	charge, err := pc.service.VerifyCharge(c.UserContext(), c.Params("chargeId"))
	if err != nil {
		return utils.SendError(c, "Charge verification failed", err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Charge retrieved successfully", charge)
}
