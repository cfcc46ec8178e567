package booking

import (
	"dormly/logger"
	"dormly/middleware"
	bookingService "dormly/services/booking"
	bookingTypes "dormly/types/booking"
	"dormly/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	service *bookingService.Service
}

// NewBookingController creates a new booking controller
func NewBookingController(service *bookingService.Service) *BookingController {
	return &BookingController{service: service}
}

// Store books a room for the logged in user
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendError(c, "Invalid request body", utils.ErrInvalidBody)
	}

	booking, err := bc.service.CreateBooking(c.UserContext(), req, middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, "Error creating booking", err)
	}

	logger.Info(fmt.Sprintf("Booking %d created for room %d", booking.ID, booking.RoomID))
	return utils.SendSuccess(c, fiber.StatusCreated, "Booking created successfully", booking)
}

// Cancel cancels one of the user's bookings
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	bookingID, err := bookingService.ParseBookingID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, "Error cancelling booking", err)
	}

	booking, err := bc.service.CancelBooking(c.UserContext(), bookingID, middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, "Error cancelling booking", err)
	}

	logger.Info(fmt.Sprintf("Booking %d cancelled", booking.ID))
	return utils.SendSuccess(c, fiber.StatusOK, "Booking cancelled successfully", booking)
}

// Show returns one of the user's bookings
func (bc *BookingController) Show(c *fiber.Ctx) error {
	bookingID, err := bookingService.ParseBookingID(c.Params("id"))
	if err != nil {
		return utils.SendError(c, "Error fetching booking", err)
	}

	booking, err := bc.service.GetBooking(c.UserContext(), bookingID, middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, "Error fetching booking", err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Booking retrieved successfully", booking)
}

// Mine lists the user's bookings
func (bc *BookingController) Mine(c *fiber.Ctx) error {
	bookings, err := bc.service.ListUserBookings(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, "Error fetching user bookings", err)
	}
	return utils.SendList(c, "Bookings retrieved successfully", bookings)
}
