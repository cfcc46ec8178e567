package room

import (
	"dormly/logger"
	"dormly/middleware"
	bookingService "dormly/services/booking"
	roomService "dormly/services/room"
	roomTypes "dormly/types/room"
	"dormly/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type RoomController struct {
	service  *roomService.Service
	bookings *bookingService.Service
}

func NewRoomController(service *roomService.Service, bookings *bookingService.Service) *RoomController {
	return &RoomController{service: service, bookings: bookings}
}

func (rc *RoomController) list(c *fiber.Ctx, onlyAvailable bool) error {
	dormID, err := roomService.ParseID(c.Params("dormId"), roomTypes.MsgInvalidDormID)
	if err != nil {
		return utils.SendError(c, "Error fetching rooms for dorm", err)
	}

	rooms, err := rc.service.ListByDorm(c.UserContext(), dormID, onlyAvailable)
	if err != nil {
		return utils.SendError(c, "Error fetching rooms for dorm", err)
	}
	return utils.SendList(c, "Rooms retrieved successfully", rooms)
}

// ByDorm lists every room of a dorm
func (rc *RoomController) ByDorm(c *fiber.Ctx) error {
	return rc.list(c, false)
}

// AvailableByDorm lists the rooms of a dorm that can be booked
func (rc *RoomController) AvailableByDorm(c *fiber.Ctx) error {
	return rc.list(c, true)
}

// Show returns one room
func (rc *RoomController) Show(c *fiber.Ctx) error {
	roomID, err := roomService.ParseID(c.Params("id"), roomTypes.MsgInvalidRoomID)
	if err != nil {
		return utils.SendError(c, "Error fetching room", err)
	}

	room, err := rc.service.GetRoom(c.UserContext(), roomID)
	if err != nil {
		return utils.SendError(c, "Error fetching room", err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Room retrieved successfully", room)
}

// Update changes the status or occupancy of a room of the owner's dorm
func (rc *RoomController) Update(c *fiber.Ctx) error {
	roomID, err := roomService.ParseID(c.Params("id"), roomTypes.MsgInvalidRoomID)
	if err != nil {
		return utils.SendError(c, "Error updating room", err)
	}

	var req roomTypes.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendError(c, "Invalid request body", utils.ErrInvalidBody)
	}

	room, err := rc.bookings.UpdateRoom(c.UserContext(), roomID, middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, "Error updating room", err)
	}

	logger.Info(fmt.Sprintf("Room %d updated", room.ID))
	return utils.SendSuccess(c, fiber.StatusOK, "Room updated successfully", room)
}
