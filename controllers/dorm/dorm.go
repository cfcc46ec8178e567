package dorm

import (
	"dormly/logger"
	dormService "dormly/services/dorm"
	roomService "dormly/services/room"
	"dormly/services/search"
	dormTypes "dormly/types/dorm"
	roomTypes "dormly/types/room"
	"dormly/utils"

	"github.com/gofiber/fiber/v2"
)

type DormController struct {
	search *search.Service
	dorms  *dormService.Service
}

func NewDormController(searchService *search.Service, dorms *dormService.Service) *DormController {
	return &DormController{search: searchService, dorms: dorms}
}

// Search lists dorms matching the filters in the body. An empty body
// searches without filters.
func (dc *DormController) Search(c *fiber.Ctx) error {
	var filters search.Filters
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&filters); err != nil {
			logger.Error("Failed to parse search filters", err)
			return utils.SendError(c, "Invalid request body", utils.ErrInvalidBody)
		}
	}

	dorms, err := dc.search.Search(c.UserContext(), filters)
	if err != nil {
		return utils.SendError(c, "Error searching dorms", err)
	}
	return utils.SendList(c, "Dorms retrieved successfully", dorms)
}

// Show returns a dorm with its room types, facilities and latest reviews.
// Optional lat and lng query values add the distance from that point.
func (dc *DormController) Show(c *fiber.Ctx) error {
	dormID, err := roomService.ParseID(c.Params("id"), roomTypes.MsgInvalidDormID)
	if err != nil {
		return utils.SendError(c, "Error fetching dorm", err)
	}

	origin, err := dormTypes.ParseOrigin(c.Query("lat"), c.Query("lng"))
	if err != nil {
		return utils.SendError(c, "Error fetching dorm", err)
	}

	dorm, err := dc.dorms.GetDorm(c.UserContext(), dormID, origin)
	if err != nil {
		return utils.SendError(c, "Error fetching dorm", err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Dorm retrieved successfully", dorm)
}
