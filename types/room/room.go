package room

import (
	roomModel "dormly/models/room"
)

const (
	MsgInvalidRoomID    = "Invalid room ID"
	MsgInvalidDormID    = "Invalid dorm ID"
	MsgInvalidStatus    = "Invalid status. Must be: available, occupied, ห้องว่าง, ห้องไม่ว่าง"
	MsgInvalidOccupancy = "Current occupancy must be a non-negative number"
	MsgNoUpdateData     = "No update data provided"
)

// UpdateRoomRequest is the body of PUT /api/rooms/:id. Status may use
// either the canonical value or the Thai label.
type UpdateRoomRequest struct {
	Status       *string `json:"status"`
	CurOccupancy *int    `json:"cur_occupancy"`
}

// Updates validates the request and returns the columns to write. Only
// canonical status values are returned.
func (r UpdateRoomRequest) Updates() (map[string]interface{}, []string) {
	updates := map[string]interface{}{}
	var violations []string

	if r.Status != nil {
		status, err := roomModel.ParseRoomStatus(*r.Status)
		if err != nil {
			violations = append(violations, MsgInvalidStatus)
		} else {
			updates["status"] = status
		}
	}
	if r.CurOccupancy != nil {
		if *r.CurOccupancy < 0 {
			violations = append(violations, MsgInvalidOccupancy)
		} else {
			updates["cur_occupancy"] = *r.CurOccupancy
		}
	}

	if len(violations) == 0 && len(updates) == 0 {
		violations = append(violations, MsgNoUpdateData)
	}
	return updates, violations
}
