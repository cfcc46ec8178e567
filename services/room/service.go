package room

import (
	"context"
	"errors"
	"strconv"

	"dormly/apperror"
	roomModel "dormly/models/room"

	"gorm.io/gorm"
)

var ErrRoomNotFound = apperror.NotFound("Room not found")

// Service reads rooms. Owner updates go through the booking service so they
// share the room lock with bookings.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new room service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ParseID parses a positive id from a URL path, reporting msg when it is
// not one.
func ParseID(raw, msg string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(msg)
	}
	return uint(id), nil
}

// ListByDorm returns the rooms of a dorm with their room type, available
// rooms first. onlyAvailable drops occupied rooms.
func (s *Service) ListByDorm(ctx context.Context, dormID uint, onlyAvailable bool) ([]roomModel.Room, error) {
	query := s.DB.WithContext(ctx).
		Joins("JOIN room_types rt ON rt.room_type_id = rooms.room_type_id").
		Where("rt.dorm_id = ?", dormID)
	if onlyAvailable {
		query = query.Where("rooms.status = ?", roomModel.RoomStatusAvailable)
	}

	rooms := []roomModel.Room{}
	err := query.Preload("RoomType").
		Order("rooms.status ASC, rooms.room_name ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return rooms, nil
}

// GetRoom returns one room with its room type.
func (s *Service) GetRoom(ctx context.Context, roomID uint) (*roomModel.Room, error) {
	var r roomModel.Room
	err := s.DB.WithContext(ctx).Preload("RoomType").First(&r, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &r, nil
}
