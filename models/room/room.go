package room

import "dormly/models/dorm"

// Room is a bookable unit. Status is only changed inside a booking service
// transaction that holds the room row lock.
type Room struct {
	ID           uint       `gorm:"column:room_id;primaryKey;autoIncrement" json:"room_id"`
	RoomTypeID   uint       `gorm:"not null;index" json:"room_type_id"`
	Name         string     `gorm:"column:room_name;type:varchar(100);not null" json:"room_name"`
	Status       RoomStatus `gorm:"size:20;not null;default:available;index" json:"status"`
	CurOccupancy int        `gorm:"not null;default:0" json:"cur_occupancy"`

	RoomType dorm.RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
