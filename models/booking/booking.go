package booking

import (
	"time"
)

// Booking reserves one room for the half-open interval [BeginAt, EndAt).
type Booking struct {
	ID        uint          `gorm:"column:booking_id;primaryKey;autoIncrement" json:"booking_id"`
	BookerID  uint          `gorm:"not null;index" json:"booker_id"`
	RoomID    uint          `gorm:"not null;index" json:"room_id"`
	BeginAt   time.Time     `gorm:"type:timestamptz;not null" json:"begin_at"`
	EndAt     time.Time     `gorm:"type:timestamptz;not null" json:"end_at"`
	Status    BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// IsOwnedBy reports whether userID made this booking.
func (b Booking) IsOwnedBy(userID uint) bool {
	return b.BookerID == userID
}
