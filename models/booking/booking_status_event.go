package booking

import (
	"time"
)

// BookingStatusEvent records one status a booking went through. Rows are
// written in the same transaction as the status change.
type BookingStatusEvent struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uint          `gorm:"not null;index" json:"booking_id"`
	Status    BookingStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
