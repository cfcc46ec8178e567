package booking

import "time"

// BookingDetail is a booking joined with its booker, room, room type and
// dorm, as returned by the booking read endpoints.
type BookingDetail struct {
	ID           uint      `gorm:"column:booking_id" json:"booking_id"`
	BookerID     uint      `gorm:"column:booker_id" json:"booker_id"`
	RoomID       uint      `gorm:"column:room_id" json:"room_id"`
	BeginAt      time.Time `gorm:"column:begin_at" json:"begin_at"`
	EndAt        time.Time `gorm:"column:end_at" json:"end_at"`
	Status       string    `gorm:"column:status" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	BookerName   string    `gorm:"column:booker_name" json:"booker_name"`
	BookerEmail  string    `gorm:"column:booker_email" json:"booker_email"`
	RoomName     string    `gorm:"column:room_name" json:"room_name"`
	RoomTypeName string    `gorm:"column:room_type_name" json:"room_type_name"`
	RentPerMonth float64   `gorm:"column:rent_per_month" json:"rent_per_month"`
	RentPerDay   *float64  `gorm:"column:rent_per_day" json:"rent_per_day"`
	DormID       uint      `gorm:"column:dorm_id" json:"dorm_id"`
	DormName     string    `gorm:"column:dorm_name" json:"dorm_name"`
	Address      string    `gorm:"column:address" json:"address"`
	Tel          *string   `gorm:"column:tel" json:"tel"`
}
