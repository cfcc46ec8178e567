package dorm

import "time"

// Facility is an amenity a dorm can offer, such as wifi or a laundry room.
type Facility struct {
	ID   uint   `gorm:"column:faci_id;primaryKey;autoIncrement" json:"faci_id"`
	Name string `gorm:"column:faci_name;type:varchar(100);not null;unique" json:"faci_name"`
}

// FacilityList links dorms to their facilities.
type FacilityList struct {
	DormID uint `gorm:"primaryKey" json:"dorm_id"`
	FaciID uint `gorm:"primaryKey" json:"faci_id"`
}

func (FacilityList) TableName() string {
	return "facility_lists"
}

// Review is a tenant's score and comment on a dorm.
type Review struct {
	ID        uint      `gorm:"column:review_id;primaryKey;autoIncrement" json:"review_id"`
	DormID    uint      `gorm:"not null;index" json:"dorm_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	Score     float64   `gorm:"type:numeric(2,1);not null" json:"score"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
