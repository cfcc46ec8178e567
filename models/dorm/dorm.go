package dorm

import (
	"time"

	"github.com/lib/pq"
)

// Dorm is a property listing. It is read-mostly from the booking side.
type Dorm struct {
	ID         uint           `gorm:"column:dorm_id;primaryKey;autoIncrement" json:"dorm_id"`
	Name       string         `gorm:"column:dorm_name;type:varchar(255);not null" json:"dorm_name"`
	OwnerID    *uint          `gorm:"index" json:"owner_id,omitempty"`
	Lat        float64        `gorm:"column:lat;not null" json:"lat"`
	Long       float64        `gorm:"column:long;not null" json:"long"`
	Address    string         `gorm:"type:text" json:"address"`
	Soi        *string        `gorm:"type:varchar(255)" json:"soi,omitempty"`
	Moo        *string        `gorm:"type:varchar(50)" json:"moo,omitempty"`
	Road       *string        `gorm:"type:varchar(255)" json:"road,omitempty"`
	Prov       string         `gorm:"type:varchar(255)" json:"prov"`
	Dist       string         `gorm:"type:varchar(255)" json:"dist"`
	Subdist    string         `gorm:"type:varchar(255)" json:"subdist"`
	PostalCode string         `gorm:"type:varchar(10)" json:"postal_code"`
	Tel        *string        `gorm:"type:varchar(20)" json:"tel,omitempty"`
	LineID     *string        `gorm:"type:varchar(100)" json:"line_id,omitempty"`
	AvgScore   float64        `gorm:"type:numeric(3,2);default:0" json:"avg_score"`
	Likes      int            `gorm:"default:0" json:"likes"`
	Medias     pq.StringArray `gorm:"type:text[]" json:"medias"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`

	RoomTypes  []RoomType `gorm:"foreignKey:DormID" json:"room_types,omitempty"`
	Facilities []Facility `gorm:"many2many:facility_lists;joinForeignKey:DormID;joinReferences:FaciID" json:"facilities,omitempty"`
	Reviews    []Review   `gorm:"foreignKey:DormID" json:"reviews,omitempty"`

	// DistanceKm is set on detail reads made from a known position.
	DistanceKm *float64 `gorm:"-" json:"distance_km,omitempty"`
}

// RoomType is a priced category of rooms within a dorm.
type RoomType struct {
	ID           uint     `gorm:"column:room_type_id;primaryKey;autoIncrement" json:"room_type_id"`
	DormID       uint     `gorm:"not null;index" json:"dorm_id"`
	Name         string   `gorm:"column:room_type_name;type:varchar(255);not null" json:"room_type_name"`
	Description  *string  `gorm:"column:room_type_desc;type:text" json:"room_type_desc,omitempty"`
	RentPerMonth float64  `gorm:"type:numeric(10,2);not null" json:"rent_per_month"`
	RentPerDay   *float64 `gorm:"type:numeric(10,2)" json:"rent_per_day,omitempty"`
}
