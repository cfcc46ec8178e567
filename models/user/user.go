package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a Dormly account. Bookings reference it as their booker.
type User struct {
	ID           uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Uuid         string    `gorm:"type:varchar(36);not null;unique" json:"uuid"`
	Username     string    `gorm:"type:varchar(255);not null;unique" json:"username"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"column:f_name;type:varchar(255);not null" json:"f_name"`
	LastName     string    `gorm:"column:l_name;type:varchar(255);not null" json:"l_name"`
	Email        string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Sex          *string   `gorm:"type:varchar(20)" json:"sex,omitempty"`
	NationalID   *string   `gorm:"type:text" json:"-"`
	ProfilePath  *string   `gorm:"type:varchar(2048)" json:"profile_path,omitempty"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

// BeforeCreate assigns the public identifier carried in auth tokens.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Uuid == "" {
		u.Uuid = uuid.NewString()
	}
	return nil
}

// FullName joins first and last name the way booking views display it.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
