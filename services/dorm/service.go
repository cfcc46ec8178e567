package dorm

import (
	"context"
	"errors"

	"dormly/apperror"
	dormModel "dormly/models/dorm"
	"dormly/services/search"
	dormTypes "dormly/types/dorm"

	"gorm.io/gorm"
)

var ErrDormNotFound = apperror.NotFound("Dorm not found")

// LatestReviews is how many reviews a dorm detail carries.
const LatestReviews = 5

// Service serves dorm detail pages.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new dorm service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// GetDorm returns a dorm with its room types cheapest first, its facilities
// and its latest reviews. A non-nil origin also sets the distance to the dorm.
func (s *Service) GetDorm(ctx context.Context, dormID uint, origin *dormTypes.Origin) (*dormModel.Dorm, error) {
	var d dormModel.Dorm
	err := s.DB.WithContext(ctx).
		Preload("RoomTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("rent_per_month ASC")
		}).
		Preload("Facilities", func(db *gorm.DB) *gorm.DB {
			return db.Order("faci_name ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(LatestReviews)
		}).
		First(&d, dormID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDormNotFound
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	SetDistance(&d, origin)
	return &d, nil
}

// SetDistance fills d.DistanceKm from origin, or clears it when origin is nil.
func SetDistance(d *dormModel.Dorm, origin *dormTypes.Origin) {
	if origin == nil {
		d.DistanceKm = nil
		return
	}
	km := search.DistanceKm(origin.Lat, origin.Lng, d.Lat, d.Long)
	d.DistanceKm = &km
}
