package dorm

import (
	"math"
	"strconv"

	"dormly/apperror"

	"github.com/lib/pq"
)

// DormSummary is one row of a dorm search result.
type DormSummary struct {
	ID                  uint           `gorm:"column:dorm_id" json:"dorm_id"`
	Name                string         `gorm:"column:dorm_name" json:"dorm_name"`
	Address             string         `gorm:"column:address" json:"address"`
	Prov                string         `gorm:"column:prov" json:"prov"`
	Dist                string         `gorm:"column:dist" json:"dist"`
	Subdist             string         `gorm:"column:subdist" json:"subdist"`
	AvgScore            float64        `gorm:"column:avg_score" json:"avg_score"`
	Likes               int            `gorm:"column:likes" json:"likes"`
	Medias              pq.StringArray `gorm:"column:medias" json:"medias"`
	Lat                 float64        `gorm:"column:lat" json:"lat"`
	Long                float64        `gorm:"column:long" json:"long"`
	MinPrice            *float64       `gorm:"column:min_price" json:"min_price"`
	AvailableRoomsCount int            `gorm:"column:available_rooms_count" json:"available_rooms_count"`
	DistanceKm          *float64       `gorm:"column:distance_km" json:"distance_km,omitempty"`
}


const (
	MsgInvalidLat    = "Latitude must be a number between -90 and 90"
	MsgInvalidLng    = "Longitude must be a number between -180 and 180"
	MsgIncompletePos = "Latitude and longitude must be given together"
)

// Origin is the position a dorm detail page is viewed from.
type Origin struct {
	Lat float64
	Lng float64
}

// ParseOrigin reads the lat and lng query values. When both are empty it
// returns nil and no error.
func ParseOrigin(lat, lng string) (*Origin, error) {
	if lat == "" && lng == "" {
		return nil, nil
	}
	if lat == "" || lng == "" {
		return nil, apperror.Validation(MsgIncompletePos)
	}

	var violations []string
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || math.IsNaN(la) || la < -90 || la > 90 {
		violations = append(violations, MsgInvalidLat)
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil || math.IsNaN(ln) || ln < -180 || ln > 180 {
		violations = append(violations, MsgInvalidLng)
	}
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}
	return &Origin{Lat: la, Lng: ln}, nil
}
