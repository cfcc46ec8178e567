package room

import "fmt"

type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "available"
	RoomStatusOccupied  RoomStatus = "occupied"
)

// Thai labels shown by the owner dashboard. They are never stored.
const (
	labelAvailable = "ห้องว่าง"
	labelOccupied  = "ห้องไม่ว่าง"
)

func (rs RoomStatus) String() string {
	return string(rs)
}

func (rs RoomStatus) IsValid() bool {
	switch rs {
	case RoomStatusAvailable, RoomStatusOccupied:
		return true
	default:
		return false
	}
}

// Label returns the localized presentation string.
func (rs RoomStatus) Label() string {
	switch rs {
	case RoomStatusAvailable:
		return labelAvailable
	case RoomStatusOccupied:
		return labelOccupied
	default:
		return string(rs)
	}
}

// ParseRoomStatus accepts the canonical value or its Thai label and
// returns the canonical value.
func ParseRoomStatus(s string) (RoomStatus, error) {
	switch s {
	case string(RoomStatusAvailable), labelAvailable:
		return RoomStatusAvailable, nil
	case string(RoomStatusOccupied), labelOccupied:
		return RoomStatusOccupied, nil
	}
	return "", fmt.Errorf("invalid room status %q", s)
}
