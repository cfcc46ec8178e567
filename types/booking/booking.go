package booking

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/now"
)

var validate = validator.New()

// dateParser is the lenient fallback. Only layouts with a full date are
// listed so a bare time such as "12:30" is rejected instead of meaning today.
var dateParser = &now.Config{
	WeekStartDay: time.Monday,
	TimeFormats: []string{
		"2006-01-02",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006/01/02",
		"2006/01/02 15:04",
	},
}

const (
	MsgRoomIDRequired = "Valid room ID is required"
	MsgBeginRequired  = "Start date is required"
	MsgEndRequired    = "End date is required"
	MsgBeginInvalid   = "Invalid start date"
	MsgEndInvalid     = "Invalid end date"
	MsgBeginInPast    = "Start date cannot be in the past"
	MsgEndBeforeBegin = "End date must be after start date"
	MsgInvalidUserID  = "Invalid user ID"
	MsgInvalidBooking = "Invalid booking ID"
)

// CreateBookingRequest is the body of POST /api/bookings. room_id may be
// sent as a JSON number or a numeric string.
type CreateBookingRequest struct {
	RoomID  RawID  `json:"room_id" validate:"required,numeric"`
	BeginAt string `json:"begin_at" validate:"required"`
	EndAt   string `json:"end_at" validate:"required"`
}

// CreateBookingInput is a request that passed validation.
type CreateBookingInput struct {
	RoomID  uint
	BeginAt time.Time
	EndAt   time.Time
}

// Validate checks the whole request and returns every violation it finds,
// not only the first one.
func (b CreateBookingRequest) Validate(current time.Time) (CreateBookingInput, []string) {
	var (
		input      CreateBookingInput
		violations []string
	)

	roomOK, beginOK, endOK := true, true, true
	if err := validate.Struct(b); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "RoomID":
					roomOK = false
				case "BeginAt":
					beginOK = false
				case "EndAt":
					endOK = false
				}
			}
		} else {
			roomOK, beginOK, endOK = false, false, false
		}
	}

	if roomOK {
		id, err := strconv.ParseUint(b.RoomID.String(), 10, 64)
		if err != nil || id == 0 {
			roomOK = false
		}
		input.RoomID = uint(id)
	}
	if !roomOK {
		violations = append(violations, MsgRoomIDRequired)
	}

	if !beginOK {
		violations = append(violations, MsgBeginRequired)
	}
	if !endOK {
		violations = append(violations, MsgEndRequired)
	}

	if beginOK {
		t, err := ParseDate(b.BeginAt)
		if err != nil {
			violations = append(violations, MsgBeginInvalid)
			beginOK = false
		}
		input.BeginAt = t
	}
	if endOK {
		t, err := ParseDate(b.EndAt)
		if err != nil {
			violations = append(violations, MsgEndInvalid)
			endOK = false
		}
		input.EndAt = t
	}

	if beginOK && input.BeginAt.Before(current) {
		violations = append(violations, MsgBeginInPast)
	}
	if beginOK && endOK && !input.EndAt.After(input.BeginAt) {
		violations = append(violations, MsgEndBeforeBegin)
	}

	return input, violations
}

// ParseDate accepts RFC 3339 timestamps and the looser date layouts the
// frontend date pickers send ("2024-01-10", "2024-01-10 14:00").
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return dateParser.Parse(s)
}
