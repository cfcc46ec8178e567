package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"dormly/apperror"
	bookingModel "dormly/models/booking"
	roomModel "dormly/models/room"
	bookingTypes "dormly/types/booking"
	roomTypes "dormly/types/room"

	"gorm.io/gorm"
)

// Service creates and cancels bookings. Every mutation runs in one store
// transaction so a booking row and its room status change together or not
// at all.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new booking service
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the clock used for the "not in the past" check.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ParseBookingID parses a booking id taken from a URL path.
func ParseBookingID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(bookingTypes.MsgInvalidBooking)
	}
	return uint(id), nil
}

func checkUserID(userID uint) error {
	if userID == 0 {
		return apperror.Validation(bookingTypes.MsgInvalidUserID)
	}
	return nil
}

// CreateBooking validates req, then inside one transaction locks the room,
// checks its status and the active bookings on it, inserts a pending
// booking and marks the room occupied.
func (s *Service) CreateBooking(ctx context.Context, req bookingTypes.CreateBookingRequest, userID uint) (*bookingModel.Booking, error) {
	input, violations := req.Validate(s.now())
	if userID == 0 {
		violations = append(violations, bookingTypes.MsgInvalidUserID)
	}
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	var created *bookingModel.Booking
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		room, err := tx.LockRoom(input.RoomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		if room.Status != roomModel.RoomStatusAvailable {
			return ErrRoomNotAvailable
		}

		conflict, err := tx.HasConflict(input.RoomID, input.BeginAt, input.EndAt, nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrAlreadyBooked
		}

		b := &bookingModel.Booking{
			BookerID: userID,
			RoomID:   input.RoomID,
			BeginAt:  input.BeginAt,
			EndAt:    input.EndAt,
			Status:   bookingModel.BookingStatusPending,
		}
		if err := tx.InsertBooking(b); err != nil {
			return err
		}

		if err := tx.SetRoomStatus(input.RoomID, roomModel.RoomStatusOccupied); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return created, nil
}

// CancelBooking cancels a booking owned by userID and frees its room.
// The room is set available whatever its state was before.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID uint) (*bookingModel.Booking, error) {
	if bookingID == 0 {
		return nil, apperror.Validation(bookingTypes.MsgInvalidBooking)
	}
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	var cancelled *bookingModel.Booking
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		b, err := tx.LockBooking(bookingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}

		if !b.IsOwnedBy(userID) {
			return ErrNotOwner
		}
		if b.Status == bookingModel.BookingStatusCancelled {
			return ErrAlreadyCancelled
		}

		if err := tx.SetBookingStatus(b.ID, bookingModel.BookingStatusCancelled); err != nil {
			return err
		}
		if err := tx.SetRoomStatus(b.RoomID, roomModel.RoomStatusAvailable); err != nil {
			return err
		}

		b.Status = bookingModel.BookingStatusCancelled
		cancelled = &b
		return nil
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return cancelled, nil
}

// GetBooking returns one booking with its room and dorm. Only the booker
// may read it.
func (s *Service) GetBooking(ctx context.Context, bookingID, userID uint) (*bookingTypes.BookingDetail, error) {
	if bookingID == 0 {
		return nil, apperror.Validation(bookingTypes.MsgInvalidBooking)
	}
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	detail, err := s.store.GetBooking(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if detail.BookerID != userID {
		return nil, ErrViewForbidden
	}
	return &detail, nil
}

// ListUserBookings returns the bookings made by userID, newest first.
func (s *Service) ListUserBookings(ctx context.Context, userID uint) ([]bookingTypes.BookingDetail, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	details, err := s.store.ListBookingsByBooker(ctx, userID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return details, nil
}

// PayableBooking returns a pending booking of userID that may be charged.
func (s *Service) PayableBooking(ctx context.Context, bookingID, userID uint) (*bookingTypes.BookingDetail, error) {
	detail, err := s.GetBooking(ctx, bookingID, userID)
	if errors.Is(err, ErrViewForbidden) {
		return nil, ErrPayForbidden
	}
	if err != nil {
		return nil, err
	}
	if detail.Status != bookingModel.BookingStatusPending.String() {
		return nil, ErrNotPayable
	}
	return detail, nil
}

// ConfirmBooking moves a pending booking of userID to confirmed once it is
// paid.
func (s *Service) ConfirmBooking(ctx context.Context, bookingID, userID uint) (*bookingModel.Booking, error) {
	if bookingID == 0 {
		return nil, apperror.Validation(bookingTypes.MsgInvalidBooking)
	}
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	var confirmed *bookingModel.Booking
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		b, err := tx.LockBooking(bookingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}

		if !b.IsOwnedBy(userID) {
			return ErrPayForbidden
		}
		if b.Status != bookingModel.BookingStatusPending {
			return ErrNotPayable
		}

		if err := tx.SetBookingStatus(b.ID, bookingModel.BookingStatusConfirmed); err != nil {
			return err
		}
		b.Status = bookingModel.BookingStatusConfirmed
		confirmed = &b
		return nil
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return confirmed, nil
}

// openEnded is the end used to look for active bookings from now on.
var openEnded = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// UpdateRoom changes status and/or occupancy of a room in a dorm owned by
// userID. The room row stays locked until commit, so a concurrent booking
// waits for the update. A room with an active booking that has not ended
// cannot be set available.
func (s *Service) UpdateRoom(ctx context.Context, roomID, userID uint, req roomTypes.UpdateRoomRequest) (*roomModel.Room, error) {
	updates, violations := req.Updates()
	if userID == 0 {
		violations = append(violations, bookingTypes.MsgInvalidUserID)
	}
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	var updated roomModel.Room
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		_, err := tx.LockRoom(roomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		owner, err := tx.RoomOwner(roomID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		if owner == nil || *owner != userID {
			return ErrNotDormOwner
		}

		if updates["status"] == roomModel.RoomStatusAvailable {
			booked, err := tx.HasConflict(roomID, s.now(), openEnded, nil)
			if err != nil {
				return err
			}
			if booked {
				return ErrRoomStillBooked
			}
		}

		updated, err = tx.UpdateRoom(roomID, updates)
		return err
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &updated, nil
}
