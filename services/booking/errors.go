package booking

import "dormly/apperror"

var (
	ErrRoomNotFound     = apperror.NotFound("Room not found")
	ErrRoomNotAvailable = apperror.Conflict("Room is not available")
	ErrAlreadyBooked    = apperror.Conflict("Room is already booked for the selected dates")
	ErrBookingNotFound  = apperror.NotFound("Booking not found")
	ErrNotOwner         = apperror.Unauthorized("Unauthorized: You can only cancel your own bookings")
	ErrViewForbidden    = apperror.Unauthorized("Access denied: You can only view your own bookings")
	ErrAlreadyCancelled = apperror.State("Booking is already cancelled")
	ErrPayForbidden     = apperror.Unauthorized("Access denied: You can only pay for your own bookings")
	ErrNotPayable       = apperror.State("Booking is not awaiting payment")
	ErrNotDormOwner     = apperror.Unauthorized("Access denied: You can only update rooms of your own dorm")
	ErrRoomStillBooked  = apperror.State("Room has an active booking now or later and cannot be set available")
)
