package booking

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

// Helper methods for BookingStatus
func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected:
		return true
	default:
		return false
	}
}

// IsActive returns true if the booking still holds its room interval
func (bs BookingStatus) IsActive() bool {
	return bs != BookingStatusCancelled && bs != BookingStatusRejected
}

// InactiveStatuses returns the statuses ignored by conflict checks
func InactiveStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusCancelled,
		BookingStatusRejected,
	}
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCancelled,
		BookingStatusRejected,
	}
}
