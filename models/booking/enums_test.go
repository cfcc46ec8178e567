package booking

import "testing"

func TestIsActive(t *testing.T) {
	want := map[BookingStatus]bool{
		BookingStatusPending:   true,
		BookingStatusConfirmed: true,
		BookingStatusCancelled: false,
		BookingStatusRejected:  false,
	}
	for _, s := range GetAllBookingStatuses() {
		if s.IsActive() != want[s] {
			t.Errorf("%s.IsActive() = %v, want %v", s, s.IsActive(), want[s])
		}
	}
	for _, s := range InactiveStatuses() {
		if s.IsActive() {
			t.Errorf("%s listed as inactive but IsActive() is true", s)
		}
	}
}

func TestIsValid(t *testing.T) {
	if BookingStatus("initial").IsValid() {
		t.Error("unknown status reported valid")
	}
	for _, s := range GetAllBookingStatuses() {
		if !s.IsValid() {
			t.Errorf("%s reported invalid", s)
		}
	}
}
