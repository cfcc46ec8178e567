package booking

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"dormly/apperror"
	bookingModel "dormly/models/booking"
	roomModel "dormly/models/room"
	bookingTypes "dormly/types/booking"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(store Store) *Service {
	return NewService(store).WithClock(func() time.Time { return testNow })
}

func request(roomID string, begin, end time.Time) bookingTypes.CreateBookingRequest {
	return bookingTypes.CreateBookingRequest{
		RoomID:  bookingTypes.RawID(roomID),
		BeginAt: begin.Format(time.RFC3339),
		EndAt:   end.Format(time.RFC3339),
	}
}

func availableRoom(id uint) roomModel.Room {
	return roomModel.Room{ID: id, Name: "A101", Status: roomModel.RoomStatusAvailable}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	cases := []struct {
		name     string
		newBegin time.Time
		newEnd   time.Time
		want     bool
	}{
		{"ends when existing begins", day(5), day(10), false},
		{"begins when existing ends", day(20), day(25), false},
		{"contained", day(12), day(15), true},
		{"contains", day(5), day(25), true},
		{"straddles begin", day(8), day(12), true},
		{"straddles end", day(18), day(22), true},
		{"identical", day(10), day(20), true},
		{"disjoint", day(21), day(28), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(10), day(20), tc.newBegin, tc.newEnd)
			if got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)

	b, err := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if b.ID == 0 || b.BookerID != 42 || b.RoomID != 1 {
		t.Errorf("unexpected booking %+v", b)
	}
	if b.Status != bookingModel.BookingStatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if got := store.room(1).Status; got != roomModel.RoomStatusOccupied {
		t.Errorf("room status = %s, want occupied", got)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)

	req := bookingTypes.CreateBookingRequest{
		BeginAt: day(1).Add(-24 * time.Hour).Format(time.RFC3339),
		EndAt:   day(1).Add(-48 * time.Hour).Format(time.RFC3339),
	}
	_, err := svc.CreateBooking(context.Background(), req, 42)

	appErr := apperror.From(err)
	if appErr.Kind != apperror.KindValidation {
		t.Fatalf("kind = %s, want validation", appErr.Kind)
	}
	if len(appErr.Details) != 3 {
		t.Errorf("details = %v, want 3 entries", appErr.Details)
	}
	if store.bookingCount() != 0 {
		t.Error("validation failure must not write")
	}
}

func TestCreateBookingRejectsZeroUser(t *testing.T) {
	svc := newTestService(newFakeStore(availableRoom(1)))

	_, err := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 0)
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateBookingReportsInputBeforeUser(t *testing.T) {
	svc := newTestService(newFakeStore(availableRoom(1)))

	_, err := svc.CreateBooking(context.Background(), request("abc", day(10), day(20)), 0)

	appErr := apperror.From(err)
	want := []string{bookingTypes.MsgRoomIDRequired, bookingTypes.MsgInvalidUserID}
	if !reflect.DeepEqual(appErr.Details, want) {
		t.Errorf("details = %v, want %v", appErr.Details, want)
	}
}

func TestCreateBookingRoomErrors(t *testing.T) {
	occupied := availableRoom(2)
	occupied.Status = roomModel.RoomStatusOccupied
	store := newFakeStore(availableRoom(1), occupied)
	svc := newTestService(store)

	_, err := svc.CreateBooking(context.Background(), request("99", day(10), day(20)), 42)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("missing room: err = %v", err)
	}

	_, err = svc.CreateBooking(context.Background(), request("2", day(10), day(20)), 42)
	if !errors.Is(err, ErrRoomNotAvailable) {
		t.Errorf("occupied room: err = %v", err)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	store.addBooking(bookingModel.Booking{
		BookerID: 7, RoomID: 1, BeginAt: day(10), EndAt: day(20), Status: bookingModel.BookingStatusConfirmed,
	})
	svc := newTestService(store)

	_, err := svc.CreateBooking(context.Background(), request("1", day(12), day(15)), 42)
	if !errors.Is(err, ErrAlreadyBooked) {
		t.Fatalf("err = %v, want ErrAlreadyBooked", err)
	}
	if apperror.From(err).HTTPStatus() != 409 {
		t.Errorf("status = %d, want 409", apperror.From(err).HTTPStatus())
	}
	if store.room(1).Status != roomModel.RoomStatusAvailable {
		t.Error("room must stay available after a conflict")
	}
}

func TestCreateBookingIgnoresInactiveAndTouching(t *testing.T) {
	store := newFakeStore(availableRoom(1), availableRoom(2))
	store.addBooking(bookingModel.Booking{
		BookerID: 7, RoomID: 1, BeginAt: day(10), EndAt: day(20), Status: bookingModel.BookingStatusCancelled,
	})
	store.addBooking(bookingModel.Booking{
		BookerID: 7, RoomID: 2, BeginAt: day(5), EndAt: day(10), Status: bookingModel.BookingStatusPending,
	})
	svc := newTestService(store)

	if _, err := svc.CreateBooking(context.Background(), request("1", day(12), day(15)), 42); err != nil {
		t.Errorf("cancelled booking must not block: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), request("2", day(10), day(15)), 42); err != nil {
		t.Errorf("touching interval must not block: %v", err)
	}
}

func TestCreateBookingRollsBackOnStorageFailure(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	store.failOn["SetRoomStatus"] = errors.New("connection reset")
	svc := newTestService(store)

	_, err := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)

	appErr := apperror.From(err)
	if appErr.Kind != apperror.KindStorage {
		t.Fatalf("kind = %s, want storage", appErr.Kind)
	}
	if appErr.PublicMessage() != "Internal server error" {
		t.Errorf("public message = %q", appErr.PublicMessage())
	}
	if store.bookingCount() != 0 {
		t.Error("booking row survived a failed transaction")
	}
	if store.room(1).Status != roomModel.RoomStatusAvailable {
		t.Error("room status changed by a failed transaction")
	}
}

func TestConcurrentCreateBookingOnlyOneWins(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(user uint) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), user)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperror.KindOf(err) == apperror.KindConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uint(i + 1))
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Errorf("succeeded = %d, conflicts = %d", succeeded, conflicts)
	}
	if store.bookingCount() != 1 {
		t.Errorf("bookings = %d, want 1", store.bookingCount())
	}
}

func TestCancelBooking(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)

	created, err := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	cancelled, err := svc.CancelBooking(context.Background(), created.ID, 42)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != bookingModel.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if store.room(1).Status != roomModel.RoomStatusAvailable {
		t.Error("room not released")
	}

	// The interval is free again.
	if _, err := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 43); err != nil {
		t.Errorf("rebooking after cancel: %v", err)
	}
}

func TestCancelBookingTwice(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)

	created, _ := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)
	if _, err := svc.CancelBooking(context.Background(), created.ID, 42); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	// Someone else books the room; a second cancel must not release it.
	if _, err := svc.CreateBooking(context.Background(), request("1", day(21), day(25)), 43); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	_, err := svc.CancelBooking(context.Background(), created.ID, 42)
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("err = %v, want ErrAlreadyCancelled", err)
	}
	if apperror.KindOf(err) != apperror.KindState {
		t.Errorf("kind = %s, want state", apperror.KindOf(err))
	}
	if store.room(1).Status != roomModel.RoomStatusOccupied {
		t.Error("second cancel changed the room")
	}
}

func TestCancelBookingByOtherUser(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)

	created, _ := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)

	_, err := svc.CancelBooking(context.Background(), created.ID, 99)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if apperror.From(err).HTTPStatus() != 403 {
		t.Errorf("status = %d, want 403", apperror.From(err).HTTPStatus())
	}

	b, _ := store.booking(created.ID)
	if b.Status != bookingModel.BookingStatusPending {
		t.Errorf("booking status = %s, want pending", b.Status)
	}
	if store.room(1).Status != roomModel.RoomStatusOccupied {
		t.Error("room changed by a rejected cancel")
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CancelBooking(context.Background(), 5, 42)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestCancelBookingRollsBackOnStorageFailure(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)
	created, _ := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)

	store.failOn["SetRoomStatus"] = errors.New("disk full")
	_, err := svc.CancelBooking(context.Background(), created.ID, 42)
	if apperror.KindOf(err) != apperror.KindStorage {
		t.Fatalf("err = %v, want storage", err)
	}

	b, _ := store.booking(created.ID)
	if b.Status != bookingModel.BookingStatusPending {
		t.Errorf("booking status = %s, want pending after rollback", b.Status)
	}
}

func TestGetBookingChecksOwner(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)
	created, _ := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)

	detail, err := svc.GetBooking(context.Background(), created.ID, 42)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if detail.RoomName != "A101" {
		t.Errorf("room name = %q", detail.RoomName)
	}

	if _, err := svc.GetBooking(context.Background(), created.ID, 43); !errors.Is(err, ErrViewForbidden) {
		t.Errorf("err = %v, want ErrViewForbidden", err)
	}
	if _, err := svc.GetBooking(context.Background(), 777, 42); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestListUserBookings(t *testing.T) {
	store := newFakeStore(availableRoom(1), availableRoom(2))
	svc := newTestService(store)
	svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)
	svc.CreateBooking(context.Background(), request("2", day(10), day(20)), 43)

	details, err := svc.ListUserBookings(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}
	if len(details) != 1 || details[0].BookerID != 42 {
		t.Errorf("details = %+v", details)
	}
}

func TestParseBookingID(t *testing.T) {
	if id, err := ParseBookingID("12"); err != nil || id != 12 {
		t.Errorf("ParseBookingID(12) = %d, %v", id, err)
	}
	for _, raw := range []string{"", "0", "-1", "abc"} {
		if _, err := ParseBookingID(raw); apperror.KindOf(err) != apperror.KindValidation {
			t.Errorf("ParseBookingID(%q) err = %v", raw, err)
		}
	}
}

func TestConfirmBooking(t *testing.T) {
	store := newFakeStore(availableRoom(1))
	svc := newTestService(store)
	created, _ := svc.CreateBooking(context.Background(), request("1", day(10), day(20)), 42)

	if _, err := svc.PayableBooking(context.Background(), created.ID, 43); !errors.Is(err, ErrPayForbidden) {
		t.Errorf("other user: err = %v, want ErrPayForbidden", err)
	}
	if _, err := svc.PayableBooking(context.Background(), created.ID, 42); err != nil {
		t.Fatalf("PayableBooking: %v", err)
	}

	b, err := svc.ConfirmBooking(context.Background(), created.ID, 42)
	if err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if b.Status != bookingModel.BookingStatusConfirmed {
		t.Errorf("status = %s, want confirmed", b.Status)
	}

	if _, err := svc.ConfirmBooking(context.Background(), created.ID, 42); !errors.Is(err, ErrNotPayable) {
		t.Errorf("second confirm: err = %v, want ErrNotPayable", err)
	}
	if _, err := svc.PayableBooking(context.Background(), created.ID, 42); !errors.Is(err, ErrNotPayable) {
		t.Errorf("confirmed booking still payable: %v", err)
	}
}
