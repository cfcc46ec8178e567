package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingModel "dormly/models/booking"
	roomModel "dormly/models/room"
	bookingTypes "dormly/types/booking"

	"gorm.io/gorm"
)

// fakeStore is an in-memory Store. A transaction holds the mutex for its
// whole run, works on copies of the tables and publishes them only when fn
// succeeds, which gives the same all-or-nothing behavior as Postgres.
type fakeStore struct {
	mu       sync.Mutex
	rooms    map[uint]roomModel.Room
	bookings map[uint]bookingModel.Booking
	nextID   uint
	// owners maps a room to the owner of its dorm.
	owners map[uint]uint
	// failOn makes the named TxStore step return the error.
	failOn map[string]error
}

func newFakeStore(rooms ...roomModel.Room) *fakeStore {
	s := &fakeStore{
		rooms:    map[uint]roomModel.Room{},
		bookings: map[uint]bookingModel.Booking{},
		owners:   map[uint]uint{},
		failOn:   map[string]error{},
	}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *fakeStore) addBooking(b bookingModel.Booking) bookingModel.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.bookings[b.ID] = b
	return b
}

func (s *fakeStore) room(id uint) roomModel.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[id]
}

func (s *fakeStore) booking(id uint) (bookingModel.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *fakeStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *fakeStore) Transaction(ctx context.Context, fn func(tx TxStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeTx{
		store:    s,
		rooms:    make(map[uint]roomModel.Room, len(s.rooms)),
		bookings: make(map[uint]bookingModel.Booking, len(s.bookings)),
		nextID:   s.nextID,
	}
	for k, v := range s.rooms {
		tx.rooms[k] = v
	}
	for k, v := range s.bookings {
		tx.bookings[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.rooms = tx.rooms
	s.bookings = tx.bookings
	s.nextID = tx.nextID
	return nil
}

func (s *fakeStore) detail(b bookingModel.Booking) bookingTypes.BookingDetail {
	return bookingTypes.BookingDetail{
		ID:        b.ID,
		BookerID:  b.BookerID,
		RoomID:    b.RoomID,
		BeginAt:   b.BeginAt,
		EndAt:     b.EndAt,
		Status:    b.Status.String(),
		CreatedAt: b.CreatedAt,
		RoomName:  s.rooms[b.RoomID].Name,
	}
}

func (s *fakeStore) GetBooking(ctx context.Context, bookingID uint) (bookingTypes.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return bookingTypes.BookingDetail{}, gorm.ErrRecordNotFound
	}
	return s.detail(b), nil
}

func (s *fakeStore) ListBookingsByBooker(ctx context.Context, bookerID uint) ([]bookingTypes.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	details := []bookingTypes.BookingDetail{}
	for _, b := range s.bookings {
		if b.BookerID == bookerID {
			details = append(details, s.detail(b))
		}
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID > details[j].ID })
	return details, nil
}

type fakeTx struct {
	store    *fakeStore
	rooms    map[uint]roomModel.Room
	bookings map[uint]bookingModel.Booking
	nextID   uint
}

func (t *fakeTx) fault(step string) error {
	return t.store.failOn[step]
}

func (t *fakeTx) LockRoom(roomID uint) (roomModel.Room, error) {
	if err := t.fault("LockRoom"); err != nil {
		return roomModel.Room{}, err
	}
	r, ok := t.rooms[roomID]
	if !ok {
		return roomModel.Room{}, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (t *fakeTx) HasConflict(roomID uint, beginAt, endAt time.Time, excludeBookingID *uint) (bool, error) {
	if err := t.fault("HasConflict"); err != nil {
		return false, err
	}
	for _, b := range t.bookings {
		if b.RoomID != roomID || !b.Status.IsActive() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if Overlaps(b.BeginAt, b.EndAt, beginAt, endAt) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) InsertBooking(b *bookingModel.Booking) error {
	if err := t.fault("InsertBooking"); err != nil {
		return err
	}
	t.nextID++
	b.ID = t.nextID
	b.CreatedAt = time.Now()
	t.bookings[b.ID] = *b
	return nil
}

func (t *fakeTx) SetRoomStatus(roomID uint, status roomModel.RoomStatus) error {
	if err := t.fault("SetRoomStatus"); err != nil {
		return err
	}
	r, ok := t.rooms[roomID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	t.rooms[roomID] = r
	return nil
}

func (t *fakeTx) LockBooking(bookingID uint) (bookingModel.Booking, error) {
	if err := t.fault("LockBooking"); err != nil {
		return bookingModel.Booking{}, err
	}
	b, ok := t.bookings[bookingID]
	if !ok {
		return bookingModel.Booking{}, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (t *fakeTx) SetBookingStatus(bookingID uint, status bookingModel.BookingStatus) error {
	if err := t.fault("SetBookingStatus"); err != nil {
		return err
	}
	b, ok := t.bookings[bookingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	t.bookings[bookingID] = b
	return nil
}

func (t *fakeTx) RoomOwner(roomID uint) (*uint, error) {
	if err := t.fault("RoomOwner"); err != nil {
		return nil, err
	}
	if _, ok := t.rooms[roomID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	owner, ok := t.store.owners[roomID]
	if !ok {
		return nil, nil
	}
	return &owner, nil
}

func (t *fakeTx) UpdateRoom(roomID uint, updates map[string]interface{}) (roomModel.Room, error) {
	if err := t.fault("UpdateRoom"); err != nil {
		return roomModel.Room{}, err
	}
	r, ok := t.rooms[roomID]
	if !ok {
		return roomModel.Room{}, gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(roomModel.RoomStatus); ok {
		r.Status = status
	}
	if occupancy, ok := updates["cur_occupancy"].(int); ok {
		r.CurOccupancy = occupancy
	}
	t.rooms[roomID] = r
	return r, nil
}
