package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingModel "dormly/models/booking"
	roomModel "dormly/models/room"
	bookingTypes "dormly/types/booking"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=store.go -destination=../../mocks/booking_store.go -package=mocks

// exclusionViolation is the Postgres code raised by the bookings_no_overlap
// constraint.
const exclusionViolation = "23P01"

// Store is the storage the booking service runs against. Transaction runs
// fn atomically: if fn returns an error nothing it did is persisted.
type Store interface {
	Transaction(ctx context.Context, fn func(tx TxStore) error) error
	GetBooking(ctx context.Context, bookingID uint) (bookingTypes.BookingDetail, error)
	ListBookingsByBooker(ctx context.Context, bookerID uint) ([]bookingTypes.BookingDetail, error)
}

// TxStore is the set of steps available inside one transaction. Missing
// rows are reported as gorm.ErrRecordNotFound.
type TxStore interface {
	LockRoom(roomID uint) (roomModel.Room, error)
	HasConflict(roomID uint, beginAt, endAt time.Time, excludeBookingID *uint) (bool, error)
	InsertBooking(b *bookingModel.Booking) error
	SetRoomStatus(roomID uint, status roomModel.RoomStatus) error
	LockBooking(bookingID uint) (bookingModel.Booking, error)
	SetBookingStatus(bookingID uint, status bookingModel.BookingStatus) error
	RoomOwner(roomID uint) (*uint, error)
	UpdateRoom(roomID uint, updates map[string]interface{}) (roomModel.Room, error)
}

// GormStore implements Store on Postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Transaction commits when fn returns nil and rolls back on an error or a
// panic. The connection goes back to the pool on every path.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx TxStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

const bookingDetailSelect = `
	SELECT
		b.booking_id, b.booker_id, b.room_id, b.begin_at, b.end_at, b.status, b.created_at,
		u.f_name || ' ' || u.l_name AS booker_name,
		u.email AS booker_email,
		r.room_name,
		rt.room_type_name,
		rt.rent_per_month,
		rt.rent_per_day,
		d.dorm_id,
		d.dorm_name,
		d.address,
		d.tel
	FROM bookings b
	JOIN users u ON b.booker_id = u.user_id
	JOIN rooms r ON b.room_id = r.room_id
	JOIN room_types rt ON r.room_type_id = rt.room_type_id
	JOIN dorms d ON rt.dorm_id = d.dorm_id`

func (s *GormStore) GetBooking(ctx context.Context, bookingID uint) (bookingTypes.BookingDetail, error) {
	var detail bookingTypes.BookingDetail
	res := s.db.WithContext(ctx).Raw(bookingDetailSelect+" WHERE b.booking_id = ?", bookingID).Scan(&detail)
	if res.Error != nil {
		return detail, res.Error
	}
	if res.RowsAffected == 0 {
		return detail, gorm.ErrRecordNotFound
	}
	return detail, nil
}

func (s *GormStore) ListBookingsByBooker(ctx context.Context, bookerID uint) ([]bookingTypes.BookingDetail, error) {
	details := []bookingTypes.BookingDetail{}
	err := s.db.WithContext(ctx).
		Raw(bookingDetailSelect+" WHERE b.booker_id = ? ORDER BY b.created_at DESC", bookerID).
		Scan(&details).Error
	return details, err
}

type gormTx struct {
	tx *gorm.DB
}

// LockRoom reads the room with SELECT ... FOR UPDATE so concurrent bookings
// of the same room serialize on this row until commit.
func (t *gormTx) LockRoom(roomID uint) (roomModel.Room, error) {
	var room roomModel.Room
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("room_id", "status").
		First(&room, roomID).Error
	return room, err
}

func (t *gormTx) HasConflict(roomID uint, beginAt, endAt time.Time, excludeBookingID *uint) (bool, error) {
	return HasConflict(t.tx, roomID, beginAt, endAt, excludeBookingID)
}

// recordStatus appends to the booking's status history.
func (t *gormTx) recordStatus(bookingID uint, status bookingModel.BookingStatus) error {
	return t.tx.Create(&bookingModel.BookingStatusEvent{BookingID: bookingID, Status: status}).Error
}

func (t *gormTx) InsertBooking(b *bookingModel.Booking) error {
	err := t.tx.Create(b).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return ErrAlreadyBooked
	}
	if err != nil {
		return err
	}
	return t.recordStatus(b.ID, b.Status)
}

func (t *gormTx) SetRoomStatus(roomID uint, status roomModel.RoomStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid room status %q", status)
	}
	res := t.tx.Model(&roomModel.Room{}).Where("room_id = ?", roomID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t *gormTx) LockBooking(bookingID uint) (bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, bookingID).Error
	return b, err
}

func (t *gormTx) SetBookingStatus(bookingID uint, status bookingModel.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid booking status %q", status)
	}
	res := t.tx.Model(&bookingModel.Booking{}).Where("booking_id = ?", bookingID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return t.recordStatus(bookingID, status)
}

// RoomOwner returns the owner of the dorm the room belongs to, nil when the
// dorm has none.
func (t *gormTx) RoomOwner(roomID uint) (*uint, error) {
	var owner struct {
		OwnerID *uint
	}
	res := t.tx.Table("rooms r").
		Select("d.owner_id").
		Joins("JOIN room_types rt ON r.room_type_id = rt.room_type_id").
		Joins("JOIN dorms d ON rt.dorm_id = d.dorm_id").
		Where("r.room_id = ?", roomID).
		Scan(&owner)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return owner.OwnerID, nil
}

// UpdateRoom writes the given columns and returns the room with its type.
func (t *gormTx) UpdateRoom(roomID uint, updates map[string]interface{}) (roomModel.Room, error) {
	var r roomModel.Room
	if status, ok := updates["status"].(roomModel.RoomStatus); ok && !status.IsValid() {
		return r, fmt.Errorf("invalid room status %q", status)
	}
	res := t.tx.Model(&roomModel.Room{}).Where("room_id = ?", roomID).Updates(updates)
	if res.Error != nil {
		return r, res.Error
	}
	if res.RowsAffected == 0 {
		return r, gorm.ErrRecordNotFound
	}
	err := t.tx.Preload("RoomType").First(&r, roomID).Error
	return r, err
}
