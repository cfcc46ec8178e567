package booking

import (
	"time"

	bookingModel "dormly/models/booking"

	"gorm.io/gorm"
)

// overlapClause matches an existing booking that contains the new begin,
// contains the new end, or lies entirely inside the new interval. Bound in
// the order begin, begin, end, end, begin, end.
const overlapClause = "((begin_at <= ? AND end_at > ?) OR (begin_at < ? AND end_at >= ?) OR (begin_at >= ? AND end_at <= ?))"

// Overlaps is overlapClause evaluated in Go. Intervals are half-open, so a
// booking ending exactly when another begins does not overlap it.
func Overlaps(existingBegin, existingEnd, newBegin, newEnd time.Time) bool {
	startsInside := !existingBegin.After(newBegin) && existingEnd.After(newBegin)
	endsInside := existingBegin.Before(newEnd) && !existingEnd.Before(newEnd)
	contained := !existingBegin.Before(newBegin) && !existingEnd.After(newEnd)
	return startsInside || endsInside || contained
}

// HasConflict reports whether an active booking on roomID overlaps
// [beginAt, endAt). excludeBookingID skips the booking being modified.
func HasConflict(db *gorm.DB, roomID uint, beginAt, endAt time.Time, excludeBookingID *uint) (bool, error) {
	query := db.Model(&bookingModel.Booking{}).
		Where("room_id = ?", roomID).
		Where("status NOT IN ?", bookingModel.InactiveStatuses()).
		Where(overlapClause, beginAt, beginAt, endAt, endAt, beginAt, endAt)

	if excludeBookingID != nil {
		query = query.Where("booking_id <> ?", *excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
