package database

import (
	"fmt"
	"strings"

	"dormly/config"
	"dormly/logger"
	"dormly/models/booking"
	"dormly/models/dorm"
	"dormly/models/log"
	"dormly/models/room"
	"dormly/models/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN builds the PostgreSQL connection string from the config.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUsername, cfg.DBPassword, cfg.DBDatabase, cfg.DBSSLMode)
}

// Open connects to the database without touching the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")
	return db, nil
}

// InitDB connects and brings the schema up to date.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the staged auto migration, then the constraints and indexes
// gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to execute migrations", err)
		return err
	}
	logger.Success("All migrations completed successfully")

	if err := createConstraints(db); err != nil {
		logger.Error("Failed to create constraints", err)
		return err
	}
	logger.Success("All constraints created successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")
	return nil
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: accounts, facilities, then listings and their facility links
		{&user.User{}, &dorm.Facility{}, &dorm.Dorm{}, &dorm.FacilityList{}},
		// Stage 2: priced room types, then rooms
		{&dorm.RoomType{}, &room.Room{}},
		// Stage 3: reviews and bookings reference users
		{&dorm.Review{}, &booking.Booking{}, &booking.BookingStatusEvent{}},
		// Stage 4: logging
		{&log.Log{}},
	}

	for _, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

type constraint struct {
	name string
	sql  string
}

var constraints = []constraint{
	{
		name: "fk_bookings_booker",
		sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_booker
			  FOREIGN KEY (booker_id) REFERENCES users(user_id)
			  ON UPDATE CASCADE ON DELETE RESTRICT`,
	},
	{
		name: "fk_bookings_room",
		sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_room
			  FOREIGN KEY (room_id) REFERENCES rooms(room_id)
			  ON UPDATE CASCADE ON DELETE RESTRICT`,
	},
	{
		name: "fk_booking_status_events_booking",
		sql: `ALTER TABLE booking_status_events ADD CONSTRAINT fk_booking_status_events_booking
			  FOREIGN KEY (booking_id) REFERENCES bookings(booking_id)
			  ON UPDATE CASCADE ON DELETE CASCADE`,
	},
	{
		name: "fk_reviews_dorm",
		sql: `ALTER TABLE reviews ADD CONSTRAINT fk_reviews_dorm
			  FOREIGN KEY (dorm_id) REFERENCES dorms(dorm_id)
			  ON UPDATE CASCADE ON DELETE CASCADE`,
	},
	{
		name: "fk_reviews_user",
		sql: `ALTER TABLE reviews ADD CONSTRAINT fk_reviews_user
			  FOREIGN KEY (user_id) REFERENCES users(user_id)
			  ON UPDATE CASCADE ON DELETE CASCADE`,
	},
	{
		name: "chk_reviews_score",
		sql:  `ALTER TABLE reviews ADD CONSTRAINT chk_reviews_score CHECK (score BETWEEN 0 AND 5)`,
	},
	{
		name: "chk_bookings_interval",
		sql:  `ALTER TABLE bookings ADD CONSTRAINT chk_bookings_interval CHECK (end_at > begin_at)`,
	},
	{
		name: "chk_bookings_status",
		sql:  `ALTER TABLE bookings ADD CONSTRAINT chk_bookings_status CHECK (status IN (` + quotedStatuses() + `))`,
	},
	{
		name: "chk_rooms_occupancy",
		sql:  `ALTER TABLE rooms ADD CONSTRAINT chk_rooms_occupancy CHECK (cur_occupancy >= 0)`,
	},
	{
		// Two active bookings of one room can never overlap, whatever the
		// application does.
		name: "bookings_no_overlap",
		sql: `ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			  EXCLUDE USING gist (room_id WITH =, tstzrange(begin_at, end_at, '[)') WITH &&)
			  WHERE (status NOT IN ('cancelled', 'rejected'))`,
	},
}

func quotedStatuses() string {
	statuses := booking.GetAllBookingStatuses()
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = "'" + s.String() + "'"
	}
	return strings.Join(quoted, ", ")
}

// createConstraints adds the constraints that do not exist yet. The
// overlap exclusion needs btree_gist for the equality on room_id.
func createConstraints(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("failed to create btree_gist extension: %w", err)
	}

	checkSQL := `
		SELECT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = ?
		)
	`
	for _, c := range constraints {
		var exists bool
		if err := db.Raw(checkSQL, c.name).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", c.name, err)
		}
		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", c.name))
			continue
		}
		if err := db.Exec(c.sql).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", c.name, err)
		}
		logger.Success(fmt.Sprintf("Successfully created constraint: %s", c.name))
	}
	return nil
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_bookings_room_interval ON bookings(room_id, begin_at, end_at)",
	"CREATE INDEX IF NOT EXISTS idx_bookings_booker_created ON bookings(booker_id, created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_rooms_type_status ON rooms(room_type_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_room_types_dorm_rent ON room_types(dorm_id, rent_per_month)",
	"CREATE INDEX IF NOT EXISTS idx_dorms_rank ON dorms(avg_score DESC, likes DESC)",
	"CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)",
	"CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)",
}

// createIndexes creates additional indexes for the search and booking
// queries
func createIndexes(db *gorm.DB) error {
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %s: %w", stmt, err)
		}
	}
	return nil
}
