package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"seat-booking/config"
	"seat-booking/logger"
	"seat-booking/models/booking"
	"seat-booking/models/holiday"
	"seat-booking/models/intern"
	log_model "seat-booking/models/log"
)

// InitDB opens the PostgreSQL connection and runs migrations. TranslateError
// is on so duplicate-key violations come back as gorm.ErrDuplicatedKey, which
// is what the booking service's conditional insert relies on.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return db, nil
}

// Migrate runs auto migration in dependency order. The bookings table carries
// the composite unique index on (booking_date, seat_number) declared on the
// model; automigrate creates it with the table.
func Migrate(db *gorm.DB) error {
	// Stage 1: models without foreign keys
	stage1Models := []interface{}{
		&intern.Intern{},
		&holiday.Holiday{},
		&log_model.Log{},
	}
	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing stage 1
	stage2Models := []interface{}{
		&booking.Booking{},
	}
	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}
