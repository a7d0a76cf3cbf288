package database

import (
	"seatly/internal/allocations"
	"seatly/internal/layouts"
	"seatly/internal/reservations"
	"seatly/internal/waitlist"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&layouts.Layout{},
		&layouts.Section{},
		&layouts.Seat{},
		&allocations.SeatAllocation{},
		&reservations.Reservation{},
		&waitlist.WaitlistEntry{},
	)
}
