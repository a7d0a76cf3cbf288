package database

import (
	"gorm.io/gorm"
)

// constraintStatements are the concurrency-critical migrations that
// AutoMigrate cannot express, applied in order on every boot. Each
// statement must be idempotent; a failed statement aborts startup.
//
// ADD CONSTRAINT has no IF NOT EXISTS form, so the exclusion
// constraint is wrapped in a DO block that absorbs reruns. The time
// columns are timestamptz under gorm, hence tstzrange.
var constraintStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist;`,

	`DO $$
	BEGIN
		ALTER TABLE seat_allocations
		ADD CONSTRAINT excl_active_seat_window
		EXCLUDE USING gist (
			seat_id WITH =,
			tstzrange(start_time, end_time) WITH &&
		) WHERE (released_at IS NULL);
	EXCEPTION
		WHEN duplicate_object THEN NULL;
		WHEN duplicate_table THEN NULL;
	END
	$$;`,

	// Day-window queries hit this on every occupancy refresh
	`CREATE INDEX IF NOT EXISTS idx_seat_allocations_day_window
	ON seat_allocations (start_time, end_time)
	WHERE released_at IS NULL;`,

	`CREATE INDEX IF NOT EXISTS idx_seat_allocations_occupant
	ON seat_allocations (occupant_type, occupant_id);`,

	// One active layout at a time
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_layouts_single_active
	ON layouts (active)
	WHERE active;`,
}

// MigrateConstraints adds the constraints behind the "at most one
// non-released, time-overlapping allocation per seat" invariant;
// application-level checks only decide error messages, this decides
// correctness.
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
