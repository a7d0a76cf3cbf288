package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The constraint migration runs on every boot, so every statement has
// to survive a rerun and has to be syntax Postgres actually accepts.

func TestConstraintStatements_ExclusionConstraint(t *testing.T) {
	var exclusion string
	for _, stmt := range constraintStatements {
		if strings.Contains(stmt, "excl_active_seat_window") {
			exclusion = stmt
		}
	}
	require.NotEmpty(t, exclusion)

	// gorm maps time.Time to timestamptz; tsrange would not apply
	assert.Contains(t, exclusion, "tstzrange(start_time, end_time)")
	assert.NotContains(t, exclusion, "tsrange(start_time")

	// Postgres has no ADD CONSTRAINT IF NOT EXISTS; idempotence comes
	// from the DO block's duplicate handler instead
	assert.NotContains(t, exclusion, "ADD CONSTRAINT IF NOT EXISTS")
	assert.Contains(t, exclusion, "DO $$")
	assert.Contains(t, exclusion, "WHEN duplicate_object THEN NULL")

	assert.Contains(t, exclusion, "WHERE (released_at IS NULL)")
}

func TestConstraintStatements_AreRerunSafe(t *testing.T) {
	for _, stmt := range constraintStatements {
		rerunSafe := strings.Contains(stmt, "IF NOT EXISTS") ||
			strings.Contains(stmt, "EXCEPTION")
		assert.True(t, rerunSafe, "statement is not idempotent: %s", stmt)
	}
}
