package constants

import (
	"fmt"
	"time"
)

// Redis cache configuration for the seating service.
// Pattern: seatly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Semi-static data (changes when staff edit layouts)
const (
	TTL_LAYOUT_ACTIVE = 4 * time.Hour
	TTL_LAYOUT_DETAIL = 2 * time.Hour
	TTL_LAYOUT_LIST   = 1 * time.Hour
)

// Highly dynamic data (occupancy changes on every seating action)
const (
	TTL_OCCUPANCY_SNAPSHOT = 30 * time.Second
	TTL_ALLOCATION_DAY     = 30 * time.Second
)

// ================== REDIS KEY PREFIXES ==================

const CACHE_PREFIX = "seatly"

const (
	CACHE_KEY_LAYOUT_ACTIVE = CACHE_PREFIX + ":layouts:active"
	CACHE_KEY_LAYOUT_DETAIL = CACHE_PREFIX + ":layouts:detail:uuid:" // + layout-id
	CACHE_KEY_LAYOUT_LIST   = CACHE_PREFIX + ":layouts:list"

	CACHE_KEY_ALLOCATIONS_DAY = CACHE_PREFIX + ":allocations:day:" // + YYYY-MM-DD
	CACHE_KEY_OCCUPANCY_DAY   = CACHE_PREFIX + ":occupancy:day:"   // + YYYY-MM-DD

	WIZARD_SESSION_PREFIX = CACHE_PREFIX + ":wizard:session:" // + session-id
	WIZARD_COMMIT_PREFIX  = CACHE_PREFIX + ":wizard:commit:"  // + session-id
)

// BuildAllocationDayKey builds the day-scoped allocation cache key
func BuildAllocationDayKey(date string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_ALLOCATIONS_DAY, date)
}

// BuildOccupancyDayKey builds the day-scoped occupancy snapshot key
func BuildOccupancyDayKey(date string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_OCCUPANCY_DAY, date)
}

// BuildLayoutDetailKey builds the per-layout cache key
func BuildLayoutDetailKey(layoutID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_LAYOUT_DETAIL, layoutID)
}

// BuildWizardSessionKey builds the wizard session store key
func BuildWizardSessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", WIZARD_SESSION_PREFIX, sessionID)
}

// BuildWizardCommitKey builds the in-flight commit fence key
func BuildWizardCommitKey(sessionID string) string {
	return fmt.Sprintf("%s%s", WIZARD_COMMIT_PREFIX, sessionID)
}
