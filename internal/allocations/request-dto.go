package allocations

import "time"

// SeatNowRequest claims seats for an occupant starting immediately.
// When the window is omitted it defaults to now plus the configured
// default dining duration.
type SeatNowRequest struct {
	OccupantType OccupantType `json:"occupant_type" binding:"required"`
	OccupantID   string       `json:"occupant_id" binding:"required,uuid"`
	SeatIDs      []string     `json:"seat_ids" binding:"required,min=1,dive,uuid"`
	StartTime    *time.Time   `json:"start_time"`
	EndTime      *time.Time   `json:"end_time"`
}

// ReserveRequest claims seats ahead of arrival. Seats may be given by
// id or by label against the active layout. EndTime defaults to
// StartTime plus the configured reservation duration.
type ReserveRequest struct {
	OccupantType OccupantType `json:"occupant_type" binding:"required"`
	OccupantID   string       `json:"occupant_id" binding:"required,uuid"`
	SeatIDs      []string     `json:"seat_ids" binding:"omitempty,dive,uuid"`
	SeatLabels   []string     `json:"seat_labels" binding:"omitempty,dive,min=1"`
	StartTime    time.Time    `json:"start_time" binding:"required"`
	EndTime      *time.Time   `json:"end_time"`
}

// TransitionRequest applies a lifecycle action to an occupant's active
// allocations.
type TransitionRequest struct {
	OccupantType OccupantType     `json:"occupant_type" binding:"required"`
	OccupantID   string           `json:"occupant_id" binding:"required,uuid"`
	Action       TransitionAction `json:"action" binding:"required"`
}
