package wizard

type StartRequest struct {
	OccupantType string `json:"occupant_type" binding:"required,oneof=reservation waitlist"`
	OccupantID   string `json:"occupant_id" binding:"required,uuid"`
}

type ToggleSeatRequest struct {
	SeatID string `json:"seat_id" binding:"required,uuid"`
}

type CommitSessionRequest struct {
	Mode CommitMode `json:"mode" binding:"required,oneof=seat_now reserve"`
}
