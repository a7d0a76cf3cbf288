package allocations

// DayResponse is the full allocation set for one restaurant day
type DayResponse struct {
	Date        string           `json:"date"`
	Allocations []SeatAllocation `json:"allocations"`
}

// CommitResponse is returned by seat-now and reserve commits
type CommitResponse struct {
	Allocations []SeatAllocation `json:"allocations"`
	SeatLabels  []string         `json:"seat_labels"`
}
