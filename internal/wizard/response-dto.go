package wizard

import "seatly/internal/allocations"

// CommitResult is a successful commit: the closed session plus the
// allocations it produced.
type CommitResult struct {
	Session     *Session                     `json:"session"`
	Allocations []allocations.SeatAllocation `json:"allocations"`
}
