package wizard

import (
	"time"

	"github.com/google/uuid"
)

// State of a seating wizard session. The flow only ever moves forward
// except for the conflict reset back to idle.
type State string

const (
	StateIdle             State = "idle"
	StateOccupantSelected State = "occupant_selected"
	StateSeatsPicking     State = "seats_picking"
	StateCommitted        State = "committed"
	StateCanceled         State = "canceled"
)

// CommitMode selects how the picked seats are claimed
type CommitMode string

const (
	ModeSeatNow CommitMode = "seat_now"
	ModeReserve CommitMode = "reserve"
)

func (m CommitMode) IsValid() bool {
	return m == ModeSeatNow || m == ModeReserve
}

// SeatPick is one selected seat, carried with its label so the session
// can render without refetching the layout.
type SeatPick struct {
	SeatID string `json:"seat_id"`
	Label  string `json:"label"`
}

// Session is the full state of one staff member walking a party to
// seats. It lives in the session store, never in the database; an
// abandoned session simply expires.
type Session struct {
	ID           uuid.UUID  `json:"id"`
	State        State      `json:"state"`
	OccupantType string     `json:"occupant_type,omitempty"`
	OccupantID   string     `json:"occupant_id,omitempty"`
	GuestName    string     `json:"guest_name,omitempty"`
	PartySize    int        `json:"party_size,omitempty"`
	Date         string     `json:"date,omitempty"`
	TargetStart  *time.Time `json:"target_start,omitempty"`
	Selected     []SeatPick `json:"selected"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsSelected reports whether the seat is already picked
func (s *Session) IsSelected(seatID string) bool {
	for _, pick := range s.Selected {
		if pick.SeatID == seatID {
			return true
		}
	}
	return false
}

// Deselect removes the seat from the selection if present
func (s *Session) Deselect(seatID string) {
	kept := s.Selected[:0]
	for _, pick := range s.Selected {
		if pick.SeatID != seatID {
			kept = append(kept, pick)
		}
	}
	s.Selected = kept
}

// SelectedSeatIDs returns the picked seat ids in selection order
func (s *Session) SelectedSeatIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for _, pick := range s.Selected {
		ids = append(ids, pick.SeatID)
	}
	return ids
}

// Reset clears the session back to idle after a commit conflict. The
// occupant and selection are dropped; the staff member starts over
// against fresh occupancy.
func (s *Session) Reset() {
	s.State = StateIdle
	s.OccupantType = ""
	s.OccupantID = ""
	s.GuestName = ""
	s.PartySize = 0
	s.Date = ""
	s.TargetStart = nil
	s.Selected = nil
}
