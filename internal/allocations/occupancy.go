package allocations

import (
	"seatly/internal/layouts"

	"github.com/google/uuid"
)

// SeatStatus is the derived per-seat display status
type SeatStatus string

const (
	SeatFree     SeatStatus = "free"
	SeatReserved SeatStatus = "reserved"
	SeatOccupied SeatStatus = "occupied"
)

// SeatState is the derived occupancy of one seat for the target date
type SeatState struct {
	SeatID       string     `json:"seat_id"`
	Label        string     `json:"label"`
	Status       SeatStatus `json:"status"`
	OccupantType string     `json:"occupant_type,omitempty"`
	OccupantID   string     `json:"occupant_id,omitempty"`
	OccupantName string     `json:"occupant_name,omitempty"`
	PartySize    int        `json:"party_size,omitempty"`
	AllocationID string     `json:"allocation_id,omitempty"`
}

// Snapshot is the derived occupancy of every seat in the active layout
// for one date. It is the only cross-component shared state: owned and
// refreshed here, read-only to geometry and preference code.
type Snapshot struct {
	Date    string               `json:"date"`
	States  map[string]SeatState `json:"states"`   // keyed by seat id
	ByLabel map[string]string    `json:"by_label"` // label -> seat id
}

// BuildSnapshot derives per-seat status from the day's allocation rows.
// A seat is non-free iff a non-released allocation exists for it; the
// displayed status is that allocation's status verbatim. If the server
// invariant is ever violated and a seat has several non-released rows,
// the first match wins; this is a documented assumption, not
// re-validated here.
func BuildSnapshot(date string, layout *layouts.Layout, allocs []SeatAllocation) *Snapshot {
	snap := &Snapshot{
		Date:    date,
		States:  make(map[string]SeatState),
		ByLabel: make(map[string]string),
	}

	for _, sec := range layout.Sections {
		for _, seat := range sec.Seats {
			id := seat.ID.String()
			snap.States[id] = SeatState{
				SeatID: id,
				Label:  seat.Label,
				Status: SeatFree,
			}
			snap.ByLabel[seat.Label] = id
		}
	}

	for _, alloc := range allocs {
		if !alloc.IsActive() {
			continue
		}
		id := alloc.SeatID.String()
		state, known := snap.States[id]
		if !known || state.Status != SeatFree {
			// Seat missing from the active layout, or already claimed
			// by an earlier row: first match wins.
			continue
		}

		status := SeatReserved
		if alloc.Status == StatusOccupied {
			status = SeatOccupied
		}
		snap.States[id] = SeatState{
			SeatID:       id,
			Label:        state.Label,
			Status:       status,
			OccupantType: string(alloc.OccupantType),
			OccupantID:   alloc.OccupantID.String(),
			OccupantName: alloc.OccupantName,
			PartySize:    alloc.PartySize,
			AllocationID: alloc.ID.String(),
		}
	}

	return snap
}

// StateFor returns the derived state of a seat
func (s *Snapshot) StateFor(seatID uuid.UUID) (SeatState, bool) {
	state, ok := s.States[seatID.String()]
	return state, ok
}

// IsFree reports whether a known seat is currently free. Unknown seats
// are never free.
func (s *Snapshot) IsFree(seatID uuid.UUID) bool {
	state, ok := s.States[seatID.String()]
	return ok && state.Status == SeatFree
}

// IsLabelFree reports whether the label resolves to a currently free
// seat. A label absent from the layout is not free.
func (s *Snapshot) IsLabelFree(label string) bool {
	id, ok := s.ByLabel[label]
	if !ok {
		return false
	}
	return s.States[id].Status == SeatFree
}

// SeatIDForLabel resolves a label to its seat id
func (s *Snapshot) SeatIDForLabel(label string) (uuid.UUID, bool) {
	idStr, ok := s.ByLabel[label]
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
