package allocations

import (
	"time"

	"github.com/google/uuid"
)

// OccupantType tags the polymorphic occupant reference. The allocation
// only back-references its occupant; ownership stays with the booking
// subsystem.
type OccupantType string

const (
	OccupantReservation OccupantType = "reservation"
	OccupantWaitlist    OccupantType = "waitlist"
)

func (t OccupantType) IsValid() bool {
	return t == OccupantReservation || t == OccupantWaitlist
}

// Status of a live allocation. Released allocations keep their last
// status; occupancy only looks at non-released rows.
type Status string

const (
	StatusReserved Status = "reserved"
	StatusOccupied Status = "occupied"
)

func (s Status) IsValid() bool {
	return s == StatusReserved || s == StatusOccupied
}

// TransitionAction is a lifecycle action applied to an occupant's
// active allocations.
type TransitionAction string

const (
	ActionArrive TransitionAction = "arrive"
	ActionFinish TransitionAction = "finish"
	ActionNoShow TransitionAction = "no_show"
	ActionCancel TransitionAction = "cancel"
)

func (a TransitionAction) IsValid() bool {
	switch a {
	case ActionArrive, ActionFinish, ActionNoShow, ActionCancel:
		return true
	}
	return false
}

// SeatAllocation is a time-scoped claim of a seat by an occupant.
// Invariant (server-enforced): at most one non-released, time-overlapping
// allocation per seat.
type SeatAllocation struct {
	ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatID        uuid.UUID    `gorm:"type:uuid;index;not null" json:"seat_id"`
	SeatLabel     string       `gorm:"not null" json:"seat_label"`
	OccupantType  OccupantType `gorm:"type:varchar(20);not null" json:"occupant_type"`
	OccupantID    uuid.UUID    `gorm:"type:uuid;not null" json:"occupant_id"`
	OccupantName  string       `gorm:"not null" json:"occupant_name"`
	PartySize     int          `gorm:"not null;default:1" json:"occupant_party_size"`
	Status        Status       `gorm:"type:varchar(20);not null" json:"occupant_status"`
	StartTime     time.Time    `gorm:"not null;index" json:"start_time"`
	EndTime       time.Time    `gorm:"not null" json:"end_time"`
	ReleasedAt    *time.Time   `gorm:"index" json:"released_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (SeatAllocation) TableName() string {
	return "seat_allocations"
}

// IsActive reports whether the allocation still claims its seat
func (a *SeatAllocation) IsActive() bool {
	return a.ReleasedAt == nil
}

// OccupantInfo is the slice of an occupant the allocation layer needs
type OccupantInfo struct {
	Name      string
	PartySize int
	StartTime *time.Time // reservations only
}

// TableStatusEvent is published on every allocation mutation
type TableStatusEvent struct {
	EventType    string    `json:"event_type"` // seated, reserved, released
	OccupantType string    `json:"occupant_type"`
	OccupantID   string    `json:"occupant_id"`
	SeatLabels   []string  `json:"seat_labels"`
	Date         string    `json:"date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
