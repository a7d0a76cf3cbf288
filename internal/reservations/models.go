package reservations

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status follows the reservation through its lifecycle. booked means no
// seats are held yet; reserved means seats are allocated ahead of
// arrival.
type Status string

const (
	StatusBooked   Status = "booked"
	StatusReserved Status = "reserved"
	StatusSeated   Status = "seated"
	StatusFinished Status = "finished"
	StatusCanceled Status = "canceled"
	StatusNoShow   Status = "no_show"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusReserved, StatusSeated, StatusFinished, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions apply
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCanceled || s == StatusNoShow
}

// SeatPreferences is up to three ranked seat-label lists, stored as a
// jsonb column. Rank 0 is the first choice.
type SeatPreferences [][]string

const MaxPreferenceRanks = 3

// Value implements the driver.Valuer interface for database storage
func (p SeatPreferences) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for database retrieval
func (p *SeatPreferences) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, p)
}

// GormDataType tells GORM how to handle this type
func (SeatPreferences) GormDataType() string {
	return "jsonb"
}

// Reservation is a guest booking for a future visit. SeatLabels is a
// denormalized copy of the currently allocated seats, refreshed on every
// assignment and release.
type Reservation struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	GuestName       string          `json:"guest_name" gorm:"not null"`
	Phone           string          `json:"phone"`
	PartySize       int             `json:"party_size" gorm:"not null"`
	Status          Status          `json:"status" gorm:"type:varchar(20);not null;index"`
	StartTime       time.Time       `json:"start_time" gorm:"not null;index"`
	DurationMinutes int             `json:"duration_minutes" gorm:"not null"`
	SeatPreferences SeatPreferences `json:"seat_preferences" gorm:"type:jsonb"`
	SeatLabels      SeatLabelList   `json:"seat_labels" gorm:"type:jsonb"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// SeatLabelList is a flat label list stored as jsonb
type SeatLabelList []string

func (l SeatLabelList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *SeatLabelList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, l)
}

func (SeatLabelList) GormDataType() string {
	return "jsonb"
}
