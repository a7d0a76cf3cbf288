package waitlist

import (
	"time"

	"github.com/google/uuid"
)

// Status of a walk-in party in the queue
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusSeated  Status = "seated"
	StatusRemoved Status = "removed"
	StatusNoShow  Status = "no_show"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusSeated, StatusRemoved, StatusNoShow:
		return true
	}
	return false
}

// WaitlistEntry is a walk-in party waiting for seats. Entries carry no
// seat references; seats are tracked by the allocation layer.
type WaitlistEntry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	GuestName   string    `json:"guest_name" gorm:"not null"`
	Phone       string    `json:"phone"`
	PartySize   int       `json:"party_size" gorm:"not null"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;index"`
	CheckInTime time.Time `json:"check_in_time" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}

// WaitTime is how long the party has been queued as of now
func (e *WaitlistEntry) WaitTime(now time.Time) time.Duration {
	return now.Sub(e.CheckInTime)
}
