package reservations

import "time"

type CreateReservationRequest struct {
	GuestName       string          `json:"guest_name" binding:"required,min=1"`
	Phone           string          `json:"phone" validate:"omitempty,phone"`
	PartySize       int             `json:"party_size" binding:"required,min=1"`
	StartTime       time.Time       `json:"start_time" binding:"required"`
	DurationMinutes int             `json:"duration_minutes" binding:"omitempty,min=1"`
	SeatPreferences SeatPreferences `json:"seat_preferences"`
	Notes           string          `json:"notes"`
}

// UpdateReservationRequest is a partial patch; nil fields are left
// untouched.
type UpdateReservationRequest struct {
	GuestName       *string          `json:"guest_name"`
	Phone           *string          `json:"phone" validate:"omitempty,phone"`
	PartySize       *int             `json:"party_size"`
	StartTime       *time.Time       `json:"start_time"`
	DurationMinutes *int             `json:"duration_minutes"`
	SeatPreferences *SeatPreferences `json:"seat_preferences"`
	Notes           *string          `json:"notes"`
}

type AssignPreferenceRequest struct {
	Rank int `json:"rank" binding:"min=0"`
}
