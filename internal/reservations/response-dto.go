package reservations

import "seatly/internal/availability"

// SlotsResponse is the availability subsystem's answer for one date
type SlotsResponse struct {
	Date      string              `json:"date"`
	PartySize int                 `json:"party_size"`
	Slots     []availability.Slot `json:"slots"`
}

// PreferenceEvaluation grades every ranked preference for a reservation
type PreferenceEvaluation struct {
	ReservationID string             `json:"reservation_id"`
	Date          string             `json:"date"`
	Options       []PreferenceOption `json:"options"`
}
