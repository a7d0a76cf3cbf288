package waitlist

type JoinRequest struct {
	GuestName string `json:"guest_name" binding:"required,min=1"`
	Phone     string `json:"phone"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
}
