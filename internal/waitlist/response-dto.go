package waitlist

// QueueEntry is a waiting party with its derived queue position
type QueueEntry struct {
	WaitlistEntry
	Position        int `json:"position"`
	WaitTimeMinutes int `json:"wait_time_minutes"`
}
