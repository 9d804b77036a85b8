package entities

import "time"

// Reminder is a scheduled one-shot notification. IDs are sequential and
// unique for the lifetime of the store.
type Reminder struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ChannelID int64     `json:"channel_id,omitempty"`
	Message   string    `json:"message"`
	DueAt     time.Time `json:"due_at"`
	DM        bool      `json:"dm,omitempty"`
}

// Due reports whether the reminder should fire at the given instant.
func (r *Reminder) Due(now time.Time) bool {
	return !r.DueAt.After(now)
}
