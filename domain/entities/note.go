package entities

import "time"

// Note is a personal text note. Notes form an append-only list per user,
// addressed by their 1-based position.
type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxNoteLength caps stored note text; longer input is rejected.
const MaxNoteLength = 500
