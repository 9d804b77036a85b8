package store

import (
	"encoding/json"
	"fmt"

	"barkeep/domain/entities"
)

// Document is the full persisted state. It serializes to the single JSON
// file backing the bot. Map keys are decimal Discord snowflakes so the file
// stays diffable. Unknown keys in an existing file are ignored on load and
// missing keys take their zero defaults, keeping the schema forward
// compatible.
type Document struct {
	Users       map[string]*entities.User  `json:"users"`
	Reminders   []*entities.Reminder       `json:"reminders"`
	ReminderSeq int64                      `json:"reminder_seq"`
	Notes       map[string][]entities.Note `json:"notes"`
	Polls       map[string]*entities.Poll  `json:"polls"`
	PollSeq     int64                      `json:"poll_seq"`
	AutoDelete  map[string]int64           `json:"autodelete"` // channel id -> seconds
	Allowlist   []int64                    `json:"allowlist"`
	Pins        map[string]string          `json:"pins"`
	TriviaToken string                     `json:"trivia_token,omitempty"`
}

// newDocument returns an empty document with all maps initialized.
func newDocument() *Document {
	return &Document{
		Users:      make(map[string]*entities.User),
		Notes:      make(map[string][]entities.Note),
		Polls:      make(map[string]*entities.Poll),
		AutoDelete: make(map[string]int64),
		Pins:       make(map[string]string),
	}
}

// ensureShape re-initializes any maps a hand-edited or older file left null.
func (d *Document) ensureShape() {
	if d.Users == nil {
		d.Users = make(map[string]*entities.User)
	}
	if d.Notes == nil {
		d.Notes = make(map[string][]entities.Note)
	}
	if d.Polls == nil {
		d.Polls = make(map[string]*entities.Poll)
	}
	if d.AutoDelete == nil {
		d.AutoDelete = make(map[string]int64)
	}
	if d.Pins == nil {
		d.Pins = make(map[string]string)
	}
}

// clone deep-copies the document via a JSON round trip. Documents are small
// (single guild scale) so this is cheap enough per unit of work.
func (d *Document) clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	out := newDocument()
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to clone document: %w", err)
	}
	out.ensureShape()
	return out, nil
}
