package entities

import (
	"time"
)

// Poll limits.
const (
	MinPollOptions = 2
	MaxPollOptions = 5
)

// Poll is a persisted multiple-choice poll. Each user holds at most one vote;
// revoting overwrites the previous choice.
type Poll struct {
	ID        int64           `json:"id"`
	ChannelID int64           `json:"channel_id"`
	CreatorID int64           `json:"creator_id"`
	Question  string          `json:"question"`
	Options   []string        `json:"options"`
	Votes     map[int64]int   `json:"votes,omitempty"` // user id -> option index
	Closed    bool            `json:"closed,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ValidatePollOptions checks the option list for count and uniqueness.
func ValidatePollOptions(options []string) error {
	if len(options) < MinPollOptions || len(options) > MaxPollOptions {
		return NewValidationError("provide %d to %d options", MinPollOptions, MaxPollOptions)
	}
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		if opt == "" {
			return NewValidationError("options must not be empty")
		}
		if seen[opt] {
			return NewValidationError("duplicate option: %s", opt)
		}
		seen[opt] = true
	}
	return nil
}

// Vote records or overwrites the user's vote.
func (p *Poll) Vote(userID int64, option int) error {
	if p.Closed {
		return ErrExpired
	}
	if option < 0 || option >= len(p.Options) {
		return NewValidationError("option out of range")
	}
	if p.Votes == nil {
		p.Votes = make(map[int64]int)
	}
	p.Votes[userID] = option
	return nil
}

// Tally returns vote counts per option, in option order.
func (p *Poll) Tally() []int {
	counts := make([]int, len(p.Options))
	for _, idx := range p.Votes {
		if idx >= 0 && idx < len(counts) {
			counts[idx]++
		}
	}
	return counts
}

// TotalVotes returns the number of distinct voters.
func (p *Poll) TotalVotes() int {
	return len(p.Votes)
}
