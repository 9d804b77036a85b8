package events

import "barkeep/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeUserCreated   EventType = "user_created"
	EventTypeGameResolved  EventType = "game_resolved"
	EventTypePollVote      EventType = "poll_vote"
	EventTypeReminderFired EventType = "reminder_fired"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID       int64
	OldBalance   int64
	NewBalance   int64
	Reason       string
	ChangeAmount int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new account creation
type UserCreatedEvent struct {
	UserID   int64
	Username string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// GameResolvedEvent represents a finished game session
type GameResolvedEvent struct {
	Game      string
	UserID    int64
	Wager     int64
	NetChange int64
	Outcome   entities.GameOutcome
}

func (e GameResolvedEvent) Type() EventType {
	return EventTypeGameResolved
}

// PollVoteEvent represents a vote being cast or overwritten
type PollVoteEvent struct {
	PollID   int64
	UserID   int64
	Option   int
	Overrode bool
}

func (e PollVoteEvent) Type() EventType {
	return EventTypePollVote
}

// ReminderFiredEvent represents a reminder that was delivered (or dropped
// after a delivery failure; delivery is at-most-once either way).
type ReminderFiredEvent struct {
	ReminderID int64
	UserID     int64
	Delivered  bool
}

func (e ReminderFiredEvent) Type() EventType {
	return EventTypeReminderFired
}
