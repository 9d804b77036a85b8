package interfaces

import (
	"context"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/events"
)

// UserRepository manages economy accounts.
type UserRepository interface {
	// GetByDiscordID returns the account, or nil when none exists.
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error)
	// GetOrCreate returns the account, creating it on first interaction.
	GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.User, error)
	// Save persists the full account state.
	Save(ctx context.Context, user *entities.User) error
	// ListTopByBalance returns up to limit accounts ordered by balance.
	ListTopByBalance(ctx context.Context, limit int) ([]*entities.User, error)
	// ListTopByWins returns up to limit accounts ordered by win count.
	ListTopByWins(ctx context.Context, limit int) ([]*entities.User, error)
}

// ReminderRepository manages scheduled reminders.
type ReminderRepository interface {
	// Add stores the reminder and assigns the next sequential id.
	Add(ctx context.Context, reminder *entities.Reminder) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Reminder, error)
	// Remove deletes by id; returns false when the id was not present.
	Remove(ctx context.Context, id int64) (bool, error)
	// PopDue removes and returns all reminders due at or before now.
	PopDue(ctx context.Context, now time.Time) ([]*entities.Reminder, error)
}

// NoteRepository manages per-user note lists.
type NoteRepository interface {
	Add(ctx context.Context, userID int64, text string) error
	List(ctx context.Context, userID int64) ([]entities.Note, error)
	// Delete removes the note at the 0-based index; ErrNotFound if out of range.
	Delete(ctx context.Context, userID int64, index int) error
}

// PollRepository manages persisted polls.
type PollRepository interface {
	// Create stores the poll and assigns the next sequential id.
	Create(ctx context.Context, poll *entities.Poll) (int64, error)
	// GetByID returns the poll, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*entities.Poll, error)
	Save(ctx context.Context, poll *entities.Poll) error
}

// ShopRepository exposes the item catalog.
type ShopRepository interface {
	Catalog(ctx context.Context) ([]entities.ShopItem, error)
	// GetItem returns the catalog entry by name, or ErrNotFound.
	GetItem(ctx context.Context, name string) (*entities.ShopItem, error)
}

// ModerationRepository manages auto-delete config, the allowlist and channel pins.
type ModerationRepository interface {
	SetAutoDelete(ctx context.Context, channelID int64, interval time.Duration) error
	// RemoveAutoDelete disables auto-delete; returns false when not configured.
	RemoveAutoDelete(ctx context.Context, channelID int64) (bool, error)
	ListAutoDelete(ctx context.Context) ([]entities.AutoDeletePolicy, error)

	AddToAllowlist(ctx context.Context, userID int64) (bool, error)
	RemoveFromAllowlist(ctx context.Context, userID int64) (bool, error)
	IsAllowlisted(ctx context.Context, userID int64) (bool, error)
	Allowlist(ctx context.Context) ([]int64, error)

	SetPin(ctx context.Context, channelID int64, text string) error
	// GetPin returns the channel's sticky text, or "" when unset.
	GetPin(ctx context.Context, channelID int64) (string, error)
	ClearPin(ctx context.Context, channelID int64) error
}

// SettingsRepository holds small persisted key/value settings such as the
// trivia API session token.
type SettingsRepository interface {
	TriviaToken(ctx context.Context) (string, error)
	SetTriviaToken(ctx context.Context, token string) error
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork scopes a read-modify-write cycle against the store. Begin takes
// the store's exclusive lock; Commit serializes the document; Rollback
// discards all mutations. Events published through EventBus are buffered and
// flushed only on commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	ReminderRepository() ReminderRepository
	NoteRepository() NoteRepository
	PollRepository() PollRepository
	ShopRepository() ShopRepository
	ModerationRepository() ModerationRepository
	SettingsRepository() SettingsRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
