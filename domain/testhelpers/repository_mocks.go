package testhelpers

import (
	"context"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.User, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListTopByBalance(ctx context.Context, limit int) ([]*entities.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListTopByWins(ctx context.Context, limit int) ([]*entities.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// MockReminderRepository is a mock implementation of ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Add(ctx context.Context, reminder *entities.Reminder) (int64, error) {
	args := m.Called(ctx, reminder)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReminderRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Reminder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Remove(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderRepository) PopDue(ctx context.Context, now time.Time) ([]*entities.Reminder, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reminder), args.Error(1)
}

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Add(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

func (m *MockNoteRepository) List(ctx context.Context, userID int64) ([]entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, userID int64, index int) error {
	args := m.Called(ctx, userID, index)
	return args.Error(0)
}

// MockPollRepository is a mock implementation of PollRepository
type MockPollRepository struct {
	mock.Mock
}

func (m *MockPollRepository) Create(ctx context.Context, poll *entities.Poll) (int64, error) {
	args := m.Called(ctx, poll)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPollRepository) GetByID(ctx context.Context, id int64) (*entities.Poll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Poll), args.Error(1)
}

func (m *MockPollRepository) Save(ctx context.Context, poll *entities.Poll) error {
	args := m.Called(ctx, poll)
	return args.Error(0)
}

// MockShopRepository is a mock implementation of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Catalog(ctx context.Context) ([]entities.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ShopItem), args.Error(1)
}

func (m *MockShopRepository) GetItem(ctx context.Context, name string) (*entities.ShopItem, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ShopItem), args.Error(1)
}

// MockModerationRepository is a mock implementation of ModerationRepository
type MockModerationRepository struct {
	mock.Mock
}

func (m *MockModerationRepository) SetAutoDelete(ctx context.Context, channelID int64, interval time.Duration) error {
	args := m.Called(ctx, channelID, interval)
	return args.Error(0)
}

func (m *MockModerationRepository) RemoveAutoDelete(ctx context.Context, channelID int64) (bool, error) {
	args := m.Called(ctx, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) ListAutoDelete(ctx context.Context) ([]entities.AutoDeletePolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AutoDeletePolicy), args.Error(1)
}

func (m *MockModerationRepository) AddToAllowlist(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) RemoveFromAllowlist(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) IsAllowlisted(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockModerationRepository) Allowlist(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockModerationRepository) SetPin(ctx context.Context, channelID int64, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *MockModerationRepository) GetPin(ctx context.Context, channelID int64) (string, error) {
	args := m.Called(ctx, channelID)
	return args.String(0), args.Error(1)
}

func (m *MockModerationRepository) ClearPin(ctx context.Context, channelID int64) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) TriviaToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) SetTriviaToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// RecordingPublisher collects published events for assertions without
// expectation plumbing.
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(event events.Event) {
	p.Events = append(p.Events, event)
}
