package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barkeep/domain/entities"
	"barkeep/domain/events"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.doc.Users)
	assert.Empty(t, s.doc.Reminders)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestCommitPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	user, err := uow.UserRepository().GetOrCreate(ctx, 123456, "alice")
	require.NoError(t, err)
	user.Balance = 500
	require.NoError(t, uow.UserRepository().Save(ctx, user))
	require.NoError(t, uow.NoteRepository().Add(ctx, 123456, "buy milk"))
	require.NoError(t, uow.Commit())

	// A fresh store over the same file sees the committed state.
	reloaded, err := Open(path)
	require.NoError(t, err)
	uow2 := NewUnitOfWorkFactory(reloaded, events.NewBus()).Create()
	require.NoError(t, uow2.Begin(ctx))
	defer uow2.Rollback()

	got, err := uow2.UserRepository().GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(500), got.Balance)
	assert.Equal(t, "alice", got.Username)

	notes, err := uow2.NoteRepository().List(ctx, 123456)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "buy milk", notes[0].Text)
}

func TestRollbackDiscardsMutations(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.UserRepository().GetOrCreate(ctx, 123456, "alice")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	uow2 := factory.Create()
	require.NoError(t, uow2.Begin(ctx))
	defer uow2.Rollback()

	got, err := uow2.UserRepository().GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventsFlushOnlyOnCommit(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	bus := events.NewBus()
	var created []events.Event
	bus.Subscribe(events.EventTypeUserCreated, func(e events.Event) {
		created = append(created, e)
	})
	factory := NewUnitOfWorkFactory(s, bus)

	// Rolled-back work publishes nothing.
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.UserRepository().GetOrCreate(ctx, 111, "ghost")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())
	assert.Empty(t, created)

	uow2 := factory.Create()
	require.NoError(t, uow2.Begin(ctx))
	_, err = uow2.UserRepository().GetOrCreate(ctx, 222, "bob")
	require.NoError(t, err)
	assert.Empty(t, created, "events must not fire before commit")
	require.NoError(t, uow2.Commit())

	require.Len(t, created, 1)
	event := created[0].(events.UserCreatedEvent)
	assert.Equal(t, int64(222), event.UserID)
	assert.Equal(t, "bob", event.Username)
}

func TestGetOrCreateRefreshesUsername(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.UserRepository().GetOrCreate(ctx, 123456, "alice")
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	uow2 := factory.Create()
	require.NoError(t, uow2.Begin(ctx))
	user, err := uow2.UserRepository().GetOrCreate(ctx, 123456, "alice_renamed")
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", user.Username)
	require.NoError(t, uow2.Commit())
}

func TestListTopByBalance(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	repo := uow.UserRepository()
	for _, u := range []struct {
		id      int64
		balance int64
	}{{1, 100}, {2, 900}, {3, 400}} {
		user, err := repo.GetOrCreate(ctx, u.id, "player")
		require.NoError(t, err)
		user.Balance = u.balance
		require.NoError(t, repo.Save(ctx, user))
	}

	top, err := repo.ListTopByBalance(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].DiscordID)
	assert.Equal(t, int64(3), top[1].DiscordID)
	require.NoError(t, uow.Commit())
}

func TestReminderPopDue(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())
	now := time.Now().UTC()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	repo := uow.ReminderRepository()

	past, err := repo.Add(ctx, &entities.Reminder{UserID: 1, Message: "overdue", DueAt: now.Add(-time.Minute)})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &entities.Reminder{UserID: 1, Message: "later", DueAt: now.Add(time.Hour)})
	require.NoError(t, err)

	due, err := repo.PopDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, past, due[0].ID)

	// Popped reminders are gone; the future one stays.
	remaining, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "later", remaining[0].Message)
	require.NoError(t, uow.Commit())
}

func TestReminderIDsAreSequentialAcrossRemovals(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())
	due := time.Now().UTC().Add(time.Hour)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	repo := uow.ReminderRepository()

	first, err := repo.Add(ctx, &entities.Reminder{UserID: 1, Message: "a", DueAt: due})
	require.NoError(t, err)
	removed, err := repo.Remove(ctx, first)
	require.NoError(t, err)
	assert.True(t, removed)

	second, err := repo.Add(ctx, &entities.Reminder{UserID: 1, Message: "b", DueAt: due})
	require.NoError(t, err)
	assert.Equal(t, first+1, second, "ids never get reused")

	removed, err = repo.Remove(ctx, first)
	require.NoError(t, err)
	assert.False(t, removed)
	require.NoError(t, uow.Commit())
}

func TestTriviaTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)
	factory := NewUnitOfWorkFactory(s, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SettingsRepository().SetTriviaToken(ctx, "tok123"))
	require.NoError(t, uow.Commit())

	reloaded, err := Open(path)
	require.NoError(t, err)
	uow2 := NewUnitOfWorkFactory(reloaded, events.NewBus()).Create()
	require.NoError(t, uow2.Begin(ctx))
	defer uow2.Rollback()

	token, err := uow2.SettingsRepository().TriviaToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
}
