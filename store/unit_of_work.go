package store

import (
	"context"
	"fmt"

	"barkeep/domain/events"
	"barkeep/domain/interfaces"
)

// unitOfWork implements interfaces.UnitOfWork on top of the JSON store.
// Begin takes the store's exclusive lock and snapshots the document; the
// repositories mutate the snapshot; Commit writes it to disk and swaps it in.
type unitOfWork struct {
	store     *Store
	working   *Document
	publisher *events.TransactionalPublisher

	userRepo       interfaces.UserRepository
	reminderRepo   interfaces.ReminderRepository
	noteRepo       interfaces.NoteRepository
	pollRepo       interfaces.PollRepository
	shopRepo       interfaces.ShopRepository
	moderationRepo interfaces.ModerationRepository
	settingsRepo   interfaces.SettingsRepository
}

type unitOfWorkFactory struct {
	store *Store
	bus   *events.Bus
}

// NewUnitOfWorkFactory creates a factory producing units of work against the
// given store, publishing committed events onto bus.
func NewUnitOfWorkFactory(store *Store, bus *events.Bus) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{store: store, bus: bus}
}

func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		store:     f.store,
		publisher: events.NewTransactionalPublisher(f.bus),
	}
}

// Begin locks the store and snapshots the document for mutation.
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.working != nil {
		return fmt.Errorf("unit of work already started")
	}

	u.store.mu.Lock()
	working, err := u.store.doc.clone()
	if err != nil {
		u.store.mu.Unlock()
		return err
	}
	u.working = working

	u.userRepo = &userRepository{doc: working, publisher: u.publisher}
	u.reminderRepo = &reminderRepository{doc: working}
	u.noteRepo = &noteRepository{doc: working}
	u.pollRepo = &pollRepository{doc: working}
	u.shopRepo = &shopRepository{}
	u.moderationRepo = &moderationRepository{doc: working}
	u.settingsRepo = &settingsRepository{doc: working}

	return nil
}

// Commit serializes the working snapshot, swaps it into the store, releases
// the lock and flushes buffered events.
func (u *unitOfWork) Commit() error {
	if u.working == nil {
		return fmt.Errorf("no unit of work to commit")
	}

	if err := u.store.persist(u.working); err != nil {
		// Leave the in-memory document untouched; the caller sees a
		// PersistenceError and nothing was applied.
		u.store.mu.Unlock()
		u.working = nil
		u.publisher.Discard()
		return err
	}

	u.store.doc = u.working
	u.store.mu.Unlock()
	u.working = nil

	u.publisher.Flush()
	return nil
}

// Rollback discards the working snapshot and buffered events. Calling it
// after Commit is a no-op, so callers can defer it unconditionally.
func (u *unitOfWork) Rollback() error {
	if u.working == nil {
		return nil
	}
	u.working = nil
	u.store.mu.Unlock()
	u.publisher.Discard()
	return nil
}

func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

func (u *unitOfWork) ReminderRepository() interfaces.ReminderRepository {
	if u.reminderRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.reminderRepo
}

func (u *unitOfWork) NoteRepository() interfaces.NoteRepository {
	if u.noteRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.noteRepo
}

func (u *unitOfWork) PollRepository() interfaces.PollRepository {
	if u.pollRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.pollRepo
}

func (u *unitOfWork) ShopRepository() interfaces.ShopRepository {
	if u.shopRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shopRepo
}

func (u *unitOfWork) ModerationRepository() interfaces.ModerationRepository {
	if u.moderationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.moderationRepo
}

func (u *unitOfWork) SettingsRepository() interfaces.SettingsRepository {
	if u.settingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settingsRepo
}

func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.publisher
}
