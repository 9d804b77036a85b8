package services

import (
	"context"
	"fmt"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/interfaces"
)

// MaxReminderMessage caps the stored reminder text.
const MaxReminderMessage = 500

// ReminderService manages scheduled reminders. Delivery itself happens in
// the sweep worker; this service only owns the schedule.
type ReminderService struct {
	reminders interfaces.ReminderRepository
}

// NewReminderService creates a reminder service.
func NewReminderService(reminders interfaces.ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

// Schedule stores a reminder due after delay. The due time is computed at
// call time, so restarts never shift it.
func (s *ReminderService) Schedule(ctx context.Context, userID, channelID int64, message string, delay time.Duration, dm bool) (*entities.Reminder, error) {
	if message == "" {
		return nil, entities.NewValidationError("reminder message cannot be empty")
	}
	if len(message) > MaxReminderMessage {
		return nil, entities.NewValidationError("reminder message too long (max %d characters)", MaxReminderMessage)
	}
	if delay <= 0 {
		return nil, entities.NewValidationError("reminder delay must be in the future")
	}

	reminder := &entities.Reminder{
		UserID:    userID,
		ChannelID: channelID,
		Message:   message,
		DueAt:     time.Now().UTC().Add(delay),
		DM:        dm,
	}
	if _, err := s.reminders.Add(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to store reminder: %w", err)
	}
	return reminder, nil
}

// List returns the user's pending reminders.
func (s *ReminderService) List(ctx context.Context, userID int64) ([]*entities.Reminder, error) {
	return s.reminders.ListByUser(ctx, userID)
}

// Cancel deletes a reminder. Only the owner or a moderator may cancel;
// a missing id fails with ErrNotFound.
func (s *ReminderService) Cancel(ctx context.Context, id, requesterID int64, isModerator bool) error {
	owned, err := s.reminders.ListByUser(ctx, requesterID)
	if err != nil {
		return err
	}
	mine := false
	for _, r := range owned {
		if r.ID == id {
			mine = true
			break
		}
	}
	if !mine && !isModerator {
		return entities.ErrUnauthorized
	}

	removed, err := s.reminders.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return entities.ErrNotFound
	}
	return nil
}

// PopDue removes and returns reminders due at or before now, oldest first.
func (s *ReminderService) PopDue(ctx context.Context, now time.Time) ([]*entities.Reminder, error) {
	return s.reminders.PopDue(ctx, now)
}
