package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/services"
)

// StartReminderWorker starts a background worker that delivers due reminders.
// Returns a cleanup function to stop the worker gracefully.
func (b *Bot) StartReminderWorker(ctx context.Context) func() {
	ticker := time.NewTicker(30 * time.Second)
	stopChan := make(chan struct{})

	deliverDueReminders := func() {
		uow := b.uowFactory.Create()
		if err := uow.Begin(context.Background()); err != nil {
			log.Errorf("Error beginning transaction for due reminders: %v", err)
			return
		}

		reminderService := services.NewReminderService(uow.ReminderRepository())
		due, err := reminderService.PopDue(context.Background(), time.Now())
		if err != nil {
			log.Errorf("Error popping due reminders: %v", err)
			uow.Rollback()
			return
		}
		// Commit the removal before delivering. A delivery failure drops the
		// reminder rather than repeating it.
		if err := uow.Commit(); err != nil {
			log.Errorf("Error committing due reminders: %v", err)
			return
		}

		for _, reminder := range due {
			delivered := b.deliverReminder(reminder)
			b.eventPublisher.Publish(events.ReminderFiredEvent{
				ReminderID: reminder.ID,
				UserID:     reminder.UserID,
				Delivered:  delivered,
			})
		}
	}

	go func() {
		log.Info("Reminder worker started")
		deliverDueReminders()

		for {
			select {
			case <-ctx.Done():
				log.Info("Reminder worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Reminder worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				deliverDueReminders()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}

// deliverReminder sends one reminder to its channel or the user's DMs.
func (b *Bot) deliverReminder(reminder *entities.Reminder) bool {
	channelID := common.FormatSnowflake(reminder.ChannelID)
	if reminder.DM {
		dm, err := b.session.UserChannelCreate(common.FormatSnowflake(reminder.UserID))
		if err != nil {
			log.Errorf("Error opening DM channel for reminder %d: %v", reminder.ID, err)
			return false
		}
		channelID = dm.ID
	}

	content := "⏰ " + common.Mention(reminder.UserID) + " " + reminder.Message
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		log.Errorf("Error delivering reminder %d: %v", reminder.ID, err)
		return false
	}
	return true
}

// StartAutoDeleteWorker starts a background worker that enforces per-channel
// auto-delete policies. Returns a cleanup function to stop the worker
// gracefully.
func (b *Bot) StartAutoDeleteWorker(ctx context.Context) func() {
	ticker := time.NewTicker(2 * time.Minute)
	stopChan := make(chan struct{})

	sweepChannels := func() {
		uow := b.uowFactory.Create()
		if err := uow.Begin(context.Background()); err != nil {
			log.Errorf("Error beginning transaction for auto-delete policies: %v", err)
			return
		}

		moderationService := services.NewModerationService(uow.ModerationRepository())
		policies, err := moderationService.AutoDeletePolicies(context.Background())
		uow.Rollback()

		if err != nil {
			log.Errorf("Error listing auto-delete policies: %v", err)
			return
		}

		for _, policy := range policies {
			if err := b.sweepChannel(policy); err != nil {
				log.Errorf("Error sweeping channel %d: %v", policy.ChannelID, err)
			}
		}
	}

	go func() {
		log.Info("Auto-delete worker started")
		sweepChannels()

		for {
			select {
			case <-ctx.Done():
				log.Info("Auto-delete worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Auto-delete worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				sweepChannels()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}

// splitSweepBatch decides what an auto-delete pass removes and how: messages
// younger than cutoff stay; expired ones young enough for Discord's bulk
// endpoint go to bulk; anything past the bulk boundary must be deleted
// one by one.
func splitSweepBatch(messages []*discordgo.Message, cutoff, bulkBoundary time.Time) (bulk, single []string) {
	for _, msg := range messages {
		if msg.Timestamp.After(cutoff) {
			continue
		}
		if msg.Timestamp.Before(bulkBoundary) {
			single = append(single, msg.ID)
			continue
		}
		bulk = append(bulk, msg.ID)
	}
	return bulk, single
}

// sweepChannel deletes messages older than the policy interval. Messages
// young enough for Discord's bulk endpoint go out in batches; anything past
// the 14-day boundary falls back to one-by-one deletion.
func (b *Bot) sweepChannel(policy entities.AutoDeletePolicy) error {
	channelID := common.FormatSnowflake(policy.ChannelID)
	cutoff := time.Now().Add(-policy.Interval)
	bulkBoundary := time.Now().Add(-entities.BulkDeleteMaxAge)
	before := ""

	// Bound one sweep to the purge ceiling; the next tick picks up the rest.
	for scanned := 0; scanned < entities.MaxPurgeCount; scanned += 100 {
		messages, err := b.session.ChannelMessages(channelID, 100, before, "", "")
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}
		before = messages[len(messages)-1].ID

		bulk, single := splitSweepBatch(messages, cutoff, bulkBoundary)
		for _, id := range single {
			if err := b.session.ChannelMessageDelete(channelID, id); err != nil {
				return err
			}
		}
		if len(bulk) == 1 {
			if err := b.session.ChannelMessageDelete(channelID, bulk[0]); err != nil {
				return err
			}
		} else if len(bulk) > 1 {
			if err := b.session.ChannelMessagesBulkDelete(channelID, bulk); err != nil {
				return err
			}
		}
	}
	return nil
}
