package bot

import (
	log "github.com/sirupsen/logrus"

	"barkeep/domain/events"
)

// RegisterSubscriptions attaches the audit-log handlers to the event bus.
// Every committed balance change, game result, vote and reminder delivery
// leaves a structured log line.
func RegisterSubscriptions(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(event events.Event) {
		e, ok := event.(events.BalanceChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"userID":       e.UserID,
			"oldBalance":   e.OldBalance,
			"newBalance":   e.NewBalance,
			"changeAmount": e.ChangeAmount,
			"reason":       e.Reason,
		}).Info("Balance changed")
	})

	bus.Subscribe(events.EventTypeUserCreated, func(event events.Event) {
		e, ok := event.(events.UserCreatedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"userID":   e.UserID,
			"username": e.Username,
		}).Info("New account created")
	})

	bus.Subscribe(events.EventTypeGameResolved, func(event events.Event) {
		e, ok := event.(events.GameResolvedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"game":      e.Game,
			"userID":    e.UserID,
			"wager":     e.Wager,
			"netChange": e.NetChange,
			"outcome":   e.Outcome,
		}).Info("Game resolved")
	})

	bus.Subscribe(events.EventTypePollVote, func(event events.Event) {
		e, ok := event.(events.PollVoteEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"pollID":   e.PollID,
			"userID":   e.UserID,
			"option":   e.Option,
			"overrode": e.Overrode,
		}).Debug("Poll vote recorded")
	})

	bus.Subscribe(events.EventTypeReminderFired, func(event events.Event) {
		e, ok := event.(events.ReminderFiredEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"reminderID": e.ReminderID,
			"userID":     e.UserID,
			"delivered":  e.Delivered,
		}).Info("Reminder fired")
	})
}
