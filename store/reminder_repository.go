package store

import (
	"context"
	"sort"
	"time"

	"barkeep/domain/entities"
)

type reminderRepository struct {
	doc *Document
}

func (r *reminderRepository) Add(ctx context.Context, reminder *entities.Reminder) (int64, error) {
	r.doc.ReminderSeq++
	reminder.ID = r.doc.ReminderSeq
	r.doc.Reminders = append(r.doc.Reminders, reminder)
	return reminder.ID, nil
}

func (r *reminderRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Reminder, error) {
	var out []*entities.Reminder
	for _, rem := range r.doc.Reminders {
		if rem.UserID == userID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (r *reminderRepository) Remove(ctx context.Context, id int64) (bool, error) {
	for i, rem := range r.doc.Reminders {
		if rem.ID == id {
			r.doc.Reminders = append(r.doc.Reminders[:i], r.doc.Reminders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *reminderRepository) PopDue(ctx context.Context, now time.Time) ([]*entities.Reminder, error) {
	var due, future []*entities.Reminder
	for _, rem := range r.doc.Reminders {
		if rem.Due(now) {
			due = append(due, rem)
		} else {
			future = append(future, rem)
		}
	}
	if len(due) > 0 {
		r.doc.Reminders = future
		sort.Slice(due, func(i, j int) bool { return due[i].DueAt.Before(due[j].DueAt) })
	}
	return due, nil
}
