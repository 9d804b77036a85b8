package store

import (
	"context"
	"time"

	"barkeep/domain/entities"
)

type noteRepository struct {
	doc *Document
}

func (r *noteRepository) Add(ctx context.Context, userID int64, text string) error {
	key := snowflakeKey(userID)
	r.doc.Notes[key] = append(r.doc.Notes[key], entities.Note{
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *noteRepository) List(ctx context.Context, userID int64) ([]entities.Note, error) {
	return r.doc.Notes[snowflakeKey(userID)], nil
}

func (r *noteRepository) Delete(ctx context.Context, userID int64, index int) error {
	key := snowflakeKey(userID)
	notes := r.doc.Notes[key]
	if index < 0 || index >= len(notes) {
		return entities.ErrNotFound
	}
	r.doc.Notes[key] = append(notes[:index], notes[index+1:]...)
	return nil
}
