package store

import (
	"context"

	"barkeep/domain/entities"
)

type pollRepository struct {
	doc *Document
}

func (r *pollRepository) Create(ctx context.Context, poll *entities.Poll) (int64, error) {
	r.doc.PollSeq++
	poll.ID = r.doc.PollSeq
	r.doc.Polls[snowflakeKey(poll.ID)] = poll
	return poll.ID, nil
}

func (r *pollRepository) GetByID(ctx context.Context, id int64) (*entities.Poll, error) {
	poll, ok := r.doc.Polls[snowflakeKey(id)]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return poll, nil
}

func (r *pollRepository) Save(ctx context.Context, poll *entities.Poll) error {
	r.doc.Polls[snowflakeKey(poll.ID)] = poll
	return nil
}
