package store

import (
	"context"
	"sort"
	"strconv"
	"time"

	"barkeep/domain/entities"
)

type moderationRepository struct {
	doc *Document
}

func (r *moderationRepository) SetAutoDelete(ctx context.Context, channelID int64, interval time.Duration) error {
	r.doc.AutoDelete[snowflakeKey(channelID)] = int64(interval / time.Second)
	return nil
}

func (r *moderationRepository) RemoveAutoDelete(ctx context.Context, channelID int64) (bool, error) {
	key := snowflakeKey(channelID)
	if _, ok := r.doc.AutoDelete[key]; !ok {
		return false, nil
	}
	delete(r.doc.AutoDelete, key)
	return true, nil
}

func (r *moderationRepository) ListAutoDelete(ctx context.Context) ([]entities.AutoDeletePolicy, error) {
	policies := make([]entities.AutoDeletePolicy, 0, len(r.doc.AutoDelete))
	for key, secs := range r.doc.AutoDelete {
		channelID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		policies = append(policies, entities.AutoDeletePolicy{
			ChannelID: channelID,
			Interval:  time.Duration(secs) * time.Second,
		})
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].ChannelID < policies[j].ChannelID })
	return policies, nil
}

func (r *moderationRepository) AddToAllowlist(ctx context.Context, userID int64) (bool, error) {
	for _, id := range r.doc.Allowlist {
		if id == userID {
			return false, nil
		}
	}
	r.doc.Allowlist = append(r.doc.Allowlist, userID)
	return true, nil
}

func (r *moderationRepository) RemoveFromAllowlist(ctx context.Context, userID int64) (bool, error) {
	for i, id := range r.doc.Allowlist {
		if id == userID {
			r.doc.Allowlist = append(r.doc.Allowlist[:i], r.doc.Allowlist[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *moderationRepository) IsAllowlisted(ctx context.Context, userID int64) (bool, error) {
	for _, id := range r.doc.Allowlist {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *moderationRepository) Allowlist(ctx context.Context) ([]int64, error) {
	out := make([]int64, len(r.doc.Allowlist))
	copy(out, r.doc.Allowlist)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *moderationRepository) SetPin(ctx context.Context, channelID int64, text string) error {
	r.doc.Pins[snowflakeKey(channelID)] = text
	return nil
}

func (r *moderationRepository) GetPin(ctx context.Context, channelID int64) (string, error) {
	return r.doc.Pins[snowflakeKey(channelID)], nil
}

func (r *moderationRepository) ClearPin(ctx context.Context, channelID int64) error {
	delete(r.doc.Pins, snowflakeKey(channelID))
	return nil
}
