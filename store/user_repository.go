package store

import (
	"context"
	"sort"
	"strconv"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/events"
)

func snowflakeKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

type userRepository struct {
	doc       *Document
	publisher *events.TransactionalPublisher
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	return r.doc.Users[snowflakeKey(discordID)], nil
}

func (r *userRepository) GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.User, error) {
	key := snowflakeKey(discordID)
	if user, ok := r.doc.Users[key]; ok {
		// Keep the stored username fresh; display names drift.
		if username != "" && user.Username != username {
			user.Username = username
		}
		return user, nil
	}

	user := &entities.User{
		DiscordID: discordID,
		Username:  username,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}
	r.doc.Users[key] = user

	r.publisher.Publish(events.UserCreatedEvent{
		UserID:   discordID,
		Username: username,
	})
	return user, nil
}

func (r *userRepository) Save(ctx context.Context, user *entities.User) error {
	r.doc.Users[snowflakeKey(user.DiscordID)] = user
	return nil
}

func (r *userRepository) ListTopByBalance(ctx context.Context, limit int) ([]*entities.User, error) {
	return r.listTop(limit, func(a, b *entities.User) bool {
		if a.Balance != b.Balance {
			return a.Balance > b.Balance
		}
		return a.DiscordID < b.DiscordID
	}), nil
}

func (r *userRepository) ListTopByWins(ctx context.Context, limit int) ([]*entities.User, error) {
	return r.listTop(limit, func(a, b *entities.User) bool {
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.DiscordID < b.DiscordID
	}), nil
}

func (r *userRepository) listTop(limit int, less func(a, b *entities.User) bool) []*entities.User {
	users := make([]*entities.User, 0, len(r.doc.Users))
	for _, u := range r.doc.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return less(users[i], users[j]) })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users
}
