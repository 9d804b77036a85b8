package entities

import (
	"time"
)

// User represents a Discord user's economy account. Accounts are created on
// first economic interaction and never deleted.
type User struct {
	DiscordID int64  `json:"discord_id"`
	Username  string `json:"username"`
	Balance   int64  `json:"balance"`

	// Cooldown timestamps; zero value means the action has never been taken.
	LastDaily time.Time `json:"last_daily,omitempty"`
	LastWork  time.Time `json:"last_work,omitempty"`

	// Daily claim streak.
	StreakCount    int    `json:"streak_count,omitempty"`
	StreakLastDate string `json:"streak_last_date,omitempty"` // YYYY-MM-DD

	// Game record.
	Wins   int64 `json:"wins,omitempty"`
	Losses int64 `json:"losses,omitempty"`
	Pushes int64 `json:"pushes,omitempty"`

	Achievements []string         `json:"achievements,omitempty"`
	Inventory    map[string]int64 `json:"inventory,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// GameOutcome classifies the result of a finished game for record keeping.
type GameOutcome string

const (
	OutcomeWin  GameOutcome = "win"
	OutcomeLoss GameOutcome = "loss"
	OutcomePush GameOutcome = "push"
)

// CanAfford checks if the user has sufficient balance for an amount.
func (u *User) CanAfford(amount int64) bool {
	return u.Balance >= amount
}

// ValidateWager checks that a wager is positive and affordable.
func (u *User) ValidateWager(amount int64) error {
	if amount <= 0 {
		return NewValidationError("wager must be positive")
	}
	if !u.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// RecordOutcome bumps the matching win/loss/push counter.
func (u *User) RecordOutcome(outcome GameOutcome) {
	switch outcome {
	case OutcomeWin:
		u.Wins++
	case OutcomeLoss:
		u.Losses++
	case OutcomePush:
		u.Pushes++
	}
}

// HasAchievement reports whether the user already earned the named achievement.
func (u *User) HasAchievement(name string) bool {
	for _, a := range u.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// GrantAchievement adds the achievement if not already present. Returns true
// when newly granted.
func (u *User) GrantAchievement(name string) bool {
	if u.HasAchievement(name) {
		return false
	}
	u.Achievements = append(u.Achievements, name)
	return true
}

// ItemCount returns how many of the named item the user owns.
func (u *User) ItemCount(item string) int64 {
	if u.Inventory == nil {
		return 0
	}
	return u.Inventory[item]
}

// AddItem adjusts the owned quantity of an item, dropping the key at zero.
func (u *User) AddItem(item string, delta int64) {
	if u.Inventory == nil {
		u.Inventory = make(map[string]int64)
	}
	u.Inventory[item] += delta
	if u.Inventory[item] <= 0 {
		delete(u.Inventory, item)
	}
}
