package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWager(t *testing.T) {
	user := &User{Balance: 100}

	assert.NoError(t, user.ValidateWager(100))
	assert.NoError(t, user.ValidateWager(1))

	var vErr *ValidationError
	assert.ErrorAs(t, user.ValidateWager(0), &vErr)
	assert.ErrorAs(t, user.ValidateWager(-5), &vErr)
	assert.ErrorIs(t, user.ValidateWager(101), ErrInsufficientFunds)
}

func TestRecordOutcome(t *testing.T) {
	user := &User{}
	user.RecordOutcome(OutcomeWin)
	user.RecordOutcome(OutcomeWin)
	user.RecordOutcome(OutcomeLoss)
	user.RecordOutcome(OutcomePush)

	assert.Equal(t, int64(2), user.Wins)
	assert.Equal(t, int64(1), user.Losses)
	assert.Equal(t, int64(1), user.Pushes)
}

func TestGrantAchievementOnce(t *testing.T) {
	user := &User{}

	assert.True(t, user.GrantAchievement("First Blood"))
	assert.False(t, user.GrantAchievement("First Blood"))
	assert.True(t, user.HasAchievement("First Blood"))
	assert.Len(t, user.Achievements, 1)
}

func TestInventoryDropsEmptyEntries(t *testing.T) {
	user := &User{}
	assert.Equal(t, int64(0), user.ItemCount("Lucky Coin"))

	user.AddItem("Lucky Coin", 3)
	assert.Equal(t, int64(3), user.ItemCount("Lucky Coin"))

	user.AddItem("Lucky Coin", -3)
	assert.Equal(t, int64(0), user.ItemCount("Lucky Coin"))
	assert.NotContains(t, user.Inventory, "Lucky Coin")
}
