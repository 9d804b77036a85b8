package services

import (
	"context"
	"testing"
	"time"

	"barkeep/config"
	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/games"
	"barkeep/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(user *entities.User) (*LedgerService, *testhelpers.MockUserRepository, *testhelpers.RecordingPublisher) {
	mockUserRepo := new(testhelpers.MockUserRepository)
	publisher := &testhelpers.RecordingPublisher{}
	service := NewLedgerService(mockUserRepo, publisher)

	if user != nil {
		mockUserRepo.On("GetOrCreate", context.Background(), user.DiscordID, user.Username).Return(user, nil)
		mockUserRepo.On("Save", context.Background(), user).Return(nil)
	}
	return service, mockUserRepo, publisher
}

func TestLedgerService_ClaimDaily_FirstClaim(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 100}
	service, mockUserRepo, publisher := newLedgerFixture(user)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	result, err := service.ClaimDaily(ctx, 123456, "testuser", now)

	require.NoError(t, err)
	assert.Equal(t, int64(250), result.Base)
	assert.Equal(t, int64(0), result.Bonus)
	assert.Equal(t, int64(250), result.Total)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, int64(350), result.NewBalance)
	assert.Equal(t, now, user.LastDaily)

	require.Len(t, publisher.Events, 1)
	change := publisher.Events[0].(events.BalanceChangeEvent)
	assert.Equal(t, int64(250), change.ChangeAmount)
	assert.Equal(t, "daily", change.Reason)
	mockUserRepo.AssertExpectations(t)
}

func TestLedgerService_ClaimDaily_CooldownActive(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 350, LastDaily: now.Add(-6 * time.Hour)}
	service, _, publisher := newLedgerFixture(user)

	_, err := service.ClaimDaily(ctx, 123456, "testuser", now)

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrCooldownActive)

	var cooldown *entities.CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 18*time.Hour, cooldown.Remaining)
	assert.Equal(t, int64(350), user.Balance, "balance must not change on a rejected claim")
	assert.Empty(t, publisher.Events)
}

func TestLedgerService_ClaimDaily_StreakGrowsAndCaps(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser"}
	service, _, _ := newLedgerFixture(user)

	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var last *DailyResult
	for i := 0; i < 15; i++ {
		result, err := service.ClaimDaily(ctx, 123456, "testuser", day.Add(time.Duration(i)*25*time.Hour))
		require.NoError(t, err, "claim %d", i+1)
		last = result
	}

	// Claims 25h apart land on consecutive calendar days.
	assert.Equal(t, 15, last.Streak)
	// Streak bonus is capped regardless of streak length.
	assert.Equal(t, int64(500), last.Bonus)
	assert.Equal(t, int64(750), last.Total)
}

func TestLedgerService_ClaimDaily_GapResetsStreak(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	user := &entities.User{
		DiscordID:      123456,
		Username:       "testuser",
		StreakCount:    7,
		StreakLastDate: "2025-03-01",
	}
	service, _, _ := newLedgerFixture(user)

	// Three days later; the chain is broken.
	result, err := service.ClaimDaily(ctx, 123456, "testuser", time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, int64(0), result.Bonus)
}

func TestLedgerService_Work_PayWithinRange(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser"}
	service, _, _ := newLedgerFixture(user)

	result, err := service.Work(ctx, 123456, "testuser", time.Now(), games.NewSeededRand(1))

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Pay, int64(80))
	assert.LessOrEqual(t, result.Pay, int64(160))
	assert.NotEmpty(t, result.Job)
	assert.Equal(t, result.Pay, result.NewBalance)
}

func TestLedgerService_Work_CooldownActive(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	now := time.Now()
	user := &entities.User{DiscordID: 123456, Username: "testuser", LastWork: now.Add(-10 * time.Minute)}
	service, _, _ := newLedgerFixture(user)

	_, err := service.Work(ctx, 123456, "testuser", now, games.NewSeededRand(1))

	assert.ErrorIs(t, err, entities.ErrCooldownActive)
}

func TestLedgerService_Transfer_MovesExactAmount(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	payer := &entities.User{DiscordID: 111, Username: "payer", Balance: 500}
	payee := &entities.User{DiscordID: 222, Username: "payee", Balance: 100}

	mockUserRepo := new(testhelpers.MockUserRepository)
	publisher := &testhelpers.RecordingPublisher{}
	service := NewLedgerService(mockUserRepo, publisher)

	mockUserRepo.On("GetOrCreate", ctx, int64(111), "payer").Return(payer, nil)
	mockUserRepo.On("GetOrCreate", ctx, int64(222), "payee").Return(payee, nil)
	mockUserRepo.On("Save", ctx, payer).Return(nil)
	mockUserRepo.On("Save", ctx, payee).Return(nil)

	result, err := service.Transfer(ctx, 111, "payer", 222, "payee", 200)

	require.NoError(t, err)
	assert.Equal(t, int64(300), result.PayerBalance)
	assert.Equal(t, int64(300), result.PayeeBalance)
	// Total money in the system is unchanged.
	assert.Equal(t, int64(600), payer.Balance+payee.Balance)
	assert.Len(t, publisher.Events, 2)
	mockUserRepo.AssertExpectations(t)
}

func TestLedgerService_Transfer_InsufficientFunds(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	payer := &entities.User{DiscordID: 111, Username: "payer", Balance: 50}

	mockUserRepo := new(testhelpers.MockUserRepository)
	service := NewLedgerService(mockUserRepo, &testhelpers.RecordingPublisher{})
	mockUserRepo.On("GetOrCreate", ctx, int64(111), "payer").Return(payer, nil)

	_, err := service.Transfer(ctx, 111, "payer", 222, "payee", 200)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	assert.Equal(t, int64(50), payer.Balance)
}

func TestLedgerService_Transfer_SelfRejected(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	service := NewLedgerService(new(testhelpers.MockUserRepository), &testhelpers.RecordingPublisher{})

	_, err := service.Transfer(context.Background(), 111, "payer", 111, "payer", 200)

	assert.True(t, entities.IsValidation(err))
}

func TestLedgerService_Debit_NonPositiveRejected(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	service := NewLedgerService(new(testhelpers.MockUserRepository), &testhelpers.RecordingPublisher{})

	_, err := service.Debit(context.Background(), 111, "u", 0, "fee")
	assert.True(t, entities.IsValidation(err))

	_, err = service.Debit(context.Background(), 111, "u", -5, "fee")
	assert.True(t, entities.IsValidation(err))
}
