package services

import (
	"context"
	"testing"

	"barkeep/domain/entities"
	"barkeep/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShopFixture(user *entities.User) (*ShopService, *testhelpers.MockShopRepository, *testhelpers.MockUserRepository) {
	mockShopRepo := new(testhelpers.MockShopRepository)
	mockUserRepo := new(testhelpers.MockUserRepository)
	service := NewShopService(mockShopRepo, mockUserRepo, &testhelpers.RecordingPublisher{})

	mockUserRepo.On("GetOrCreate", context.Background(), user.DiscordID, user.Username).Return(user, nil)
	mockUserRepo.On("Save", context.Background(), user).Return(nil)
	return service, mockShopRepo, mockUserRepo
}

func luckyCoin() *entities.ShopItem {
	return &entities.ShopItem{Name: "Lucky Coin", BuyPrice: 150, SellPrice: 75, Description: "Flip it before a big hand."}
}

func TestShopService_Buy(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 1000}
	service, mockShopRepo, mockUserRepo := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Lucky Coin").Return(luckyCoin(), nil)

	result, err := service.Buy(ctx, 123456, "testuser", "Lucky Coin", 2)

	require.NoError(t, err)
	assert.Equal(t, int64(300), result.Total)
	assert.Equal(t, int64(700), result.NewBalance)
	assert.Equal(t, int64(2), result.Owned)
	assert.Equal(t, int64(2), user.ItemCount("Lucky Coin"))
	mockUserRepo.AssertExpectations(t)
}

func TestShopService_Buy_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 100}
	service, mockShopRepo, _ := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Lucky Coin").Return(luckyCoin(), nil)

	_, err := service.Buy(ctx, 123456, "testuser", "Lucky Coin", 1)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	assert.Equal(t, int64(100), user.Balance)
	assert.Equal(t, int64(0), user.ItemCount("Lucky Coin"))
}

func TestShopService_Buy_QuantityBounds(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 100}
	service, mockShopRepo, _ := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Golden Horseshoe").Return(
		&entities.ShopItem{Name: "Golden Horseshoe", BuyPrice: 5000, SellPrice: 2200}, nil)

	var vErr *entities.ValidationError
	for _, quantity := range []int64{0, -1, entities.MaxTradeQuantity + 1, 2000000000000000} {
		_, err := service.Buy(ctx, 123456, "testuser", "Golden Horseshoe", quantity)
		assert.ErrorAs(t, err, &vErr, "quantity %d", quantity)
	}

	// An absurd quantity must never wrap the total negative and credit the
	// buyer; nothing changes.
	assert.Equal(t, int64(100), user.Balance)
	assert.Equal(t, int64(0), user.ItemCount("Golden Horseshoe"))
}

func TestShopService_Sell_QuantityBounds(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 100,
		Inventory: map[string]int64{"Lucky Coin": 5}}
	service, mockShopRepo, _ := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Lucky Coin").Return(luckyCoin(), nil)

	var vErr *entities.ValidationError
	for _, quantity := range []int64{0, -1, entities.MaxTradeQuantity + 1, 2000000000000000} {
		_, err := service.Sell(ctx, 123456, "testuser", "Lucky Coin", quantity)
		assert.ErrorAs(t, err, &vErr, "quantity %d", quantity)
	}
	assert.Equal(t, int64(100), user.Balance)
	assert.Equal(t, int64(5), user.ItemCount("Lucky Coin"))
}

func TestShopService_Buy_UnknownItem(t *testing.T) {
	ctx := context.Background()
	mockShopRepo := new(testhelpers.MockShopRepository)
	service := NewShopService(mockShopRepo, new(testhelpers.MockUserRepository), &testhelpers.RecordingPublisher{})

	mockShopRepo.On("GetItem", ctx, "Mystery Box").Return(nil, entities.ErrNotFound)

	_, err := service.Buy(ctx, 123456, "testuser", "Mystery Box", 1)

	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestShopService_Sell(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{
		DiscordID: 123456,
		Username:  "testuser",
		Balance:   100,
		Inventory: map[string]int64{"Lucky Coin": 3},
	}
	service, mockShopRepo, _ := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Lucky Coin").Return(luckyCoin(), nil)

	result, err := service.Sell(ctx, 123456, "testuser", "Lucky Coin", 2)

	require.NoError(t, err)
	assert.Equal(t, int64(150), result.Total)
	assert.Equal(t, int64(250), result.NewBalance)
	assert.Equal(t, int64(1), result.Owned)
}

func TestShopService_Sell_NotEnoughOwned(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{
		DiscordID: 123456,
		Username:  "testuser",
		Inventory: map[string]int64{"Lucky Coin": 1},
	}
	service, mockShopRepo, _ := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Lucky Coin").Return(luckyCoin(), nil)

	_, err := service.Sell(ctx, 123456, "testuser", "Lucky Coin", 2)

	assert.True(t, entities.IsValidation(err))
	assert.Equal(t, int64(1), user.ItemCount("Lucky Coin"))
}

func TestShopService_BuySell_RoundTripLosesSpread(t *testing.T) {
	ctx := context.Background()
	user := &entities.User{DiscordID: 123456, Username: "testuser", Balance: 1000}
	service, mockShopRepo, _ := newShopFixture(user)

	mockShopRepo.On("GetItem", ctx, "Lucky Coin").Return(luckyCoin(), nil)

	_, err := service.Buy(ctx, 123456, "testuser", "Lucky Coin", 1)
	require.NoError(t, err)
	result, err := service.Sell(ctx, 123456, "testuser", "Lucky Coin", 1)
	require.NoError(t, err)

	assert.Equal(t, int64(925), result.NewBalance)
	assert.Equal(t, int64(0), user.ItemCount("Lucky Coin"))
}

func TestShopService_QuantityValidation(t *testing.T) {
	service := NewShopService(new(testhelpers.MockShopRepository), new(testhelpers.MockUserRepository), &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	_, err := service.Buy(ctx, 1, "u", "Lucky Coin", 0)
	assert.True(t, entities.IsValidation(err))

	_, err = service.Sell(ctx, 1, "u", "Lucky Coin", -1)
	assert.True(t, entities.IsValidation(err))
}
