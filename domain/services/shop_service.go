package services

import (
	"context"
	"fmt"

	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/interfaces"
)

// ShopService handles catalog purchases and sales against the ledger.
type ShopService struct {
	shop      interfaces.ShopRepository
	users     interfaces.UserRepository
	publisher interfaces.EventPublisher
}

// NewShopService creates a shop service.
func NewShopService(shop interfaces.ShopRepository, users interfaces.UserRepository, publisher interfaces.EventPublisher) *ShopService {
	return &ShopService{shop: shop, users: users, publisher: publisher}
}

// TradeResult reports a completed buy or sell.
type TradeResult struct {
	Item       entities.ShopItem
	Quantity   int64
	Total      int64
	NewBalance int64
	Owned      int64
}

// validQuantity bounds a trade quantity. The upper bound is what makes the
// price*quantity products below safe from int64 overflow.
func validQuantity(quantity int64) error {
	if quantity <= 0 || quantity > entities.MaxTradeQuantity {
		return entities.NewValidationError("quantity must be between 1 and %d", entities.MaxTradeQuantity)
	}
	return nil
}

// Buy purchases quantity of the named item, debiting the full price up front.
func (s *ShopService) Buy(ctx context.Context, discordID int64, username, itemName string, quantity int64) (*TradeResult, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}
	item, err := s.shop.GetItem(ctx, itemName)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	total := item.BuyPrice * quantity
	if !user.CanAfford(total) {
		return nil, entities.ErrInsufficientFunds
	}

	old := user.Balance
	user.Balance -= total
	user.AddItem(item.Name, quantity)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.publisher.Publish(events.BalanceChangeEvent{
		UserID:       user.DiscordID,
		OldBalance:   old,
		NewBalance:   user.Balance,
		ChangeAmount: -total,
		Reason:       "shop_buy",
	})
	return &TradeResult{
		Item:       *item,
		Quantity:   quantity,
		Total:      total,
		NewBalance: user.Balance,
		Owned:      user.ItemCount(item.Name),
	}, nil
}

// Sell sells quantity of the named item back at the catalog sell price.
func (s *ShopService) Sell(ctx context.Context, discordID int64, username, itemName string, quantity int64) (*TradeResult, error) {
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}
	item, err := s.shop.GetItem(ctx, itemName)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ItemCount(item.Name) < quantity {
		return nil, entities.NewValidationError("you only own %d of %s", user.ItemCount(item.Name), item.Name)
	}

	total := item.SellPrice * quantity
	old := user.Balance
	user.Balance += total
	user.AddItem(item.Name, -quantity)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.publisher.Publish(events.BalanceChangeEvent{
		UserID:       user.DiscordID,
		OldBalance:   old,
		NewBalance:   user.Balance,
		ChangeAmount: total,
		Reason:       "shop_sell",
	})
	return &TradeResult{
		Item:       *item,
		Quantity:   quantity,
		Total:      total,
		NewBalance: user.Balance,
		Owned:      user.ItemCount(item.Name),
	}, nil
}

// Inventory returns the user's owned items as catalog entries with counts.
// Items that left the catalog are still listed with a zero-value entry.
func (s *ShopService) Inventory(ctx context.Context, discordID int64, username string) (map[string]int64, error) {
	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	out := make(map[string]int64, len(user.Inventory))
	for name, count := range user.Inventory {
		out[name] = count
	}
	return out, nil
}

// Catalog returns the full item catalog.
func (s *ShopService) Catalog(ctx context.Context) ([]entities.ShopItem, error) {
	return s.shop.Catalog(ctx)
}
