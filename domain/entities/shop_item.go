package entities

// MaxTradeQuantity caps the quantity of a single buy or sell. It also keeps
// price*quantity far away from int64 overflow for any catalog price.
const MaxTradeQuantity = 100

// ShopItem is a catalog entry. The catalog is static; per-user owned
// quantities live on the user account.
type ShopItem struct {
	Name        string `json:"name"`
	BuyPrice    int64  `json:"buy_price"`
	SellPrice   int64  `json:"sell_price"`
	Description string `json:"description"`
}

// DefaultCatalog returns the built-in shop inventory.
func DefaultCatalog() []ShopItem {
	return []ShopItem{
		{Name: "Lucky Coin", BuyPrice: 150, SellPrice: 75, Description: "A shiny coin said to bring fortune at the tables."},
		{Name: "Deck Sleeve", BuyPrice: 300, SellPrice: 150, Description: "Keeps your cards crisp between blackjack hands."},
		{Name: "Loaded Dice", BuyPrice: 500, SellPrice: 200, Description: "Purely decorative. The duel dice stay fair."},
		{Name: "Bar Tab Voucher", BuyPrice: 800, SellPrice: 400, Description: "Good for one round on the house."},
		{Name: "VIP Card", BuyPrice: 2500, SellPrice: 1000, Description: "Flash it at the door. People notice."},
		{Name: "Golden Horseshoe", BuyPrice: 5000, SellPrice: 2200, Description: "Heavy, gaudy, undeniably lucky."},
		{Name: "Trophy Shelf", BuyPrice: 1200, SellPrice: 500, Description: "Somewhere to put those win milestones."},
		{Name: "Jukebox Token", BuyPrice: 100, SellPrice: 40, Description: "One song, your pick."},
	}
}
