package shop

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/entities"
	"barkeep/domain/services"
)

// HandleCommand handles the /shop command and its subcommands.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "list":
		f.handleList(s, i, 0)
	case "buy":
		f.handleTrade(s, i, options[0].Options, true)
	case "sell":
		f.handleTrade(s, i, options[0].Options, false)
	case "inventory":
		f.handleInventory(s, i)
	case "price":
		f.handlePrice(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleInteraction handles the catalog paging buttons.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	pageStr := strings.TrimPrefix(customID, "shop_page_")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return
	}
	f.renderList(s, i, page, true)
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, page int) {
	f.renderList(s, i, page, false)
}

func (f *Feature) renderList(s *discordgo.Session, i *discordgo.InteractionCreate, page int, update bool) {
	ctx := context.Background()

	catalog, err := f.loadCatalog(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	pages := (len(catalog) + common.ShopPageSize - 1) / common.ShopPageSize
	if pages == 0 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}

	start := page * common.ShopPageSize
	end := start + common.ShopPageSize
	if end > len(catalog) {
		end = len(catalog)
	}

	var lines []string
	for _, item := range catalog[start:end] {
		lines = append(lines, fmt.Sprintf("**%s** — buy %s · sell %s\n*%s*",
			item.Name, common.FormatChips(item.BuyPrice), common.FormatChips(item.SellPrice), item.Description))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🛒 The Barkeep's Shelf",
		Description: strings.Join(lines, "\n\n"),
		Color:       common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", page+1, pages),
		},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "◀", Style: discordgo.SecondaryButton, CustomID: fmt.Sprintf("shop_page_%d", page-1), Disabled: page == 0},
				discordgo.Button{Label: "▶", Style: discordgo.SecondaryButton, CustomID: fmt.Sprintf("shop_page_%d", page+1), Disabled: page >= pages-1},
			},
		},
	}

	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if update {
		responseType = discordgo.InteractionResponseUpdateMessage
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Error responding to shop list: %v", err)
	}
}

func (f *Feature) loadCatalog(ctx context.Context) ([]entities.ShopItem, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	catalog, err := uow.ShopRepository().Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog, uow.Commit()
}

func (f *Feature) handleTrade(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption, buying bool) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var itemName string
	quantity := int64(1)
	for _, opt := range opts {
		switch opt.Name {
		case "item":
			itemName = opt.StringValue()
		case "quantity":
			quantity = opt.IntValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	shopService := services.NewShopService(uow.ShopRepository(), uow.UserRepository(), uow.EventBus())
	var result *services.TradeResult
	if buying {
		result, err = shopService.Buy(ctx, discordID, user.Username, itemName, quantity)
	} else {
		result, err = shopService.Sell(ctx, discordID, user.Username, itemName, quantity)
	}
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	verb := "bought"
	if !buying {
		verb = "sold"
	}
	message := fmt.Sprintf("🛒 You %s **%d× %s** for **%s chips**. Balance: **%s** · owned: **%d**",
		verb, result.Quantity, result.Item.Name, common.FormatChips(result.Total),
		common.FormatChips(result.NewBalance), result.Owned)
	respond(s, i, message)
}

func (f *Feature) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	shopService := services.NewShopService(uow.ShopRepository(), uow.UserRepository(), uow.EventBus())
	inventory, err := shopService.Inventory(ctx, discordID, user.Username)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if len(inventory) == 0 {
		respondEphemeral(s, i, "Your pockets are empty. Browse `/shop list`.")
		return
	}

	names := make([]string, 0, len(inventory))
	for name := range inventory {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("**%d×** %s", inventory[name], name))
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎒 %s's Inventory", user.Username),
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorInfo,
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to shop inventory: %v", err)
	}
}

func (f *Feature) handlePrice(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var itemName string
	for _, opt := range opts {
		if opt.Name == "item" {
			itemName = opt.StringValue()
		}
	}

	if f.prices.Enabled() {
		quote, err := f.prices.Lookup(ctx, itemName)
		if err == nil {
			note := ""
			if quote.Cached {
				note = fmt.Sprintf(" *(cached %s)*", common.FormatDiscordTimestamp(quote.FetchedAt, "R"))
			}
			respond(s, i, fmt.Sprintf("💹 **%s** is trading at **%.2f %s**%s", quote.Name, quote.Price, quote.Currency, note))
			return
		}
		log.Warnf("Price lookup failed for %q, falling back to catalog: %v", itemName, err)
	}

	// Catalog prices as fallback.
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	item, err := uow.ShopRepository().GetItem(ctx, itemName)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	respond(s, i, fmt.Sprintf("💹 **%s** — house price: buy **%s** · sell **%s** chips",
		item.Name, common.FormatChips(item.BuyPrice), common.FormatChips(item.SellPrice)))
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.Errorf("Error responding to shop command: %v", err)
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to shop command: %v", err)
	}
}
