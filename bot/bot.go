package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/features/balance"
	"barkeep/bot/features/blackjack"
	"barkeep/bot/features/diceduel"
	"barkeep/bot/features/economy"
	"barkeep/bot/features/highlow"
	"barkeep/bot/features/moderation"
	"barkeep/bot/features/notes"
	"barkeep/bot/features/polls"
	"barkeep/bot/features/reminders"
	"barkeep/bot/features/shop"
	"barkeep/bot/features/slots"
	"barkeep/bot/features/stats"
	"barkeep/bot/features/trivia"
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
	"barkeep/infrastructure"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Optional guild for faster command registration
}

// Bot manages the Discord connection and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory

	// Event publishing
	eventPublisher interfaces.EventPublisher

	// Feature modules
	balance    *balance.Feature
	economy    *economy.Feature
	blackjack  *blackjack.Feature
	highlow    *highlow.Feature
	slots      *slots.Feature
	diceduel   *diceduel.Feature
	trivia     *trivia.Feature
	shop       *shop.Feature
	polls      *polls.Feature
	notes      *notes.Feature
	reminders  *reminders.Feature
	moderation *moderation.Feature
	stats      *stats.Feature

	// Worker cleanup functions
	stopReminderWorker   func()
	stopAutoDeleteWorker func()
}

// New creates a new bot instance with all features
func New(config Config, uowFactory interfaces.UnitOfWorkFactory, eventPublisher interfaces.EventPublisher, triviaClient *infrastructure.TriviaClient, priceClient *infrastructure.PriceClient) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:         config,
		session:        dg,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}

	rng := games.NewRand()

	// Create feature modules
	bot.balance = balance.New(uowFactory)
	bot.economy = economy.New(uowFactory, rng)
	bot.blackjack = blackjack.NewFeature(dg, uowFactory, rng)
	bot.highlow = highlow.NewFeature(dg, uowFactory, rng)
	bot.slots = slots.New(uowFactory, rng)
	bot.diceduel = diceduel.NewFeature(dg, uowFactory, rng)
	bot.trivia = trivia.NewFeature(dg, uowFactory, triviaClient, rng)
	bot.shop = shop.NewFeature(uowFactory, priceClient)
	bot.polls = polls.NewFeature(dg, uowFactory)
	bot.notes = notes.New(uowFactory)
	bot.reminders = reminders.New(uowFactory)
	bot.moderation = moderation.NewFeature(dg, uowFactory)
	bot.stats = stats.NewFeature(uowFactory)

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start background workers
	ctx := context.Background()
	bot.stopReminderWorker = bot.StartReminderWorker(ctx)
	bot.stopAutoDeleteWorker = bot.StartAutoDeleteWorker(ctx)
	log.Info("Background workers started")

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	if b.stopReminderWorker != nil {
		b.stopReminderWorker()
	}
	if b.stopAutoDeleteWorker != nil {
		b.stopAutoDeleteWorker()
	}
	log.Info("Background workers stopped")

	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balance.HandleCommand(s, i)
	case "daily":
		b.economy.HandleDaily(s, i)
	case "work":
		b.economy.HandleWork(s, i)
	case "pay":
		b.economy.HandlePay(s, i)
	case "blackjack":
		b.blackjack.HandleCommand(s, i)
	case "highlow":
		b.highlow.HandleCommand(s, i)
	case "slots":
		b.slots.HandleCommand(s, i)
	case "diceduel":
		b.diceduel.HandleCommand(s, i)
	case "trivia":
		b.trivia.HandleCommand(s, i)
	case "shop":
		b.shop.HandleCommand(s, i)
	case "poll":
		b.polls.HandleCommand(s, i)
	case "note":
		b.notes.HandleCommand(s, i)
	case "remind":
		b.reminders.HandleCommand(s, i)
	case "purge":
		b.moderation.HandlePurge(s, i)
	case "autodelete":
		b.moderation.HandleAutoDelete(s, i)
	case "modaccess":
		b.moderation.HandleModAccess(s, i)
	case "pin":
		b.moderation.HandlePin(s, i)
	case "stats":
		b.stats.HandleStats(s, i)
	case "leaderboard":
		b.stats.HandleLeaderboard(s, i)
	case "achievements":
		b.stats.HandleAchievements(s, i)
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "blackjack_"):
		b.blackjack.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "highlow_"):
		b.highlow.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "diceduel_"):
		b.diceduel.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "trivia_"):
		b.trivia.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "poll_"):
		b.polls.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "shop_page_"):
		b.shop.HandleInteraction(s, i)
	}
}
