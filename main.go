package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"barkeep/bot"
	"barkeep/config"
	"barkeep/domain/events"
	"barkeep/infrastructure"
	"barkeep/store"
)

func main() {
	// Local development config; absent in production.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error loading .env file: %v", err)
	}

	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetLevel(log.DebugLevel)
	}

	log.Info("Starting barkeep...")

	st, err := store.Open(cfg.DataPath)
	if err != nil {
		if errors.Is(err, store.ErrCorruptDocument) {
			log.Fatalf("Data file is corrupt, refusing to start: %v", err)
		}
		log.Fatalf("Failed to open data file: %v", err)
	}
	log.Infof("Store opened at %s", st.Path())

	eventBus := events.NewBus()
	bot.RegisterSubscriptions(eventBus)

	uowFactory := store.NewUnitOfWorkFactory(st, eventBus)

	triviaClient := infrastructure.NewTriviaClient(cfg.TriviaAPIBaseURL)
	priceClient := infrastructure.NewPriceClient(cfg.PriceAPIBaseURL)

	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}
	discordBot, err := bot.New(botConfig, uowFactory, eventBus, triviaClient, priceClient)
	if err != nil {
		log.Fatalf("Failed to initialize Discord bot: %v", err)
	}
	log.Infof("Bot is running in %s mode", cfg.Environment)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Received shutdown signal, shutting down gracefully...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord connection: %v", err)
	}
	log.Info("Shutdown complete")
}
