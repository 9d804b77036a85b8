package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Optional guild for faster command registration

	// Persistence
	DataPath string

	// Economy configuration
	DailyBaseAmount int64
	DailyCooldown   time.Duration
	StreakStep      int64
	StreakMaxBonus  int64
	WorkCooldown    time.Duration
	WorkMinPay      int64
	WorkMaxPay      int64
	TriviaReward    int64

	// Outbound HTTP
	TriviaAPIBaseURL string // OpenTDB-compatible endpoint
	PriceAPIBaseURL  string // Optional price tracker; empty disables lookups

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		DataPath: getEnvWithDefault("DATA_PATH", "data/barkeep.json"),

		// Economy defaults
		DailyBaseAmount: 250,
		DailyCooldown:   24 * time.Hour,
		StreakStep:      50,
		StreakMaxBonus:  500,
		WorkCooldown:    time.Hour,
		WorkMinPay:      80,
		WorkMaxPay:      160,
		TriviaReward:    120,

		TriviaAPIBaseURL: getEnvWithDefault("TRIVIA_API_URL", "https://opentdb.com"),
		PriceAPIBaseURL:  os.Getenv("PRICE_API_URL"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if amount := os.Getenv("DAILY_BASE_AMOUNT"); amount != "" {
		if parsed, err := strconv.ParseInt(amount, 10, 64); err == nil {
			config.DailyBaseAmount = parsed
		}
	}
	if hours := os.Getenv("DAILY_COOLDOWN_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil && parsed > 0 {
			config.DailyCooldown = time.Duration(parsed) * time.Hour
		}
	}
	if minutes := os.Getenv("WORK_COOLDOWN_MINUTES"); minutes != "" {
		if parsed, err := strconv.Atoi(minutes); err == nil && parsed > 0 {
			config.WorkCooldown = time.Duration(parsed) * time.Minute
		}
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		DataPath:        "barkeep-test.json",
		DailyBaseAmount: 250,
		DailyCooldown:   24 * time.Hour,
		StreakStep:      50,
		StreakMaxBonus:  500,
		WorkCooldown:    time.Hour,
		WorkMinPay:      80,
		WorkMaxPay:      160,
		TriviaReward:    120,
	}
}
