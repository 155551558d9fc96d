package config

import (
	"os"

	"deluxeblackjack-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for Deluxe Blackjack
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Log             struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	// DealerPlayDelay is the number of seconds the session waits before
	// running the automatic dealer steps, so the client can animate them
	DealerPlayDelay int `yaml:"dealerPlayDelay" envconfig:"dealer_play_delay"`
	Table           struct {
		DeckCount             int     `yaml:"deckCount" envconfig:"deck_count"`
		BlackjackPayout       float64 `yaml:"blackjackPayout" envconfig:"blackjack_payout"`
		DealerStandsOnSoft17  *bool   `yaml:"dealerStandsOnSoft17" envconfig:"dealer_stands_on_soft_17"`
		MinimumBet            int     `yaml:"minimumBet" envconfig:"minimum_bet"`
		MaximumBet            int     `yaml:"maximumBet" envconfig:"maximum_bet"`
		StartingBalance       int     `yaml:"startingBalance" envconfig:"starting_balance"`
		AllowDoubleAfterSplit *bool   `yaml:"allowDoubleAfterSplit" envconfig:"allow_double_after_split"`
	}
}

var config Config

// DefaultConfig returns a config suitable as a starting point for a new
// deployment
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "host=localhost port=5432 user=postgres sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = "./jwt/public.pem"
	c.JWT.PrivateKey = "./jwt/private.key"
	c.DealerPlayDelay = 1
	c.Table.DeckCount = 6
	c.Table.BlackjackPayout = 1.5
	c.Table.MinimumBet = 5
	c.Table.MaximumBet = 1000
	c.Table.StartingBalance = 1000
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the environment alone can
// configure the server.
func Load() error {
	config = Config{}

	configFile := util.Getenv("DBJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("dbj", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
