package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"FinDocSignal/internal/calculator"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	AlphaVantage struct {
		APIKey            string `yaml:"api_key"`
		BaseURL           string `yaml:"base_url"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
	} `yaml:"alpha_vantage"`
	DataSource struct {
		Provider    string   `yaml:"provider"` // alphavantage | yahoo | mock
		Symbols     []string `yaml:"symbols"`
		HistoryDays int      `yaml:"history_days"`
	} `yaml:"data_source"`
	Analysis struct {
		MAWindow      int     `yaml:"ma_window"`
		SlopeWindow   int     `yaml:"slope_window"`
		DropThreshold float64 `yaml:"drop_threshold"`
		StrictInput   bool    `yaml:"strict_input"`
		Concurrency   int     `yaml:"concurrency"`
	} `yaml:"analysis"`
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Feeds struct {
		URLs     []string `yaml:"urls"`
		MaxItems int      `yaml:"max_items"`
	} `yaml:"feeds"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
		FeedCron  string `yaml:"feed_cron"`
	} `yaml:"schedule"`
	Watchlist struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"watchlist"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// envOverrides lists the environment variables that override the YAML file.
// Unset variables leave the file value alone.
type envOverrides struct {
	AlphaVantageKey   string   `envconfig:"ALPHAVANTAGE_API_KEY"`
	AlphaVantageURL   string   `envconfig:"ALPHAVANTAGE_BASE_URL"`
	Provider          string   `envconfig:"DATA_PROVIDER"`
	Symbols           []string `envconfig:"WATCHLIST"`
	StrictInput       string   `envconfig:"STRICT_INPUT"`
	BackendURL        string   `envconfig:"BACKEND_URL"`
	Feeds             []string `envconfig:"FEED_URLS"`
	TelegramBotToken  string   `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID    string   `envconfig:"TELEGRAM_CHAT_ID"`
	CronDaily         string   `envconfig:"CRON_DAILY"`
	CronFeed          string   `envconfig:"CRON_FEED"`
	SQLitePath        string   `envconfig:"SQLITE_PATH"`
	Proxy             string   `envconfig:"HTTPS_PROXY"`
	RequestsPerMinute int      `envconfig:"ALPHAVANTAGE_RPM"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// a missing .env is normal outside development
	_ = godotenv.Load()

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.apply(&env); err != nil {
		return nil, err
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) apply(env *envOverrides) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.AlphaVantage.APIKey, env.AlphaVantageKey)
	set(&c.AlphaVantage.BaseURL, env.AlphaVantageURL)
	set(&c.DataSource.Provider, env.Provider)
	set(&c.Backend.BaseURL, env.BackendURL)
	set(&c.Telegram.BotToken, env.TelegramBotToken)
	set(&c.Telegram.ChatID, env.TelegramChatID)
	set(&c.Schedule.DailyCron, env.CronDaily)
	set(&c.Schedule.FeedCron, env.CronFeed)
	set(&c.Database.SQLitePath, env.SQLitePath)
	set(&c.Proxy, env.Proxy)

	if env.RequestsPerMinute > 0 {
		c.AlphaVantage.RequestsPerMinute = env.RequestsPerMinute
	}
	if len(env.Symbols) > 0 {
		c.DataSource.Symbols = env.Symbols
	}
	if len(env.Feeds) > 0 {
		c.Feeds.URLs = env.Feeds
	}
	if env.StrictInput != "" {
		strict, err := strconv.ParseBool(env.StrictInput)
		if err != nil {
			return fmt.Errorf("STRICT_INPUT: %w", err)
		}
		c.Analysis.StrictInput = strict
	}
	return nil
}

func (c *Config) setDefaults() {
	c.DataSource.Provider = strings.ToLower(c.DataSource.Provider)
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "alphavantage"
	}
	if len(c.DataSource.Symbols) == 0 {
		c.DataSource.Symbols = []string{"IBM"}
	}
	if c.DataSource.HistoryDays == 0 {
		c.DataSource.HistoryDays = 365
	}
	if c.AlphaVantage.RequestsPerMinute == 0 {
		c.AlphaVantage.RequestsPerMinute = 5
	}
	if c.Analysis.MAWindow == 0 {
		c.Analysis.MAWindow = calculator.DefaultMAWindow
	}
	if c.Analysis.SlopeWindow == 0 {
		c.Analysis.SlopeWindow = calculator.DefaultSlopeWindow
	}
	if c.Analysis.DropThreshold == 0 {
		c.Analysis.DropThreshold = calculator.DefaultDropThreshold
	}
	if c.Analysis.Concurrency == 0 {
		c.Analysis.Concurrency = 4
	}
	if c.Feeds.MaxItems == 0 {
		c.Feeds.MaxItems = 10
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if c.Schedule.FeedCron == "" {
		c.Schedule.FeedCron = "0 0 */2 * * *"
	}
	if c.Watchlist.StateFile == "" {
		c.Watchlist.StateFile = "data/watchlist.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/findoc.db"
	}
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "alphavantage", "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider %q is not one of alphavantage, yahoo, mock", c.DataSource.Provider)
	}
	if c.Analysis.MAWindow <= 0 {
		return fmt.Errorf("analysis.ma_window must be positive")
	}
	if c.Analysis.SlopeWindow < 2 {
		return fmt.Errorf("analysis.slope_window must be at least 2")
	}
	if c.Analysis.DropThreshold <= 0 || c.Analysis.DropThreshold >= 1 {
		return fmt.Errorf("analysis.drop_threshold must be in (0, 1)")
	}
	return nil
}

// ValidateBot additionally checks what the long-running bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
