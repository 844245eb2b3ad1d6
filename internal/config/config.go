package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SENTINEL_LOG_LEVEL.
const EnvPrefix = "SENTINEL"

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Schedule ScheduleConfig `yaml:"schedule" envconfig:"SCHEDULE"`
	Workers  int            `yaml:"workers" envconfig:"WORKERS"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	HTTP     HTTPConfig     `yaml:"http" envconfig:"HTTP"`
	Telegram TelegramConfig `yaml:"telegram" envconfig:"TELEGRAM"`
	Engine   Engine         `yaml:"engine" ignored:"true"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
	Env   string `yaml:"env" envconfig:"ENV"`
}

// DataConfig selects where price series come from.
type DataConfig struct {
	Source      string   `yaml:"source" envconfig:"SOURCE"` // "file" or "mock"
	SnapshotDir string   `yaml:"snapshot_dir" envconfig:"SNAPSHOT_DIR"`
	Symbols     []string `yaml:"symbols" envconfig:"SYMBOLS"`
	HistoryDays int      `yaml:"history_days" envconfig:"HISTORY_DAYS"`
	MockPrice   float64  `yaml:"mock_price" envconfig:"MOCK_PRICE"`
}

type ScheduleConfig struct {
	AnalysisCron string `yaml:"analysis_cron" envconfig:"ANALYSIS_CRON"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" envconfig:"TTL"`
}

type DatabaseConfig struct {
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
}

type HTTPConfig struct {
	Addr           string        `yaml:"addr" envconfig:"ADDR"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

type TelegramConfig struct {
	BotToken      string  `yaml:"bot_token" envconfig:"BOT_TOKEN"`
	ChatID        int64   `yaml:"chat_id" envconfig:"CHAT_ID"`
	RatePerSecond float64 `yaml:"rate_per_second" envconfig:"RATE_PER_SECOND"`
	Burst         int     `yaml:"burst" envconfig:"BURST"`
}

// Enabled reports whether Telegram delivery is configured.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults cover every field.
func Load(path string) (*Config, error) {
	cfg := &Config{Engine: DefaultEngine()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Env == "" {
		c.Log.Env = "development"
	}
	if c.Data.Source == "" {
		c.Data.Source = "file"
	}
	if c.Data.SnapshotDir == "" {
		c.Data.SnapshotDir = "data/charts"
	}
	if c.Data.HistoryDays == 0 {
		c.Data.HistoryDays = 365
	}
	if c.Data.MockPrice == 0 {
		c.Data.MockPrice = 100
	}
	if c.Schedule.AnalysisCron == "" {
		c.Schedule.AnalysisCron = "0 30 22 * * 1-5"
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Second
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/stock_sentinel.db"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = 10 * time.Second
	}
	if c.Telegram.RatePerSecond == 0 {
		c.Telegram.RatePerSecond = 20
	}
	if c.Telegram.Burst == 0 {
		c.Telegram.Burst = 30
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case "file":
		if c.Data.SnapshotDir == "" {
			return fmt.Errorf("data.snapshot_dir is required for the file source")
		}
	case "mock":
	default:
		return fmt.Errorf("data.source must be \"file\" or \"mock\", got %q", c.Data.Source)
	}
	if c.Data.HistoryDays < c.Engine.MinBars {
		return fmt.Errorf("data.history_days (%d) must cover engine.min_bars (%d)", c.Data.HistoryDays, c.Engine.MinBars)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return nil
}
