package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram
	TelegramToken string
	AdminID       int64
	GroupChatID   int64 // optional broadcast destination, 0 = disabled

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Scraping
	CheckInterval  time.Duration
	RequestTimeout time.Duration
	JoobleAPIKey   string // optional: upgrades Jooble from scrape to API
	SerpAPIKey     string // optional: enables the Google Jobs source

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// Local .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		// Defaults
		CheckInterval:  60 * time.Minute,
		RequestTimeout: 15 * time.Second,
		LogLevel:       "info",
		RedisAddr:      "localhost:6379",
		RedisDB:        0,
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if minutes := os.Getenv("CHECK_INTERVAL_MINUTES"); minutes != "" {
		n, err := strconv.Atoi(minutes)
		if err != nil {
			return nil, fmt.Errorf("invalid CHECK_INTERVAL_MINUTES: %w", err)
		}
		cfg.CheckInterval = time.Duration(n) * time.Minute
	}

	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if adminID := os.Getenv("ADMIN_ID"); adminID != "" {
		id, err := strconv.ParseInt(adminID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_ID: %w", err)
		}
		cfg.AdminID = id
	}

	if groupID := os.Getenv("GROUP_CHAT_ID"); groupID != "" {
		id, err := strconv.ParseInt(groupID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GROUP_CHAT_ID: %w", err)
		}
		cfg.GroupChatID = id
	}

	cfg.JoobleAPIKey = os.Getenv("JOOBLE_API_KEY")
	cfg.SerpAPIKey = os.Getenv("SERPAPI_KEY")

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.CheckInterval < time.Minute {
		return fmt.Errorf("check interval too small: %v", c.CheckInterval)
	}

	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request timeout too small: %v", c.RequestTimeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
