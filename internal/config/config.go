package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Study       StudyConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// StudyConfig holds the scheduling policy knobs. The defaults define
// the study behavior; overriding them changes how much a learner is
// asked to do per day.
type StudyConfig struct {
	NewCardQuota      int // max flashcards materialized per user per day
	SessionQuota      int // max reviews per user per day
	HistoryWindowDays int // trailing window for the recency score
	DueLookaheadHours int // cards due within this horizon count as due today
}

// HistoryWindow returns the recency-score window as a duration
func (c StudyConfig) HistoryWindow() time.Duration {
	return time.Duration(c.HistoryWindowDays) * 24 * time.Hour
}

// DueLookahead returns the due-eligibility look-ahead as a duration
func (c StudyConfig) DueLookahead() time.Duration {
	return time.Duration(c.DueLookaheadHours) * time.Hour
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "recallbot"),
			User:     getEnv("DB_USER", "recallbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Study: StudyConfig{
			NewCardQuota:      getEnvInt("STUDY_NEW_CARD_QUOTA", 10),
			SessionQuota:      getEnvInt("STUDY_SESSION_QUOTA", 15),
			HistoryWindowDays: getEnvInt("STUDY_HISTORY_WINDOW_DAYS", 30),
			DueLookaheadHours: getEnvInt("STUDY_DUE_LOOKAHEAD_HOURS", 24),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Study.NewCardQuota < 0 || cfg.Study.SessionQuota < 0 {
		return nil, fmt.Errorf("study quotas must not be negative")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
