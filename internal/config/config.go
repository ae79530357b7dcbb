package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Remote content API configuration
	WordPress WordPressConfig

	// Local cache configuration
	Cache CacheConfig

	// Podcast feed configuration
	Podcast PodcastConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// WordPressConfig holds remote content API settings
type WordPressConfig struct {
	BaseURL     string
	PageSize    int
	HTTPTimeout time.Duration
}

// CacheConfig holds local cache settings
type CacheConfig struct {
	MaxArticlesOnDevice int
	DevotionLookAhead   int
	DefaultCategoryName string
	DevotionFilePath    string
	NotificationMinute  int // minutes since midnight for the daily devotion
}

// PodcastConfig holds podcast feed and download settings
type PodcastConfig struct {
	FeedURL       string
	CacheFilePath string
	AudioDir      string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "content_sync"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		WordPress: WordPressConfig{
			BaseURL:     getEnv("WP_BASE_URL", ""),
			PageSize:    getIntEnv("WP_PAGE_SIZE", 20),
			HTTPTimeout: getDurationEnv("WP_HTTP_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			MaxArticlesOnDevice: getIntEnv("MAX_ARTICLES_ON_DEVICE", 200),
			DevotionLookAhead:   getIntEnv("DEVOTION_LOOK_AHEAD", 50),
			DefaultCategoryName: getEnv("DEFAULT_CATEGORY_NAME", "All"),
			DevotionFilePath:    getEnv("DEVOTION_FILE_PATH", "./data/devotions.json"),
			NotificationMinute:  getIntEnv("DEVOTION_NOTIFICATION_MINUTE", 8*60),
		},
		Podcast: PodcastConfig{
			FeedURL:       getEnv("PODCAST_FEED_URL", ""),
			CacheFilePath: getEnv("PODCAST_CACHE_PATH", "./data/podcasts.json"),
			AudioDir:      getEnv("PODCAST_AUDIO_DIR", "./data/audio"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.WordPress.BaseURL == "" {
		return fmt.Errorf("WP_BASE_URL is required")
	}
	if c.Cache.MaxArticlesOnDevice <= 0 {
		return fmt.Errorf("MAX_ARTICLES_ON_DEVICE must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
