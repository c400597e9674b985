package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Feed     Feed     `mapstructure:"feed"`
	Poller   Poller   `mapstructure:"poller"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Feed holds the configuration for the upstream rate providers.
type Feed struct {
	SpotURL        string  `mapstructure:"spot_url"`
	FuturesURL     string  `mapstructure:"futures_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Poller holds the configuration for one polling invocation.
type Poller struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	DeadlineSeconds int `mapstructure:"deadline_seconds"`
}

// Server holds the configuration for the admin API server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("feed.spot_url", "https://liveapi.uk/com/ml-spot/index.php")
	viper.SetDefault("feed.futures_url", "https://liveapi.uk/com/ml/index.php")
	viper.SetDefault("feed.rate_limit", 2) // requests per second
	viper.SetDefault("feed.rate_limit_burst", 4)
	viper.SetDefault("poller.interval_seconds", 3)
	// The outer scheduler allows 540s per invocation; stop slightly early
	// so the process exits cleanly instead of being killed.
	viper.SetDefault("poller.deadline_seconds", 530)
	viper.SetDefault("database.dsn", "bullion.db")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
