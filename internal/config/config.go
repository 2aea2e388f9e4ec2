// Package config loads runtime configuration from an optional YAML file and
// environment variables. Every knob has a default; a missing file is not an
// error, and malformed scoring overrides degrade to the documented defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration tree.
type Config struct {
	FavoriteTeam string        `mapstructure:"favorite_team"`
	Scoring      map[string]any `mapstructure:"scoring"`
	Cache        CacheConfig   `mapstructure:"cache"`
	Database     DatabaseConfig `mapstructure:"database"`
	NBAAPI       NBAAPIConfig  `mapstructure:"nba_api"`
	API          APIConfig     `mapstructure:"api"`
	Metrics      MetricsConfig `mapstructure:"metrics"`
	Sync         SyncConfig    `mapstructure:"sync"`
	Log          LogConfig     `mapstructure:"log"`
}

// CacheConfig controls the file-backed scoreboard cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	TTLDays int    `mapstructure:"ttl_days"`
}

// DatabaseConfig controls the SQLite store.
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NBAAPIConfig controls the upstream client.
type NBAAPIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxPages       int    `mapstructure:"max_pages"`
	RetryAttempts  int    `mapstructure:"retry_attempts"`
	RateLimitMS    int    `mapstructure:"rate_limit_ms"`
	Provider       string `mapstructure:"provider"`
}

// APIConfig controls the HTTP server.
type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MetricsConfig controls the metrics endpoint and optional OTLP export.
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Port         int    `mapstructure:"port"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// SyncConfig controls the background sync job.
type SyncConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	Days     int    `mapstructure:"days"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Addr formats the HTTP listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the config file at path (or config.yaml in the working
// directory when path is empty) and applies environment overrides. A
// missing file yields pure defaults; an unreadable one is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("NBAGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names used by deploy environments.
	v.BindEnv("nba_api.api_key", "NBAGAME_NBA_API_API_KEY", "BALLDONTLIE_API_KEY")
	v.BindEnv("api.port", "NBAGAME_API_PORT", "PORT")
	v.BindEnv("favorite_team", "NBAGAME_FAVORITE_TEAM", "FAVORITE_TEAM")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("favorite_team", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", ".cache")
	v.SetDefault("cache.ttl_days", 7)

	v.SetDefault("database.enabled", true)
	v.SetDefault("database.path", "nbagame.db")

	v.SetDefault("nba_api.base_url", "https://api.balldontlie.io/v1")
	v.SetDefault("nba_api.timeout_seconds", 10)
	v.SetDefault("nba_api.max_pages", 10)
	v.SetDefault("nba_api.retry_attempts", 3)
	v.SetDefault("nba_api.rate_limit_ms", 1000)
	v.SetDefault("nba_api.provider", "balldontlie")

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.otlp_endpoint", "")

	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.schedule", "0 6 * * *")
	v.SetDefault("sync.days", 7)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
