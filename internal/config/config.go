// Package config loads the searchresult CLI configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// DefaultEnvPrefix prefixes every environment variable read by the loader.
const DefaultEnvPrefix = "SEARCHRESULT"

// Source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config is the complete CLI configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Source SourceConfig `mapstructure:"source"`
	Page   PageConfig   `mapstructure:"page"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Query logs the emulated query of every loaded collection.
	Query bool `mapstructure:"query"`
}

// SourceConfig selects and configures the record source.
type SourceConfig struct {
	Kind     string         `mapstructure:"kind"`
	Dir      string         `mapstructure:"dir"`
	CacheTTL time.Duration  `mapstructure:"cache_ttl"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig configures the Postgres record source.
type PostgresConfig struct {
	DSN          string `mapstructure:"dsn"`
	Table        string `mapstructure:"table"`
	EnsureSchema bool   `mapstructure:"ensure_schema"`
}

// RedisConfig configures the Redis record source.
type RedisConfig struct {
	URL    string        `mapstructure:"url"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// PageConfig bounds the page sizes a listing may request.
type PageConfig struct {
	DefaultSize int `mapstructure:"default_size"`
	MaxSize     int `mapstructure:"max_size"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: FormatJSON,
		},
		Source: SourceConfig{
			Kind: SourceFile,
			Dir:  "var/searchresult",
			Postgres: PostgresConfig{
				Table: "searchresult_storage",
			},
			Redis: RedisConfig{
				Prefix: "searchresult:",
			},
		},
		Page: PageConfig{
			DefaultSize: 20,
			MaxSize:     200,
		},
	}
}

// Loader reads configuration with precedence ENV > file > defaults.
type Loader struct {
	configFile string
	envPrefix  string
}

// NewLoader creates a Loader. configFile is optional.
func NewLoader(configFile, envPrefix string) *Loader {
	return &Loader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// Load reads, merges and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	l.setDefaults(v, DefaultConfig())

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(l.prefix())
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.query", cfg.Log.Query)

	v.SetDefault("source.kind", cfg.Source.Kind)
	v.SetDefault("source.dir", cfg.Source.Dir)
	v.SetDefault("source.cache_ttl", cfg.Source.CacheTTL)
	v.SetDefault("source.postgres.dsn", cfg.Source.Postgres.DSN)
	v.SetDefault("source.postgres.table", cfg.Source.Postgres.Table)
	v.SetDefault("source.postgres.ensure_schema", cfg.Source.Postgres.EnsureSchema)
	v.SetDefault("source.redis.url", cfg.Source.Redis.URL)
	v.SetDefault("source.redis.prefix", cfg.Source.Redis.Prefix)
	v.SetDefault("source.redis.ttl", cfg.Source.Redis.TTL)

	v.SetDefault("page.default_size", cfg.Page.DefaultSize)
	v.SetDefault("page.max_size", cfg.Page.MaxSize)
}

func (l *Loader) bindEnvVars(v *viper.Viper) {
	v.BindEnv("log.level", l.prefixedEnv("LOG_LEVEL"))
	v.BindEnv("log.format", l.prefixedEnv("LOG_FORMAT"))
	v.BindEnv("log.query", l.prefixedEnv("LOG_QUERY"))

	v.BindEnv("source.kind", l.prefixedEnv("SOURCE_KIND"))
	v.BindEnv("source.dir", l.prefixedEnv("SOURCE_DIR"))
	v.BindEnv("source.cache_ttl", l.prefixedEnv("SOURCE_CACHE_TTL"))
	v.BindEnv("source.postgres.dsn", l.prefixedEnv("POSTGRES_DSN"))
	v.BindEnv("source.postgres.table", l.prefixedEnv("POSTGRES_TABLE"))
	v.BindEnv("source.postgres.ensure_schema", l.prefixedEnv("POSTGRES_ENSURE_SCHEMA"))
	v.BindEnv("source.redis.url", l.prefixedEnv("REDIS_URL"))
	v.BindEnv("source.redis.prefix", l.prefixedEnv("REDIS_PREFIX"))
	v.BindEnv("source.redis.ttl", l.prefixedEnv("REDIS_TTL"))

	v.BindEnv("page.default_size", l.prefixedEnv("PAGE_DEFAULT_SIZE"))
	v.BindEnv("page.max_size", l.prefixedEnv("PAGE_MAX_SIZE"))
}

func (l *Loader) prefix() string {
	prefix := strings.TrimSpace(l.envPrefix)
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return strings.ToUpper(prefix)
}

func (l *Loader) prefixedEnv(suffix string) string {
	return fmt.Sprintf("%s_%s", l.prefix(), suffix)
}

// Validate checks cfg for values the CLI cannot work with.
func Validate(cfg *Config) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch cfg.Log.Format {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", FormatJSON, FormatConsole, cfg.Log.Format)
	}

	switch cfg.Source.Kind {
	case SourceFile:
		if strings.TrimSpace(cfg.Source.Dir) == "" {
			return fmt.Errorf("source.dir is required for the %s source", SourceFile)
		}
	case SourcePostgres:
		if strings.TrimSpace(cfg.Source.Postgres.DSN) == "" {
			return fmt.Errorf("source.postgres.dsn is required for the %s source", SourcePostgres)
		}
	case SourceRedis:
		if strings.TrimSpace(cfg.Source.Redis.URL) == "" {
			return fmt.Errorf("source.redis.url is required for the %s source", SourceRedis)
		}
	default:
		return fmt.Errorf("source.kind must be one of %s, %s, %s; got %q",
			SourceFile, SourcePostgres, SourceRedis, cfg.Source.Kind)
	}

	if cfg.Source.CacheTTL < 0 {
		return fmt.Errorf("source.cache_ttl must not be negative")
	}
	if cfg.Source.Redis.TTL < 0 {
		return fmt.Errorf("source.redis.ttl must not be negative")
	}

	if cfg.Page.DefaultSize < 0 || cfg.Page.MaxSize < 0 {
		return fmt.Errorf("page sizes must not be negative")
	}
	if cfg.Page.MaxSize > 0 && cfg.Page.DefaultSize > cfg.Page.MaxSize {
		return fmt.Errorf("page.default_size %d exceeds page.max_size %d", cfg.Page.DefaultSize, cfg.Page.MaxSize)
	}

	return nil
}

// ConfigFileFromEnv returns the config file named by <PREFIX>_CONFIG_FILE, if any.
func ConfigFileFromEnv(envPrefix string) string {
	l := NewLoader("", envPrefix)
	return strings.TrimSpace(os.Getenv(l.prefixedEnv("CONFIG_FILE")))
}
