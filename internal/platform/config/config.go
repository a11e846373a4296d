package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	BasePath        string        `mapstructure:"base_path"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the statistics store. Driver "memory" serves the
// built-in dataset without touching disk; "sqlite" reads from URL.
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	SeedIfEmpty    bool   `mapstructure:"seed_if_empty"`
}

type CacheConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	WarmInterval time.Duration `mapstructure:"warm_interval"`
	MaxEntries   int           `mapstructure:"max_entries"`
}

type AuthConfig struct {
	Enabled      bool      `mapstructure:"enabled"`
	JWT          JWTConfig `mapstructure:"jwt"`
	APIKeyHashes []string  `mapstructure:"api_key_hashes"`
	AllowedRoles []string  `mapstructure:"allowed_roles"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type DashboardConfig struct {
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	MaxLimit     int           `mapstructure:"max_limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "/api/v1/dashboard-enterprise")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.url", "file:./data/dashboard.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed_if_empty", true)

	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("cache.warm_interval", 0)
	v.SetDefault("cache.max_entries", 10000)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.issuer", "entdash")
	v.SetDefault("auth.jwt.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.api_key_hashes", []string{})
	v.SetDefault("auth.allowed_roles", []string{"admin", "owner"})

	v.SetDefault("rate_limit.requests_per_minute", 600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "./logs/entdash.log")

	v.SetDefault("dashboard.query_timeout", 5*time.Second)
	v.SetDefault("dashboard.max_limit", 100)
}

// Load reads the YAML file at path. An empty path loads defaults and
// environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
