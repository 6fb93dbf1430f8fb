package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Store    StoreConfig
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	TimeoutSeconds int     `mapstructure:"timeoutSeconds"`
	RateLimitRPS   float64 `mapstructure:"rateLimitRps"`
	RateLimitBurst int     `mapstructure:"rateLimitBurst"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type StoreConfig struct {
	// Backend selects "memory" (embedded, seeded) or "postgres".
	Backend string `mapstructure:"backend"`
	// Seed loads the fixed sample dataset into the memory backend.
	Seed bool `mapstructure:"seed"`
	// CacheTTLSeconds bounds the upcoming-appointments query cache.
	CacheTTLSeconds int `mapstructure:"cacheTtlSeconds"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("server.rateLimitRps", 100)
	viper.SetDefault("server.rateLimitBurst", 50)
	viper.SetDefault("database.maxOpenConns", 25)
	viper.SetDefault("database.maxIdleConns", 5)
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.seed", true)
	viper.SetDefault("store.cacheTtlSeconds", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// WorkerConfig is the outbox worker's environment-driven configuration.
type WorkerConfig struct {
	DatabaseURL  string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL     string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	Channel      string `envconfig:"OUTBOX_CHANNEL" default:"records.events"`
	BatchSize    int    `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	PollSeconds  int    `envconfig:"OUTBOX_POLL_SECONDS" default:"5"`
	MetricsPort  int    `envconfig:"METRICS_PORT" default:"9091"`
	RetainDays   int    `envconfig:"OUTBOX_RETAIN_DAYS" default:"7"`
	MaxRetries   int    `envconfig:"OUTBOX_MAX_RETRIES" default:"5"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadWorkerConfig() (*WorkerConfig, error) {
	var cfg WorkerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process worker config: %w", err)
	}
	return &cfg, nil
}
