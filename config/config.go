package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go-clinic-booking/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	Log   LogConfig
}

type AppConfig struct {
	Port              string
	Env               string
	InitSchemaOnStart bool
}

type DBConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	LogLevel        string
}

// RedisConfig configures the catalog read cache. An empty Host disables it.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type LogConfig struct {
	Level string
}

// LoadConfig reads settings from an optional .env file and the environment.
// A missing or malformed DATABASE_URL is reported as a CONFIGURATION error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("INIT_SCHEMA_ON_START", true)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("LOG_LEVEL", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, apperror.NewConfiguration("failed to read .env", err)
		}
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, apperror.NewConfiguration("invalid DB_CONN_MAX_LIFETIME", err)
	}

	connectTimeout, err := time.ParseDuration(v.GetString("DB_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, apperror.NewConfiguration("invalid DB_CONNECT_TIMEOUT", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, apperror.NewConfiguration("invalid CACHE_TTL", err)
	}

	config := &Config{
		App: AppConfig{
			Port:              v.GetString("APP_PORT"),
			Env:               v.GetString("APP_ENV"),
			InitSchemaOnStart: v.GetBool("INIT_SCHEMA_ON_START"),
		},
		DB: DBConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			ConnectTimeout:  connectTimeout,
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      cacheTTL,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.DB.URL == "" {
		return apperror.NewConfiguration("DATABASE_URL environment variable is not set", nil)
	}
	if _, err := pgconn.ParseConfig(c.DB.URL); err != nil {
		return apperror.NewConfiguration("DATABASE_URL is not a valid PostgreSQL connection string", err)
	}
	if c.DB.MaxOpenConns < 1 {
		return apperror.NewConfiguration(fmt.Sprintf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DB.MaxOpenConns), nil)
	}
	if c.DB.ConnectTimeout <= 0 {
		return apperror.NewConfiguration(fmt.Sprintf("DB_CONNECT_TIMEOUT must be positive, got %s", c.DB.ConnectTimeout), nil)
	}
	if c.App.Port == "" {
		return apperror.NewConfiguration("APP_PORT must not be empty", nil)
	}
	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
