package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Writer   WriterConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string `validate:"required"`
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string        `validate:"required"`
	Database string        `validate:"required"`
	Timeout  time.Duration `validate:"gt=0"`
}

// RedisConfig is optional; an empty Host keeps record statuses in memory.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type WriterConfig struct {
	QueueSize     int           `validate:"gt=0"`
	Workers       int           `validate:"gt=0"`
	StatusTTL     time.Duration `validate:"gt=0"`
	StatusTimeout time.Duration `validate:"gt=0"`
	// Timeout bounds one save, including waiting for the first connection.
	Timeout       time.Duration `validate:"gt=0"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// LoadConfig loads configuration from environment variables and an optional .env file.
// Defaults target the "mongodb" service host and the hackdb database.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("MONGODB_URI", "mongodb://mongodb/hackdb")
	v.SetDefault("MONGODB_DATABASE", "hackdb")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("WRITER_QUEUE_SIZE", 1024)
	v.SetDefault("WRITER_WORKERS", 1)
	v.SetDefault("STATUS_TTL", 3600)
	v.SetDefault("STATUS_TIMEOUT_MS", 100)
	v.SetDefault("LOG_LEVEL", "info")

	mongoTimeout := time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second
	// a save may first wait for the dial and ping, so it gets twice their budget by default
	writerTimeout := time.Duration(v.GetInt("WRITER_TIMEOUT")) * time.Second
	if writerTimeout <= 0 {
		writerTimeout = 2 * mongoTimeout
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  mongoTimeout,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Writer: WriterConfig{
			QueueSize:     v.GetInt("WRITER_QUEUE_SIZE"),
			Workers:       v.GetInt("WRITER_WORKERS"),
			StatusTTL:     time.Duration(v.GetInt("STATUS_TTL")) * time.Second,
			StatusTimeout: time.Duration(v.GetInt("STATUS_TIMEOUT_MS")) * time.Millisecond,
			Timeout:       writerTimeout,
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
