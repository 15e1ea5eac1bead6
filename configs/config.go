package configs

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// RedisConfig holds the Redis connection URL
type RedisConfig struct {
	URL string
}

// KafkaConfig holds broker addresses and topic names
type KafkaConfig struct {
	Brokers         []string
	PreferenceTopic string
	MatchTopic      string
	ConsumerGroup   string
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	Secret string
	Expire time.Duration
}

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
}

var (
	configInstance *Config
	once           sync.Once
)

// Load loads configuration from the .env file and environment variables
func Load() *Config {
	once.Do(func() {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")

		// Set defaults
		viper.SetDefault("ROTAPE_HOST", "0.0.0.0")
		viper.SetDefault("ROTAPE_PORT", "8080")
		viper.SetDefault("ROTAPE_READ_TIMEOUT", "15s")
		viper.SetDefault("ROTAPE_WRITE_TIMEOUT", "15s")
		viper.SetDefault("ROTAPE_IDLE_TIMEOUT", "60s")
		viper.SetDefault("ROTAPE_JWT_SECRET", "secret")
		viper.SetDefault("ROTAPE_JWT_EXPIRE", "24h")
		viper.SetDefault("MYSQL_USER", "root")
		viper.SetDefault("MYSQL_PASSWORD", "password")
		viper.SetDefault("MYSQL_HOST", "localhost")
		viper.SetDefault("MYSQL_PORT", "3306")
		viper.SetDefault("MYSQL_DB", "rotape")
		viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
		viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
		viper.SetDefault("KAFKA_PREFERENCE_TOPIC", "preference.submitted")
		viper.SetDefault("KAFKA_MATCH_TOPIC", "matches.resolved")
		viper.SetDefault("KAFKA_CONSUMER_GROUP", "rotape-tally-worker")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			log.Printf("Warning: Error reading .env file: %v", err)
			log.Printf("Using environment variables and defaults")
		}

		jwtExpire, err := time.ParseDuration(viper.GetString("ROTAPE_JWT_EXPIRE"))
		if err != nil {
			log.Fatal("Invalid ROTAPE_JWT_EXPIRE format")
		}

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("ROTAPE_HOST"),
				Port:         viper.GetString("ROTAPE_PORT"),
				ReadTimeout:  viper.GetDuration("ROTAPE_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("ROTAPE_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("ROTAPE_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				User:     viper.GetString("MYSQL_USER"),
				Password: viper.GetString("MYSQL_PASSWORD"),
				Host:     viper.GetString("MYSQL_HOST"),
				Port:     viper.GetString("MYSQL_PORT"),
				Name:     viper.GetString("MYSQL_DB"),
			},
			Redis: RedisConfig{
				URL: viper.GetString("REDIS_URL"),
			},
			Kafka: KafkaConfig{
				Brokers:         strings.Split(viper.GetString("KAFKA_BROKERS"), ","),
				PreferenceTopic: viper.GetString("KAFKA_PREFERENCE_TOPIC"),
				MatchTopic:      viper.GetString("KAFKA_MATCH_TOPIC"),
				ConsumerGroup:   viper.GetString("KAFKA_CONSUMER_GROUP"),
			},
			JWT: JWTConfig{
				Secret: viper.GetString("ROTAPE_JWT_SECRET"),
				Expire: jwtExpire,
			},
		}
	})
	return configInstance
}
