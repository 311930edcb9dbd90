package config

import (
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Verbose  bool
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string
}

// KafkaConfig holds notification delivery settings. An empty broker list
// means notifications are written to the log instead of Kafka.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads configuration from Viper and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Server: ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("database.path"),
		},
		Kafka: KafkaConfig{
			Brokers: viper.GetStringSlice("kafka.brokers"),
			Topic:   viper.GetString("kafka.topic"),
		},
	}

	// Apply defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "stockroom.db"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "stockroom.notifications"
	}

	return cfg, nil
}
