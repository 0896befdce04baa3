package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Path string
	}
	Server struct {
		Port      int
		JWTSecret string
	}
	Email struct {
		SMTPHost   string
		SMTPPort   int
		From       string
		Password   string
		AdminEmail string
	}
	Slack struct {
		Token   string
		Channel string
	}
	Stripe struct {
		SecretKey     string
		WebhookSecret string
	}
	Reports struct {
		PollInterval time.Duration
	}
}

// LoadConfig loads the configuration from config.yaml
func LoadConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("reports.pollinterval", time.Minute)

	var config Config

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use default values
			config.Database.Path = "data/ejardin.db"
			config.Server.Port = 8080
			config.Reports.PollInterval = time.Minute

			viper.Set("database.path", config.Database.Path)
			viper.Set("server.port", config.Server.Port)

			// Ensure data directory exists
			if err := os.MkdirAll("data", 0755); err != nil {
				fmt.Printf("Warning: Failed to create data directory: %v\n", err)
			}

			if err := viper.SafeWriteConfig(); err != nil {
				fmt.Printf("Warning: Failed to write default config: %v\n", err)
			}
			return &config
		}
		fmt.Printf("Error reading config file: %v\n", err)
		return &config
	}

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Printf("Error unmarshaling config: %v\n", err)
	}
	if config.Reports.PollInterval <= 0 {
		config.Reports.PollInterval = time.Minute
	}

	return &config
}
