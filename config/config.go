package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string   `envconfig:"DATABASE_URL" default:"sqlite://restaurant.db"`
	Port               string   `envconfig:"PORT" default:"8080"`
	GoEnv              string   `envconfig:"GO_ENV" default:"development"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat          string   `envconfig:"LOG_FORMAT" default:"json"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	CookingTimeMin     int      `envconfig:"COOKING_TIME_MIN" default:"5"`
	CookingTimeMax     int      `envconfig:"COOKING_TIME_MAX" default:"15"`
	AMQPURL            string   `envconfig:"AMQP_URL"`
	AMQPExchange       string   `envconfig:"AMQP_EXCHANGE" default:"table_orders"`
	AWSRegion          string   `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSS3Bucket        string   `envconfig:"AWS_S3_BUCKET"`
	AWSAccessKeyID     string   `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string   `envconfig:"AWS_SECRET_ACCESS_KEY"`
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			logrus.Info("No .env file found, using system environment variables")
		}
	} else {
		logrus.WithField("file", envFile).Info("Loaded configuration")
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.CookingTimeMin < 0 {
		return fmt.Errorf("COOKING_TIME_MIN must not be negative, got %d", c.CookingTimeMin)
	}
	if c.CookingTimeMin > c.CookingTimeMax {
		return fmt.Errorf("COOKING_TIME_MIN (%d) must not exceed COOKING_TIME_MAX (%d)", c.CookingTimeMin, c.CookingTimeMax)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// EventsEnabled reports whether order events should be published to RabbitMQ
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// ImagesEnabled reports whether menu photos can be stored in S3
func (c *Config) ImagesEnabled() bool {
	return c.AWSS3Bucket != ""
}

// GetConfig returns the most recently loaded configuration
func GetConfig() *Config {
	return appConfig
}

// SetConfig replaces the loaded configuration (primarily for testing)
func SetConfig(cfg *Config) {
	appConfig = cfg
}
