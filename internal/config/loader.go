package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, applies environment overrides, fills in
// defaults, and validates. The GEMINI_API_KEY secret must be present in the
// environment (or a .env file); its absence is a startup fault.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Enable ENV override like SERVER_PORT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	cfg.GenAI.APIKey = os.Getenv("GEMINI_API_KEY")

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads a .env file when one exists; otherwise the process
// environment is used as-is.
func loadEnvFile() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cover-crop-advisor"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = "data/cover_crops.csv"
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gemini-2.5-flash-lite"
	}
	if cfg.GenAI.Temperature == 0 {
		cfg.GenAI.Temperature = 0.7
	}
	if cfg.GenAI.MaxOutputTokens == 0 {
		cfg.GenAI.MaxOutputTokens = 600
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.GenAI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	return nil
}
