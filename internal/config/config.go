// Package config loads the service configuration from configs/config.yaml
// with environment overrides.
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatasetConfig points at the cover crop CSV loaded at startup.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// GenAIConfig holds the completion service parameters. The API key is never
// read from the YAML file; it comes from the environment only.
type GenAIConfig struct {
	Model           string  `mapstructure:"model"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
	APIKey          string  `mapstructure:"-"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
