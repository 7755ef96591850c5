// Package config provides Viper-based hierarchical configuration:
// defaults, then an optional YAML config file, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	AI     AIConfig     `mapstructure:"ai" yaml:"ai"`
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Worker WorkerConfig `mapstructure:"worker" yaml:"worker"`
}

// LogConfig controls log verbosity and rendering.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AIConfig controls the AI extraction strategy.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // never serialized
}

// ParserConfig controls the deterministic pipeline.
type ParserConfig struct {
	DefaultCurrency string `mapstructure:"default_currency" yaml:"default_currency"`
	KeywordsFile    string `mapstructure:"keywords_file" yaml:"keywords_file"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// WorkerConfig sizes the background parse pool.
type WorkerConfig struct {
	Count     int `mapstructure:"count" yaml:"count"`
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
}

var envOnce sync.Once

// LoadEnv loads variables from a .env file in the working directory or its
// parent, if one exists. Safe to call repeatedly.
func LoadEnv() {
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err == nil {
				_ = godotenv.Load(candidate)
				return
			}
		}
	})
}

// Load initializes configuration with hierarchical resolution.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.nitiarthik")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NITI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	// The Gemini credential is always taken from the conventional unprefixed
	// variable so the same key works across tools.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding GEMINI_API_KEY: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// The AI strategy is only selectable when a credential is present.
	if cfg.AI.APIKey == "" {
		cfg.AI.Enabled = false
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-2.5-flash-lite")
	v.SetDefault("ai.timeout_seconds", 120)

	v.SetDefault("parser.default_currency", "INR")
	v.SetDefault("parser.keywords_file", "")

	v.SetDefault("output.directory", "output")
	v.SetDefault("output.delimiter", ",")

	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.queue_size", 64)
}
