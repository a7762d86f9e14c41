package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Translate TranslateConfig `yaml:"translate"`
	Chat      ChatConfig      `yaml:"chat"`
	Theme     ThemeConfig     `yaml:"theme"`
}

// DatabaseConfig holds store-related configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	BundleDir string `yaml:"bundle_dir"`
}

// TranslateConfig holds translation service configuration
type TranslateConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Delay   time.Duration `yaml:"delay"`
}

// ChatConfig holds chat completion service configuration (free-form summary mode)
type ChatConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ThemeConfig points at the brand kit on disk
type ThemeConfig struct {
	Path     string `yaml:"path"`
	LogoPath string `yaml:"logo_path"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "promogen.db"),
		},
		Server: ServerConfig{
			Addr:      getEnv("HTTP_ADDR", ":8080"),
			BundleDir: getEnv("BUNDLE_DIR", "./bundles"),
		},
		Translate: TranslateConfig{
			BaseURL: getEnv("TRANSLATE_BASE_URL", "https://translate.kokkiri.local"),
			APIKey:  getEnv("TRANSLATE_API_KEY", ""),
			Delay:   getEnvAsDuration("TRANSLATE_DELAY", 500*time.Millisecond),
		},
		Chat: ChatConfig{
			BaseURL:     getEnv("CHAT_BASE_URL", "http://localhost:11434/v1"),
			APIKey:      getEnv("CHAT_API_KEY", ""),
			Model:       getEnv("CHAT_MODEL", ""),
			Temperature: getEnvAsFloat32("CHAT_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("CHAT_TIMEOUT", 45*time.Second),
		},
		Theme: ThemeConfig{
			Path:     getEnv("THEME_PATH", ""),
			LogoPath: getEnv("LOGO_PATH", ""),
		},
	}
}

// LoadConfigFile overlays values from a YAML file onto the env-derived config.
func LoadConfigFile(path string) (*Config, error) {
	cfg := LoadConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Translate.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "TRANSLATE_BASE_URL is required", ErrInvalidInput)
	}
	return nil
}
