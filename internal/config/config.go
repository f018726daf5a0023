package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Detectors map[string]DetectorConfig `yaml:"detectors"`
	Providers ProviderConfig            `yaml:"providers"`
}

// DetectorConfig represents configuration for a specific detector
type DetectorConfig struct {
	Disabled bool   `yaml:"disabled"`
	Severity string `yaml:"severity"`
}

// ProviderConfig holds the endpoints of the external collaborators: the
// conformance-engine runner and the generative fix/analysis services.
type ProviderConfig struct {
	ConformanceURL string `yaml:"conformance_url"`
	RemoteFixURL   string `yaml:"remote_fix_url"`
	LocalFixURL    string `yaml:"local_fix_url"`
	AnalyzeURL     string `yaml:"analyze_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{Detectors: make(map[string]DetectorConfig)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Detectors == nil {
		config.Detectors = make(map[string]DetectorConfig)
	}

	return &config, nil
}

// LoadEnvFile loads a .env file from the working directory into the process
// environment when one exists. Callers opt in explicitly; FromEnv itself only
// reads the environment and touches no files.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// FromEnv fills provider settings from the process environment. Values
// already set in cfg are kept.
func FromEnv(cfg ProviderConfig) ProviderConfig {
	if cfg.ConformanceURL == "" {
		cfg.ConformanceURL = os.Getenv("A11Y_CONFORMANCE_URL")
	}
	if cfg.RemoteFixURL == "" {
		cfg.RemoteFixURL = os.Getenv("A11Y_REMOTE_FIX_URL")
	}
	if cfg.LocalFixURL == "" {
		cfg.LocalFixURL = os.Getenv("A11Y_LOCAL_FIX_URL")
	}
	if cfg.AnalyzeURL == "" {
		cfg.AnalyzeURL = os.Getenv("A11Y_ANALYZE_URL")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("A11Y_API_KEY")
	}

	return cfg
}
