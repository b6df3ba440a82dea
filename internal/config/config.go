package config

import (
	"os"
	"strconv"
	"time"

	"poemnames/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	LLM       LLMConfig
	Server    ServerConfig
	Generator GeneratorConfig
	Lexicon   LexiconConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// LLMConfig holds the optional explanation-service settings. An empty API
// key means the feature is disabled, never an error.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port      string
	AdminPort string
	GinMode   string
}

// GeneratorConfig exposes the generation heuristics' tunable constants.
// The defaults reproduce the corpus policy; none of them is a law.
type GeneratorConfig struct {
	RelaxThreshold  int // drop a preference filter below this pool size
	AffinityCeiling int // cap on affinity-tier characters in the pool
	NeutralCeiling  int // cap on neutral backfill characters
	MinPool         int // below this, opposite-affinity exclusion is lifted
	SlotAttempts    int // per-slot rejection-sampling budget
}

// DefaultGeneratorConfig returns the corpus policy defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RelaxThreshold:  20,
		AffinityCeiling: 100,
		NeutralCeiling:  150,
		MinPool:         50,
		SlotAttempts:    36,
	}
}

// LexiconConfig selects the lexicon bulk source.
type LexiconConfig struct {
	XLSXPath string // when set, load from a workbook instead of the database
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		LLM: LLMConfig{
			APIKey:      os.Getenv("LLM_API_KEY"),
			BaseURL:     getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvIntOrDefault("LLM_MAX_TOKENS", 500),
			Temperature: getEnvFloatOrDefault("LLM_TEMPERATURE", 0.7),
			Timeout:     time.Duration(getEnvIntOrDefault("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
			MaxRetries:  getEnvIntOrDefault("LLM_MAX_RETRIES", 2),
		},
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8080"),
			AdminPort: getEnvOrDefault("ADMIN_PORT", "8081"),
			GinMode:   getEnvOrDefault("GIN_MODE", "release"),
		},
		Generator: GeneratorConfig{
			RelaxThreshold:  getEnvIntOrDefault("GEN_RELAX_THRESHOLD", 20),
			AffinityCeiling: getEnvIntOrDefault("GEN_AFFINITY_CEILING", 100),
			NeutralCeiling:  getEnvIntOrDefault("GEN_NEUTRAL_CEILING", 150),
			MinPool:         getEnvIntOrDefault("GEN_MIN_POOL", 50),
			SlotAttempts:    getEnvIntOrDefault("GEN_SLOT_ATTEMPTS", 36),
		},
		Lexicon: LexiconConfig{
			XLSXPath: os.Getenv("LEXICON_XLSX"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" && cfg.Lexicon.XLSXPath == "" {
		return errors.ConfigInvalid("DATABASE_URL or LEXICON_XLSX is required")
	}
	if cfg.Generator.RelaxThreshold < 1 {
		return errors.ConfigInvalid("GEN_RELAX_THRESHOLD must be positive")
	}
	if cfg.Generator.SlotAttempts < 1 {
		return errors.ConfigInvalid("GEN_SLOT_ATTEMPTS must be positive")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
