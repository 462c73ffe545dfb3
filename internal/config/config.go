package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is constructed once at startup and passed into the pipeline and
// server; nothing re-reads the environment per call. Secrets come from
// the environment (optionally via a .env file), everything else from an
// optional YAML file with environment overrides.
type Config struct {
	// Secrets, environment only.
	SerpAPIKey string `yaml:"-"`
	OpenAIKey  string `yaml:"-"`
	JWTSecret  string `yaml:"-"`

	Currency string `yaml:"currency"`
	GL       string `yaml:"gl"`
	HL       string `yaml:"hl"`

	RetryAttempts int           `yaml:"retryAttempts"`
	RetryDelay    time.Duration `yaml:"retryDelay"`
	RateLimit     float64       `yaml:"rateLimit"`

	// Budget tolerance ratios: slack allowed above a strict cap when
	// filtering candidates, e.g. 0.1 = 10%.
	NightlyTolerance float64 `yaml:"nightlyTolerance"`
	TotalTolerance   float64 `yaml:"totalTolerance"`

	OpenAIModel string `yaml:"openaiModel"`

	ListenAddr     string   `yaml:"listenAddr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

func DefaultConfig() *Config {
	return &Config{
		Currency:      "USD",
		GL:            "ca",
		HL:            "en",
		RetryAttempts: 3,
		RetryDelay:    2 * time.Second,
		RateLimit:     2,
		OpenAIModel:   "gpt-4o-mini",
		ListenAddr:    ":8080",
		AllowedOrigins: []string{
			"http://localhost:3000",
		},
	}
}

// Load builds the config from defaults, an optional YAML file and the
// environment, in that order. It never fails: unreadable files and
// malformed values fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.JWTSecret = os.Getenv("SCOUT_JWT_SECRET")

	if v := os.Getenv("SCOUT_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("SCOUT_GL"); v != "" {
		cfg.GL = v
	}
	if v := os.Getenv("SCOUT_HL"); v != "" {
		cfg.HL = v
	}
	if v := os.Getenv("SCOUT_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryAttempts = n
		}
	}
	if v := os.Getenv("SCOUT_RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.RetryDelay = d
		}
	}
	if v := os.Getenv("SCOUT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	return cfg
}

func configPath() string {
	if p := os.Getenv("SCOUT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "scout", "scout.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
