package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the NutriCare CLI.
type Config struct {
	// ServerBaseURL is the REST API root, including the /api prefix.
	ServerBaseURL string `env:"SERVER_BASE_URL"`

	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"`
	CreateTimeout     time.Duration `env:"CREATE_TIMEOUT"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT"`

	// AnalysisConcurrency bounds the per-photo analysis fan-out.
	AnalysisConcurrency int `env:"ANALYSIS_CONCURRENCY"`

	DatabasePath  string `env:"DATABASE_PATH"`
	DownloadDir   string `env:"DOWNLOAD_DIR"`
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 60 * time.Second
	c.CreateTimeout = 10 * time.Second
	c.GenerationTimeout = 180 * time.Second
	c.AnalysisConcurrency = 4
	c.DatabasePath = "nutricare.db"
	c.DownloadDir = "downloads"
	c.YouTubeAPIKey = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server base url %q", c.ServerBaseURL)
	}
	if c.RequestTimeout <= 0 || c.CreateTimeout <= 0 || c.GenerationTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.AnalysisConcurrency < 1 {
		return errors.New("analysis concurrency must be at least 1")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
