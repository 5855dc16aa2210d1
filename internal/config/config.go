package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var (
	ErrMissingAPIBaseURL  = errors.New("API base URL is required")
	ErrInvalidPlayback    = errors.New("invalid playback mode")
	ErrUnsupportedLocale  = errors.New("unsupported language")
	ErrInvalidRateSetting = errors.New("invalid upstream rate limit")
)

// PlaybackMode selects how the modal player gets its media.
type PlaybackMode string

const (
	// PlaybackEmbed embeds the YouTube player by video id.
	PlaybackEmbed PlaybackMode = "embed"
	// PlaybackStream resolves a direct stream URL through the download endpoint.
	PlaybackStream PlaybackMode = "stream"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL        string
	Port              string
	PlaybackMode      PlaybackMode
	ShowActions       bool
	InitialQuery      string
	Language          string
	AllowedOrigins    []string
	SessionTTL        time.Duration
	UpstreamRateLimit float64
	UpstreamBurst     int
	LogLevel          slog.Level
}

// fileConfig mirrors Config for the optional TOML file.
type fileConfig struct {
	APIBaseURL        string   `toml:"api_base_url"`
	Port              string   `toml:"port"`
	PlaybackMode      string   `toml:"playback_mode"`
	ShowActions       *bool    `toml:"show_actions"`
	InitialQuery      *string  `toml:"initial_query"`
	Language          string   `toml:"language"`
	AllowedOrigins    []string `toml:"allowed_origins"`
	SessionTTL        string   `toml:"session_ttl"`
	UpstreamRateLimit float64  `toml:"upstream_rate_limit"`
	UpstreamBurst     int      `toml:"upstream_burst"`
	LogLevel          string   `toml:"log_level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:           "8080",
		PlaybackMode:   PlaybackEmbed,
		ShowActions:    true,
		InitialQuery:   "popular music",
		Language:       "en",
		AllowedOrigins: []string{"http://localhost:3000"},
		SessionTTL:     24 * time.Hour,
		UpstreamBurst:  1,
		LogLevel:       slog.LevelInfo,
	}
}

// Load loads the configuration from the optional TOML file named by
// YTWATCH_CONFIG and then from environment variables
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("YTWATCH_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.APIBaseURL != "" {
		c.APIBaseURL = fc.APIBaseURL
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.PlaybackMode != "" {
		c.PlaybackMode = PlaybackMode(fc.PlaybackMode)
	}
	if fc.ShowActions != nil {
		c.ShowActions = *fc.ShowActions
	}
	if fc.InitialQuery != nil {
		c.InitialQuery = *fc.InitialQuery
	}
	if fc.Language != "" {
		c.Language = fc.Language
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.SessionTTL != "" {
		ttl, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return fmt.Errorf("invalid session_ttl: %w", err)
		}
		c.SessionTTL = ttl
	}
	if fc.UpstreamRateLimit != 0 {
		c.UpstreamRateLimit = fc.UpstreamRateLimit
	}
	if fc.UpstreamBurst != 0 {
		c.UpstreamBurst = fc.UpstreamBurst
	}
	if fc.LogLevel != "" {
		if err := c.LogLevel.UnmarshalText([]byte(fc.LogLevel)); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("PLAYBACK_MODE"); v != "" {
		c.PlaybackMode = PlaybackMode(strings.ToLower(v))
	}
	if v := os.Getenv("SHOW_ACTIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SHOW_ACTIONS: %w", err)
		}
		c.ShowActions = b
	}
	// An explicitly empty INITIAL_QUERY disables the search on first load.
	if v, ok := os.LookupEnv("INITIAL_QUERY"); ok {
		c.InitialQuery = strings.TrimSpace(v)
	}
	if v := os.Getenv("LANGUAGE"); v != "" {
		c.Language = strings.ToLower(v)
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}
	if v := os.Getenv("UPSTREAM_RATE_LIMIT"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRateSetting, err)
		}
		c.UpstreamRateLimit = n
	}
	if v := os.Getenv("UPSTREAM_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: UPSTREAM_BURST: %v", ErrInvalidRateSetting, err)
		}
		c.UpstreamBurst = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("%w: API_BASE_URL environment variable is not set", ErrMissingAPIBaseURL)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	switch c.PlaybackMode {
	case PlaybackEmbed, PlaybackStream:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPlayback, c.PlaybackMode)
	}
	switch c.Language {
	case "en", "fr":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, c.Language)
	}
	if c.UpstreamRateLimit < 0 || c.UpstreamBurst < 1 {
		return fmt.Errorf("%w: limit=%v burst=%d", ErrInvalidRateSetting, c.UpstreamRateLimit, c.UpstreamBurst)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
