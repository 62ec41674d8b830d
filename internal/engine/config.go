package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeBaseURL  string   // origin for watch pages and Innertube, no trailing slash
	CaptionLangs    []string // preferred caption languages, most wanted first
	FetchTimeout    time.Duration
	MaxCaptionBytes int64
	HTTPClient      *http.Client
}

// DefaultConfig returns the configuration used when main supplies nothing.
func DefaultConfig() Config {
	return Config{
		YouTubeBaseURL:  "https://www.youtube.com",
		CaptionLangs:    []string{"en"},
		FetchTimeout:    30 * time.Second,
		MaxCaptionBytes: 2 * 1024 * 1024,
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
	}
}

var cfg = DefaultConfig()

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero fields fall back to DefaultConfig.
func Init(c Config) {
	d := DefaultConfig()
	if c.YouTubeBaseURL == "" {
		c.YouTubeBaseURL = d.YouTubeBaseURL
	}
	if len(c.CaptionLangs) == 0 {
		c.CaptionLangs = d.CaptionLangs
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.MaxCaptionBytes <= 0 {
		c.MaxCaptionBytes = d.MaxCaptionBytes
	}
	if c.HTTPClient == nil {
		c.HTTPClient = d.HTTPClient
	}
	cfg = c
	Cfg = &cfg
}
