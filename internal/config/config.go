package config

import (
	"os"
	"strconv"
)

// Config holds the base server configuration.
type Config struct {
	Host string
	Port string

	// Spotify application credentials. Both may be empty when every caller
	// supplies its own bearer token via the ?token= query parameter.
	SpotifyClientID     string
	SpotifyClientSecret string

	// Upstream base URLs, overridable for tests and proxies.
	SpotifyAccountsURL string
	SpotifyAPIURL      string

	// DefaultMarket scopes catalog availability when the caller does not
	// pass an explicit ?market= code. Empty means unscoped.
	DefaultMarket string

	// Per-call upstream timeouts in milliseconds.
	TokenTimeoutMs int
	FetchTimeoutMs int
	ProbeTimeoutMs int

	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	return Config{
		Host:                envString("HOST", "0.0.0.0"),
		Port:                envString("PORT", "9000"),
		SpotifyClientID:     envString("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: envString("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyAccountsURL:  envString("SPOTIFY_ACCOUNTS_URL", "https://accounts.spotify.com"),
		SpotifyAPIURL:       envString("SPOTIFY_API_URL", "https://api.spotify.com"),
		DefaultMarket:       envString("DEFAULT_MARKET", ""),
		TokenTimeoutMs:      envInt("SPOTIFY_TOKEN_TIMEOUT_MS", 20000),
		FetchTimeoutMs:      envInt("SPOTIFY_FETCH_TIMEOUT_MS", 30000),
		ProbeTimeoutMs:      envInt("SPOTIFY_PROBE_TIMEOUT_MS", 20000),
		LogLevel:            envString("LOG_LEVEL", "info"),
	}, nil
}

// HasCredentials reports whether an app-level token exchange is possible.
func (c Config) HasCredentials() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

func envString(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
