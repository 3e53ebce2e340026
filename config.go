package steamlogin

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config defines a public type used by steamlogin APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Login   LoginConfig
	HTTP    HTTPConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

/*
====================================
LOGIN CONFIG
====================================
*/

// LoginConfig defines a public type used by steamlogin APIs.
//
// LoginConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginConfig struct {
	Platform        PlatformType
	Timeout         time.Duration
	MinPollInterval time.Duration
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by steamlogin APIs.
//
// HTTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPConfig struct {
	Client            *http.Client
	RequestTimeout    time.Duration
	FinalizeURL       string
	RedirectURL       string
	SessionCookieName string
}

// EventsConfig defines a public type used by steamlogin APIs.
//
// EventsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by steamlogin APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Login: LoginConfig{
			Platform:        PlatformWebBrowser,
			Timeout:         30 * time.Second,
			MinPollInterval: 1 * time.Second,
		},
		HTTP: HTTPConfig{
			RequestTimeout:    10 * time.Second,
			FinalizeURL:       "https://login.steampowered.com/jwt/finalizelogin",
			RedirectURL:       "https://steamcommunity.com/login/home/?goto=",
			SessionCookieName: "steamLoginSecure",
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Login
	switch c.Login.Platform {
	case PlatformSteamClient, PlatformWebBrowser, PlatformMobileApp:
		// valid
	default:
		return errors.New("Login Platform must be a known platform type")
	}
	if c.Login.Timeout <= 0 {
		return errors.New("Login Timeout must be > 0")
	}
	if c.Login.MinPollInterval <= 0 {
		return errors.New("Login MinPollInterval must be > 0")
	}
	if c.Login.MinPollInterval > c.Login.Timeout {
		return errors.New("Login MinPollInterval must not exceed Login Timeout")
	}

	// HTTP
	if c.HTTP.RequestTimeout < 0 {
		return errors.New("HTTP RequestTimeout must be >= 0")
	}
	if c.HTTP.FinalizeURL == "" {
		return errors.New("HTTP FinalizeURL is required")
	}
	if !strings.HasPrefix(c.HTTP.FinalizeURL, "https://") && !strings.HasPrefix(c.HTTP.FinalizeURL, "http://") {
		return errors.New("HTTP FinalizeURL must be an absolute http(s) URL")
	}
	if c.HTTP.RedirectURL == "" {
		return errors.New("HTTP RedirectURL is required")
	}
	if c.HTTP.SessionCookieName == "" {
		return errors.New("HTTP SessionCookieName is required")
	}

	// Events
	if c.Events.Enabled {
		if c.Events.BufferSize <= 0 {
			return errors.New("Events BufferSize must be > 0 when events are enabled")
		}
	}

	return nil
}
