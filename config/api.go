package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "http://localhost:5000/api"
	defaultAPITimeout = 10 * time.Second
	maxAPITimeout     = 2 * time.Minute
)

// APIConfig contains the bookstore backend connection settings.
type APIConfig struct {
	// BaseURL is the root of the REST API; resource paths are appended to it.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds a single request/response round trip.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"bookstore-admin"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = defaultAPIBaseURL
	}
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.Timeout > maxAPITimeout {
		a.Timeout = maxAPITimeout
	}
	a.UserAgent = strings.TrimSpace(a.UserAgent)
	if a.UserAgent == "" {
		a.UserAgent = "bookstore-admin"
	}
}
