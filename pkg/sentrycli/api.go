package sentrycli

import (
	"errors"
)

const DefaultURL = "https://sentry.io/"

var ErrAuthRequired = errors.New("no authentication method provided; set either an auth token or an API key")

// APIConfig holds the Sentry server settings handed to sentry-cli through its environment.
type APIConfig struct {
	URL       string
	AuthToken string
	APIKey    string
	Org       string
	Project   string
	LogLevel  string
}

func (c APIConfig) Validate() error {
	if len(c.AuthToken) == 0 && len(c.APIKey) == 0 {
		return ErrAuthRequired
	}
	return nil
}

// Environ returns the SENTRY_* variables for all non-empty settings.
// An auth token takes precedence over the legacy API key.
func (c APIConfig) Environ() []string {
	env := make([]string, 0, 5)

	add := func(key, value string) {
		if len(value) > 0 {
			env = append(env, key+"="+value)
		}
	}

	add("SENTRY_URL", c.URL)
	add("SENTRY_LOG_LEVEL", c.LogLevel)
	if len(c.AuthToken) > 0 {
		add("SENTRY_AUTH_TOKEN", c.AuthToken)
	} else {
		add("SENTRY_API_KEY", c.APIKey)
	}
	add("SENTRY_ORG", c.Org)
	add("SENTRY_PROJECT", c.Project)

	return env
}
