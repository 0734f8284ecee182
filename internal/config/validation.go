package config

import (
	"net/url"

	"github.com/go-faster/errors"
)

// Validate rejects settings the server cannot start with. A missing token
// is allowed: public endpoints work unauthenticated.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE:
	default:
		return errors.Errorf("invalid transport %q: must be %q or %q", c.Transport, TransportStdio, TransportSSE)
	}

	if c.Port < 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.MaxPortAttempts < 1 {
		return errors.Errorf("max-port-attempts must be at least 1, got %d", c.MaxPortAttempts)
	}
	if c.Timeout < MinTimeout {
		return errors.Errorf("timeout must be at least %s, got %s", MinTimeout, c.Timeout)
	}

	u, err := url.Parse(c.GitHubAPIURL)
	if err != nil {
		return errors.Wrap(err, "invalid github-api-url")
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return errors.Errorf("invalid github-api-url %q", c.GitHubAPIURL)
	}
	return nil
}
