// Package config resolves runtime settings from flags, environment
// variables and defaults, in that order of precedence.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gitmcp/server/internal/observability"
)

// EnvPrefix prefixes every environment variable the server reads, except
// the conventional GITHUB_* and PORT aliases.
const EnvPrefix = "GITMCP"

const (
	keyTransport       = "transport"
	keyHost            = "host"
	keyPort            = "port"
	keyMaxPortAttempts = "max-port-attempts"
	keyDebug           = "debug"
	keyToken           = "github-token"
	keyAPIURL          = "github-api-url"
	keyTimeout         = "timeout"
	keyLang            = "lang"
	keyLokiURL         = "loki-url"
	keyLokiUser        = "loki-user"
	keyLokiAPIKey      = "loki-api-key"
	keyLokiApp         = "loki-app"
	keyInstance        = "instance-id"
)

type Config struct {
	Transport       string
	Host            string
	Port            int
	MaxPortAttempts int
	Debug           bool
	GitHubToken     string
	GitHubAPIURL    string
	Timeout         time.Duration
	Lang            string
	Loki            observability.LokiConfig
}

// BindFlags registers every setting on fs. Flag defaults mirror the
// viper defaults so --help shows real values.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(keyTransport, DefaultTransport, "transport to serve: stdio or sse")
	fs.String(keyHost, DefaultHost, "interface to bind in sse mode (empty = all)")
	fs.Int(keyPort, DefaultPort, "port to bind in sse mode; the next free port is used if taken")
	fs.Int(keyMaxPortAttempts, DefaultMaxPortAttempts, "consecutive ports to try before giving up")
	fs.Bool(keyDebug, false, "verbose logging of session lifecycle and message bodies")
	fs.String(keyToken, "", "GitHub token forwarded to the API")
	fs.String(keyAPIURL, DefaultAPIURL, "GitHub API base URL (https://<host>/api/v3 for Enterprise Server)")
	fs.Duration(keyTimeout, DefaultTimeout, "timeout for a single upstream request")
	fs.String(keyLang, DefaultLang, "language for tool descriptions (en-US, ja-JP)")
	fs.String(keyLokiURL, "", "Grafana Loki base URL for remote logs")
	fs.String(keyLokiUser, "", "Grafana Loki user")
	fs.String(keyLokiAPIKey, "", "Grafana Loki API key")
	fs.String(keyLokiApp, "gitmcp", "app label for Loki streams")
	fs.String(keyInstance, "local", "instance label for Loki streams")
}

// Load resolves a Config. fs may be nil, in which case only environment
// and defaults apply.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	aliases := map[string][]string{
		keyToken:      {"GITMCP_GITHUB_TOKEN", "GITHUB_TOKEN", "GITHUB_PERSONAL_ACCESS_TOKEN"},
		keyAPIURL:     {"GITMCP_GITHUB_API_URL", "GITHUB_API_URL"},
		keyPort:       {"GITMCP_PORT", "PORT"},
		keyDebug:      {"GITMCP_DEBUG", "DEBUG"},
		keyLokiURL:    {"GITMCP_LOKI_URL", "GRAFANA_LOKI_URL"},
		keyLokiUser:   {"GITMCP_LOKI_USER", "GRAFANA_LOKI_USER"},
		keyLokiAPIKey: {"GITMCP_LOKI_API_KEY", "GRAFANA_LOKI_API_KEY"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}

	cfg := &Config{
		Transport:       strings.ToLower(strings.TrimSpace(v.GetString(keyTransport))),
		Host:            v.GetString(keyHost),
		Port:            v.GetInt(keyPort),
		MaxPortAttempts: v.GetInt(keyMaxPortAttempts),
		Debug:           v.GetBool(keyDebug),
		GitHubToken:     v.GetString(keyToken),
		GitHubAPIURL:    v.GetString(keyAPIURL),
		Timeout:         durationOrSeconds(v, keyTimeout),
		Lang:            v.GetString(keyLang),
		Loki: observability.LokiConfig{
			URL:      v.GetString(keyLokiURL),
			Username: v.GetString(keyLokiUser),
			APIKey:   v.GetString(keyLokiAPIKey),
			App:      v.GetString(keyLokiApp),
			Instance: v.GetString(keyInstance),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// durationOrSeconds reads key as a duration. A bare integer such as
// GITMCP_TIMEOUT=30 is taken as seconds.
func durationOrSeconds(v *viper.Viper, key string) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil {
		return time.Duration(n) * time.Second
	}
	return v.GetDuration(key)
}
