package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

const (
	DefaultTransport       = TransportStdio
	DefaultHost            = ""
	DefaultPort            = 3000
	DefaultMaxPortAttempts = 10
	DefaultAPIURL          = "https://api.github.com"
	DefaultTimeout         = 30 * time.Second
	// MinTimeout is the shortest upstream timeout accepted.
	MinTimeout  = time.Second
	DefaultLang = "en-US"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyTransport, DefaultTransport)
	v.SetDefault(keyHost, DefaultHost)
	v.SetDefault(keyPort, DefaultPort)
	v.SetDefault(keyMaxPortAttempts, DefaultMaxPortAttempts)
	v.SetDefault(keyDebug, false)
	v.SetDefault(keyAPIURL, DefaultAPIURL)
	v.SetDefault(keyTimeout, DefaultTimeout)
	v.SetDefault(keyLang, DefaultLang)
	v.SetDefault(keyLokiApp, "gitmcp")
	v.SetDefault(keyInstance, "local")
}
