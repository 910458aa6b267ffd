package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables read by Load.
// RESTCLIENT_API_BASEURL maps to api.baseurl, RESTCLIENT_TIMEOUT_CONNECT
// to timeout.connect, and so on.
const EnvPrefix = "RESTCLIENT_"

// Load builds the configuration from defaults overlaid with environment
// variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// Convert RESTCLIENT_UPPER_CASE to lower.case for koanf
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", ".")
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"api.useragent":   "go-restclient/1.0",
		"api.maxattempts": 3,

		"timeout.connect": "3s",
		"timeout.read":    "8s",

		"retry.basedelay": "500ms",
		"retry.maxdelay":  "4s",
		"retry.aftercap":  "10s",

		"log.level":             "info",
		"log.pretty":            false,
		"log.payloads.enabled":  false,
		"log.payloads.maxbytes": 1024,
	}
}
