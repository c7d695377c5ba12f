package config

import "github.com/caarlos0/env/v6"

// EnvPrefix is prepended to every variable name in the Config env tags.
const EnvPrefix = "NUTRICARE_"

// parseEnv overlays Config with NUTRICARE_* environment variables. Unset
// variables leave fields untouched; malformed values panic.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
