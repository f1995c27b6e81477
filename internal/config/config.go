// Package config resolves the small amount of process configuration the
// ambient CLI harness needs — log level/format and a default environment
// seed file — the way the upstream product's internal/config resolves its
// (much larger) Config from flags, environment variables and a config file
// via viper.
package config

import (
	"fmt"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config is the resolved process configuration for the dagrs CLI.
type Config struct {
	// Debug enables debug-level logging.
	Debug bool `mapstructure:"debug"`
	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format"`
	// EnvFile, if set, is a YAML file of key: value pairs used to seed a
	// Dag's Environment before Start.
	EnvFile string `mapstructure:"env_file"`
}

// Load resolves configuration from (in ascending precedence) built-in
// defaults, an optional config file at path, and DAGRS_-prefixed environment
// variables. path may be empty, in which case only defaults and environment
// variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DAGRS")
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("log_format", "text")
	v.SetDefault("env_file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// DefaultStateDir returns the default path of the CLI's log file
// (dagrs/dagrs.log under the XDG state directory), resolved via XDG
// conventions rather than a hard-coded path.
func DefaultStateDir() (string, error) {
	return xdg.StateFile("dagrs/dagrs.log")
}
