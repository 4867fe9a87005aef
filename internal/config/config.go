// Package config loads settings from defaults, an optional YAML file,
// FLASHDECK_ environment variables and command-line flags, in that order of
// precedence.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/conorfennell/flashdeck/internal/validate"
)

// EnvPrefix is stripped from environment variables. A double underscore
// separates nesting levels, so FLASHDECK_DATABASE__DSN sets database.dsn.
const EnvPrefix = "FLASHDECK_"

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
	Review   ReviewConfig   `koanf:"review"`
	Import   ImportConfig   `koanf:"import"`
	UI       UIConfig       `koanf:"ui"`
}

type DatabaseConfig struct {
	DSN string `koanf:"dsn" validate:"required"`
}

type LogConfig struct {
	Level   string `koanf:"level" validate:"oneof=debug info warn error"`
	Format  string `koanf:"format" validate:"oneof=text json"`
	NoColor bool   `koanf:"no_color"`
}

type AuthConfig struct {
	Enabled bool `koanf:"enabled"`
}

type ReviewConfig struct {
	Shuffle bool `koanf:"shuffle"`
}

type ImportConfig struct {
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

type UIConfig struct {
	ClearScreen bool `koanf:"clear_screen"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Database: DatabaseConfig{DSN: "flashdeck.db"},
		Log:      LogConfig{Level: "warn", Format: "text"},
		Auth:     AuthConfig{Enabled: true},
		Review:   ReviewConfig{Shuffle: true},
		Import:   ImportConfig{ReposDir: ".flashdeck/repos"},
		UI:       UIConfig{ClearScreen: false},
	}
}

// flagKeys maps command-line flag names to config keys. Other flags are not
// configuration.
var flagKeys = map[string]string{
	"db":        "database.dsn",
	"log-level": "log.level",
}

// Load builds the configuration. path may be empty, in which case no file is
// read. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, "load flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := validate.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
