package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// config is the on-disk configuration. Command-line flags override it.
type config struct {
	Output           string   `toml:"output"`
	Backends         []string `toml:"backends"`
	Replay           string   `toml:"replay"`
	LogLevel         string   `toml:"log_level"`
	Color            bool     `toml:"color"`
	QueryConcurrency int      `toml:"query_concurrency"`
	ShaderCheck      bool     `toml:"shader_check"`
}

func defaultConfig() config {
	return config{
		Output:           "table",
		LogLevel:         "warn",
		Color:            true,
		QueryConcurrency: 4,
		ShaderCheck:      true,
	}
}

// defaultConfigPath is $XDG_CONFIG_HOME/gpuinfo/config.toml, or the
// platform equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gpuinfo", "config.toml")
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.WithHint(
			errors.Wrapf(err, "config %s", path),
			"keys: output, backends, replay, log_level, color, query_concurrency, shader_check",
		)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Newf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.WithHint(
			errors.Newf("unknown log level %q", s),
			"valid levels: debug, info, warn, error",
		)
	}
	return lvl, nil
}
