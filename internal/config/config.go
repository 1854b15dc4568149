// Package config loads pawtrail configuration from defaults, an optional
// YAML file, and PAWTRAIL_* environment variables, in that order of
// precedence (later overrides earlier).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Listen   string `koanf:"listen"`
	DBPath   string `koanf:"db_path"`
	DemoData bool   `koanf:"demo_data"`

	Log    LogConfig    `koanf:"log"`
	Backup BackupConfig `koanf:"backup"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type BackupConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Dir        string        `koanf:"dir"`
	Passphrase string        `koanf:"passphrase"`
	Interval   time.Duration `koanf:"interval"`
	Keep       int           `koanf:"keep"`
}

func defaults() map[string]any {
	return map[string]any{
		"listen":          ":8080",
		"db_path":         "pawtrail.db",
		"demo_data":       true,
		"log.level":       "info",
		"log.format":      "text",
		"backup.enabled":  false,
		"backup.dir":      "backups",
		"backup.interval": "24h",
		"backup.keep":     7,
	}
}

// Load reads configuration. path may be empty; a missing file at an
// explicitly given path is an error, so typos don't silently run on
// defaults.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Double underscore nests: PAWTRAIL_BACKUP__DIR -> backup.dir,
	// PAWTRAIL_DB_PATH -> db_path.
	err := k.Load(env.Provider("PAWTRAIL_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "PAWTRAIL_")), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
