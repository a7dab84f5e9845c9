// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/njchilds90/polynorm"
	"github.com/njchilds90/polynorm/internal/logging"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP port of the tool server.
	DefaultServerPort = 8080

	// DefaultMaxBodyBytes caps tool-call request bodies (1 MiB).
	DefaultMaxBodyBytes = 1 << 20

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// EnvPrefix prefixes every environment override, e.g. POLYNORM_SERVER_PORT.
	EnvPrefix = "POLYNORM_"

	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = "polynorm.yaml"
)

// Config is the root configuration structure.
type Config struct {
	Log    LogConfig    `koanf:"log"    validate:"required"`
	Server ServerConfig `koanf:"server" validate:"required"`
	Engine EngineConfig `koanf:"engine" validate:"required"`
	Output OutputConfig `koanf:"output" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// LoggerConfig maps the settings onto a logging.Config. The rolling file
// sink is attached only when enabled.
func (c LogConfig) LoggerConfig() logging.Config {
	lc := logging.Config{Level: c.Level, Format: c.Format}
	if c.File.Enabled {
		lc.File = &logging.FileConfig{
			Path:       c.File.Path,
			MaxSizeMB:  c.File.MaxSizeMB,
			MaxBackups: c.File.MaxBackups,
			MaxAgeDays: c.File.MaxAgeDays,
			Compress:   c.File.Compress,
		}
	}
	return lc
}

// ServerConfig contains tool server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"`
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"   validate:"required,min=1"`
}

// Addr is host:port.
func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

// EngineConfig bounds the work done on untrusted expression documents.
type EngineConfig struct {
	MaxDepth int           `koanf:"max_depth" validate:"required,min=1,max=100000"`
	MaxTerms int           `koanf:"max_terms" validate:"required,min=1,max=10000000"`
	Timeout  time.Duration `koanf:"timeout"   validate:"required,min=1ms"`
}

// Limits converts the settings into per-call tool limits.
func (e EngineConfig) Limits() polynorm.Limits {
	return polynorm.Limits{MaxDepth: e.MaxDepth, MaxTerms: e.MaxTerms}
}

// OutputConfig selects how CLI results are printed.
type OutputConfig struct {
	Format string `koanf:"format" validate:"required,oneof=auto table text json"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"log.level":            "info",
		"log.format":           "text",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/polynorm.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"server.host":             "127.0.0.1",
		"server.port":             DefaultServerPort,
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",
		"server.max_body_bytes":   DefaultMaxBodyBytes,

		"engine.max_depth": polynorm.MaxDepth,
		"engine.max_terms": polynorm.DefaultMaxTerms,
		"engine.timeout":   "5s",

		"output.format": "auto",
	}
}

// flagKeys maps CLI flag names onto config keys. Flags not listed are
// ignored by the posflag provider.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"output":     "output.format",
	"host":       "server.host",
	"port":       "server.port",
	"max-depth":  "engine.max_depth",
	"max-terms":  "engine.max_terms",
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Explicitly set CLI flags
//  2. Environment variables (POLYNORM_ prefix)
//  3. Config file (path, or ./polynorm.yaml when path is empty)
//  4. Default values
//
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %q: %w", path, err)
		}
	} else if err := loadFileIfExists(k, DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", DefaultConfigFile, err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey turns SERVER_MAX_BODY_BYTES into server.max_body_bytes: the first
// underscore separates the section, the rest belong to the field name.
// LOG_FILE_* addresses the nested log.file section.
func envKey(s string) string {
	s = strings.ToLower(s)
	section, rest, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	if section == "log" && strings.HasPrefix(rest, "file_") {
		return "log.file." + strings.TrimPrefix(rest, "file_")
	}
	return section + "." + rest
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
