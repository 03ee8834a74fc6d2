// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig      = "FABIN_CONFIG"
	EnvLogLevel    = "FABIN_LOG_LEVEL"
	EnvLogFormat   = "FABIN_LOG_FORMAT"
	EnvLogFile     = "FABIN_LOG_FILE"
	EnvColor       = "FABIN_COLOR"
	EnvMetricsFile = "FABIN_METRICS_FILE"

	DefaultPath = "fabin.yaml"
)

// envKeys maps environment overrides onto dotted config keys.
var envKeys = []struct{ env, key string }{
	{EnvLogLevel, "log.level"},
	{EnvLogFormat, "log.format"},
	{EnvLogFile, "log.file"},
	{EnvColor, "output.color"},
	{EnvMetricsFile, "metrics.textfile"},
}

type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Shell   ShellConfig   `yaml:"shell" mapstructure:"shell"`
	Graph   GraphConfig   `yaml:"graph" mapstructure:"graph"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"` // console | json
	File       string `yaml:"file" mapstructure:"file"`     // empty = stderr only
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

type OutputConfig struct {
	Color     string `yaml:"color" mapstructure:"color"` // auto | always | never
	Precision int    `yaml:"precision" mapstructure:"precision"`
	Grid      bool   `yaml:"grid" mapstructure:"grid"` // draw routes on the sequence grid
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

type ShellConfig struct {
	Prompt string `yaml:"prompt" mapstructure:"prompt"`
	Banner bool   `yaml:"banner" mapstructure:"banner"`
}

type GraphConfig struct {
	// CacheSize bounds how many sequence graphs stay built. 0 = unbounded.
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Output: OutputConfig{Color: "auto", Precision: 4},
		Shell:  ShellConfig{Prompt: "$ ", Banner: true},
		Graph:  GraphConfig{CacheSize: 64},
	}
}

// Resolve picks the config path: explicit, then $FABIN_CONFIG, then
// ./fabin.yaml. The boolean reports whether the path was given explicitly.
func Resolve(explicit string, getenv func(string) string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if p := getenv(EnvConfig); p != "" {
		return p, false
	}
	return DefaultPath, false
}

// Load reads the config the way Resolve finds it and applies environment
// overrides. A missing file falls back to defaults unless it was named
// explicitly.
func Load(explicit string) (Config, error) {
	return LoadWith(explicit, os.Getenv)
}

// LoadWith is Load with an injectable environment.
func LoadWith(explicit string, getenv func(string) string) (Config, error) {
	path, strict := Resolve(explicit, getenv)

	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist) && !strict:
		// defaults
	default:
		return Config{}, fmt.Errorf("config: %w", err)
	}

	for _, e := range envKeys {
		if v, ok := lookup(getenv, e.env); ok {
			setDotted(raw, e.key, v)
		}
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func lookup(getenv func(string) string, key string) (string, bool) {
	v := strings.TrimSpace(getenv(key))
	return v, v != ""
}

// setDotted writes v at a dotted key, creating intermediate maps. yaml.v3
// decodes nested mappings as map[string]any, so that is what gets created.
func setDotted(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
	ErrInvalidColor  = errors.New("invalid color mode")
)

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("%w %q (want debug|info|warn|error|disabled)", ErrInvalidLevel, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w %q (want console|json)", ErrInvalidFormat, c.Log.Format)
	}
	if err := ValidateColor(c.Output.Color); err != nil {
		return err
	}
	if c.Output.Precision < 0 || c.Output.Precision > 12 {
		return fmt.Errorf("output.precision must be in [0,12], got %d", c.Output.Precision)
	}
	if c.Graph.CacheSize < 0 {
		return fmt.Errorf("graph.cache_size must be >= 0, got %d", c.Graph.CacheSize)
	}
	return nil
}

// ValidateColor checks a --color / output.color value.
func ValidateColor(mode string) error {
	switch strings.ToLower(mode) {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("%w %q (want auto|always|never)", ErrInvalidColor, mode)
}
