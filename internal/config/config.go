// Package config persists user defaults in a TOML file under the XDG config directory.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config keys.
const (
	KeyOutputDir  = "output-dir"
	KeyClipLength = "clip-length"
	KeyCount      = "count"
)

// Environment variable fallbacks.
const (
	EnvOutputDir = "SAMPLECLIPS_OUTPUT_DIR"
)

const (
	appDirName = "sampleclips"
	fileName   = "config.toml"
)

var (
	// ErrUnknownKey indicates a key that is not a supported setting.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a value that cannot be stored under its key.
	ErrInvalidValue = errors.New("invalid config value")
)

// Config holds user configuration loaded from ~/.config/sampleclips/config.toml.
// Zero values mean "not set".
type Config struct {
	OutputDir  string  `toml:"output-dir,omitempty"`
	ClipLength float64 `toml:"clip-length,omitempty"`
	Count      int     `toml:"count,omitempty"`
}

// Keys returns the supported keys in display order.
func Keys() []string {
	return []string{KeyOutputDir, KeyClipLength, KeyCount}
}

// Set parses value and stores it under key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyOutputDir:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, key)
		}
		c.OutputDir = value
	case KeyClipLength:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of seconds, got %q", ErrInvalidValue, key, value)
		}
		c.ClipLength = v
	case KeyCount:
		v, err := strconv.Atoi(value)
		if err != nil || v < 1 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidValue, key, value)
		}
		c.Count = v
	default:
		return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns the value stored under key, or "" when it is not set.
func (c Config) Get(key string) (string, error) {
	switch key {
	case KeyOutputDir:
		return c.OutputDir, nil
	case KeyClipLength:
		if c.ClipLength == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.ClipLength, 'f', -1, 64), nil
	case KeyCount:
		if c.Count == 0 {
			return "", nil
		}
		return strconv.Itoa(c.Count), nil
	default:
		return "", fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
}

// Values returns every set key with its value.
func (c Config) Values() map[string]string {
	out := make(map[string]string)
	for _, key := range Keys() {
		if v, _ := c.Get(key); v != "" {
			out[key] = v
		}
	}
	return out
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/sampleclips.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, fileName), nil
}

// Read returns the values stored in the config file only.
// A missing file yields an empty Config.
func Read() (Config, error) {
	p, err := path()
	if err != nil {
		return Config{}, err
	}
	return readFile(p)
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks.
// Returns an empty Config if the file doesn't exist (not an error).
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return cfg, err
	}

	// Environment variable fallback (only if not set in config).
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv(EnvOutputDir)
	}
	return cfg, nil
}

// readFile decodes a TOML config file.
func readFile(p string) (Config, error) {
	var cfg Config

	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", p, err)
	}
	return cfg, nil
}

// Save validates value and writes it under key to the config file.
// Creates the config directory and file if they don't exist.
// Other keys are preserved; comments are not.
func Save(key, value string) error {
	p, err := path()
	if err != nil {
		return err
	}

	cfg, err := readFile(p)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	return writeFile(p, cfg)
}

// writeFile encodes cfg as TOML to p.
func writeFile(p string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	// #nosec G306 -- config file with standard permissions
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key is not set.
func Get(key string) (string, error) {
	cfg, err := Read()
	if err != nil {
		return "", err
	}
	return cfg.Get(key)
}

// List returns all values set in the config file.
func List() (map[string]string, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	return cfg.Values(), nil
}

// EnsureOutputDir checks that d is usable as an output directory,
// creating it when missing.
func EnsureOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("output-dir cannot be empty")
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
				return fmt.Errorf("cannot create directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", d)
	}

	// Check if writable by attempting to create a temp file.
	probe, err := os.CreateTemp(d, ".sampleclips-write-test-*")
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
