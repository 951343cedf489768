// Package config loads the fsutil YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/taigrr/fsutil/internal/fileutil"
	"github.com/taigrr/fsutil/internal/types"
	"gopkg.in/yaml.v3"
)

// Config holds user settings. Zero values fall back to Default.
type Config struct {
	TempPrefix string   `yaml:"temp_prefix"`
	LogLevel   string   `yaml:"log_level"`
	Ignore     []string `yaml:"ignore"`
	Root       string   `yaml:"root"`
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TempPrefix: fileutil.DefaultTempPrefix,
		LogLevel:   "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/fsutil/config.yaml (or the platform
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fsutil", "config.yaml")
}

// Load reads the config at path. A missing file yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %s - %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %s - %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %s - %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	c.TempPrefix = strings.TrimSpace(c.TempPrefix)
	if c.TempPrefix == "" {
		c.TempPrefix = def.TempPrefix
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate checks the log level, the temp prefix and the ignore patterns.
func (c Config) Validate() error {
	var errs []error

	valid := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("log_level %q must be one of %s", c.LogLevel, strings.Join(validLevels, ", ")))
	}

	if strings.ContainsRune(c.TempPrefix, filepath.Separator) || strings.Contains(c.TempPrefix, "/") {
		errs = append(errs, fmt.Errorf("temp_prefix %q must not contain a path separator", c.TempPrefix))
	}

	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			errs = append(errs, fmt.Errorf("ignore pattern %q is not a valid glob", pattern))
		}
	}

	return errors.Join(errs...)
}

// PathFilter returns the path filter configuration for the ignore list.
func (c Config) PathFilter() *types.PathFilterConfig {
	return &types.PathFilterConfig{IgnoredPatterns: c.Ignore}
}
