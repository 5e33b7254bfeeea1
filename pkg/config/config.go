// Package config loads the fondod server configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// Config is the top-level server configuration.
type Config struct {
	// Listen is the address the REST API binds to.
	Listen string `yaml:"listen"`

	// DataFile is the path of the persisted document. Empty means the
	// document lives in memory only and vanishes on exit.
	DataFile string `yaml:"dataFile"`

	// SeedFile optionally replaces the embedded seed dataset.
	SeedFile string `yaml:"seedFile"`

	Log      LogConfig      `yaml:"log"`
	Notifier NotifierConfig `yaml:"notifier"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// NotifierConfig wires the EmailJS notifier. Disabled by default; with
// the notifier off, subscription notifications are recorded in the
// document but never dispatched.
type NotifierConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Endpoint   string   `yaml:"endpoint"`
	ServiceID  string   `yaml:"serviceId"`
	TemplateID string   `yaml:"templateId"`
	UserID     string   `yaml:"userId"`
	Timeout    Duration `yaml:"timeout"`
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "10s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":4290",
		DataFile: "fondod.data.json",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file and merges it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if len(data) == 0 {
		return cfg, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address cannot be empty")
	}
	if c.Notifier.Enabled && c.Notifier.ServiceID == "" {
		return errors.New("notifier is enabled but serviceId is empty")
	}
	return nil
}

// Starter is the commented config written by "fondod init".
const Starter = `# fondod configuration
listen: ":4290"

# Where the document is persisted. Leave empty for in-memory only.
dataFile: "fondod.data.json"

# Optional seed dataset replacing the embedded one.
# seedFile: "seed.json"

log:
  level: info   # debug, info, warn, error
  format: text  # text or json

# EmailJS notification dispatch for fund subscriptions.
notifier:
  enabled: false
  # serviceId: ""
  # templateId: ""
  # userId: ""
  # timeout: 10s
`
