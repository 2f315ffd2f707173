package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its config file.
const DefaultPath = "espboards.yaml"

// Config holds all espboards configuration.
type Config struct {
	// Output is the generated boards file. Empty writes to stdout.
	Output string `yaml:"output"`

	// Registry is an alternate board registry YAML. Empty uses the built-in one.
	Registry string `yaml:"registry"`

	// TinyUF2 asset fetching
	TinyUF2 TinyUF2Config `yaml:"tinyuf2"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TinyUF2: TinyUF2Config{
			Version:     "0.16.0",
			URLTemplate: DefaultURLTemplate,
			VariantsDir: "variants",
			Timeout:     "60s",
			Variants:    DefaultVariants(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("ESPBOARDS_OUTPUT"); path != "" {
		c.Output = path
	}
	if path := os.Getenv("ESPBOARDS_REGISTRY"); path != "" {
		c.Registry = path
	}
	if v := os.Getenv("TINYUF2_VERSION"); v != "" {
		c.TinyUF2.Version = v
	}
	if tmpl := os.Getenv("TINYUF2_URL_TEMPLATE"); tmpl != "" {
		c.TinyUF2.URLTemplate = tmpl
	}
	if level := os.Getenv("ESPBOARDS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetFetchTimeout returns the per-download timeout as a duration.
func (c *Config) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.TinyUF2.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// GetParallelism returns the fetch worker count. Zero means one per CPU.
func (c *Config) GetParallelism() int {
	if c.TinyUF2.Parallelism > 0 {
		return c.TinyUF2.Parallelism
	}
	return runtime.NumCPU()
}

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TinyUF2.Version) == "" {
		return fmt.Errorf("tinyuf2 version not configured (set tinyuf2.version or TINYUF2_VERSION)")
	}

	for _, placeholder := range []string{"{version}", "{name}"} {
		if !strings.Contains(c.TinyUF2.URLTemplate, placeholder) {
			return fmt.Errorf("tinyuf2 url_template %q is missing %s", c.TinyUF2.URLTemplate, placeholder)
		}
	}

	if c.TinyUF2.Parallelism < 0 {
		return fmt.Errorf("tinyuf2 parallelism must not be negative, got %d", c.TinyUF2.Parallelism)
	}

	for i, v := range c.TinyUF2.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("tinyuf2 variant %d has no name", i)
		}
	}

	if c.Logging.Level != "" {
		validLevel := false
		for _, l := range ValidLogLevels {
			if strings.EqualFold(c.Logging.Level, l) {
				validLevel = true
				break
			}
		}
		if !validLevel {
			return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
		}
	}

	return nil
}
