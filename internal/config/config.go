package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRequestInterval = "0s"
	DefaultScanInterval    = "15m"
	DefaultLogLevel        = "info"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the uptimed configuration
type Config struct {
	TargetsPath     string        `yaml:"targets_path"`
	RequestInterval Duration      `yaml:"request_interval"`
	ScanInterval    Duration      `yaml:"scan_interval"`
	CustomHeaders   []Header      `yaml:"custom_headers"`
	Notifications   Notifications `yaml:"notifications"`
	Log             Log           `yaml:"log"`
}

// Header is an extra HTTP header sent with every probe. Names may repeat.
type Header struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Notifications selects the alert sinks
type Notifications struct {
	Desktop      bool   `yaml:"desktop"`
	Console      bool   `yaml:"console"`
	SlackWebhook string `yaml:"slack_webhook,omitempty"`
}

// Log configures the process logger
type Log struct {
	Level string `yaml:"level,omitempty"`
	Dir   string `yaml:"dir,omitempty"` // empty disables the rotating log file
}

// GetConfigPath returns the path to the default config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "uptimed", "config.yml"), nil
}

// DefaultConfig returns a config populated with defaults
func DefaultConfig() *Config {
	requestInterval, _ := ParseDuration(DefaultRequestInterval)
	scanInterval, _ := ParseDuration(DefaultScanInterval)

	return &Config{
		RequestInterval: Duration(requestInterval),
		ScanInterval:    Duration(scanInterval),
		Notifications: Notifications{
			Desktop: true,
			Console: true,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// InitConfig writes the example configuration to path
func InitConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(ExampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadConfig reads and parses the config file at path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	for i := range cfg.CustomHeaders {
		cfg.CustomHeaders[i].Value = ResolveEnv(cfg.CustomHeaders[i].Value)
	}
	cfg.Notifications.SlackWebhook = ResolveEnv(cfg.Notifications.SlackWebhook)

	return cfg, nil
}

// SaveConfig writes the config back to path
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every problem with the config at once
func (c *Config) Validate() error {
	var errs error

	if err := checkReadableFile(c.TargetsPath); err != nil {
		errs = multierr.Append(errs, err)
	}

	if c.ScanInterval <= c.RequestInterval {
		errs = multierr.Append(errs, fmt.Errorf("scan interval (%s) must be greater than request interval (%s)",
			c.ScanInterval, c.RequestInterval))
	}

	for i, h := range c.CustomHeaders {
		if strings.TrimSpace(h.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("custom header #%d has no name", i+1))
		}
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("log level: %w", err))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// checkReadableFile makes sure the targets file exists, is a regular file and has a read bit set
func checkReadableFile(path string) error {
	if path == "" {
		return errors.New("targets_path is not set")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("the specified file does not exist: %s", path)
		}
		return fmt.Errorf("failed to retrieve metadata of %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a file: %s", path)
	}

	if info.Mode().Perm()&0444 == 0 {
		return fmt.Errorf("file is not readable: %s", path)
	}

	return nil
}

// RequestPause returns the pause between two probes of the same scan
func (c *Config) RequestPause() time.Duration {
	return c.RequestInterval.Std()
}

// ScanEvery returns the minimum gap between two scan starts
func (c *Config) ScanEvery() time.Duration {
	return c.ScanInterval.Std()
}

var envPlaceholder = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ResolveEnv replaces ${VAR_NAME} placeholders with their environment values.
// Any other $ or } is left as written.
func ResolveEnv(value string) string {
	return envPlaceholder.ReplaceAllStringFunc(value, func(token string) string {
		return os.Getenv(token[2 : len(token)-1])
	})
}

// ExampleConfig is written by `uptimed init` and printed on first run
const ExampleConfig = `# uptimed configuration

# Path to the file containing target URLs, one per line.
targets_path: "/path/to/targets"

# How much time between requests?
request_interval: 0s

# How much time between one complete scan and the next one?
scan_interval: 15m

# List of custom HTTP headers and values to use in every request.
# ${VAR} placeholders are read from the environment.
custom_headers:
  - name: "X-MyHeader"
    value: "my-value"
  - name: "Authorization"
    value: "Bearer ${UPTIMED_TOKEN}"

# Where alerts go when a target is down.
notifications:
  desktop: true
  console: true
  slack_webhook: ""

log:
  level: info
  dir: ""
`
