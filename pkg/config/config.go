package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for siscraper
type Config struct {
	// Social Insight credentials
	SocialInsight SocialInsightConfig `yaml:"social_insight" json:"social_insight"`

	// Fetch pacing and readiness settings
	Fetch FetchConfig `yaml:"fetch" json:"fetch"`

	// Browser session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Cache storage settings
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Report output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SocialInsightConfig holds the Social Insight account credentials.
// Both values are optional here; when empty the credential store chain
// (keyring, encrypted file, legacy dotfiles, prompt) supplies them.
type SocialInsightConfig struct {
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password"`
}

// FetchConfig holds pacing and chart-readiness configuration
type FetchConfig struct {
	// RequestInterval is the fixed pause before each remote navigation
	RequestInterval Duration `yaml:"request_interval" json:"request_interval"`
	// SettleTimeout bounds the poll for rendered charts on a day page
	SettleTimeout Duration `yaml:"settle_timeout" json:"settle_timeout"`
	// PollInterval is the delay between chart-readiness polls
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval"`
	// LoginTimeout bounds the login form submission round trip
	LoginTimeout Duration `yaml:"login_timeout" json:"login_timeout"`
	// NavigationTimeout bounds a single page navigation
	NavigationTimeout Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
}

// BrowserConfig holds browser session configuration
type BrowserConfig struct {
	Headless  bool   `yaml:"headless" json:"headless"`
	ExecPath  string `yaml:"exec_path" json:"exec_path"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	NoSandbox bool   `yaml:"no_sandbox" json:"no_sandbox"`
}

// StorageConfig holds cache directory configuration.
// SaveDir, when set, is used verbatim; otherwise artifacts go to
// BaseDir/SI_<keyword>/csv (BaseDir empty means the working directory).
type StorageConfig struct {
	SaveDir string `yaml:"save_dir" json:"save_dir"`
	BaseDir string `yaml:"base_dir" json:"base_dir"`
}

// OutputConfig holds report output configuration
type OutputConfig struct {
	SummaryTable    bool `yaml:"summary_table" json:"summary_table"`
	WriteRunSummary bool `yaml:"write_run_summary" json:"write_run_summary"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
}

// Duration wraps time.Duration so YAML files can carry values like
// "2s" or "500ms" instead of raw nanosecond integers
type Duration time.Duration

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML renders the duration in its string form
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML parses durations from their string form
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SocialInsight: SocialInsightConfig{},
		Fetch: FetchConfig{
			RequestInterval:   Duration(2 * time.Second),
			SettleTimeout:     Duration(15 * time.Second),
			PollInterval:      Duration(500 * time.Millisecond),
			LoginTimeout:      Duration(45 * time.Second),
			NavigationTimeout: Duration(30 * time.Second),
		},
		Browser: BrowserConfig{
			Headless:  true,
			ExecPath:  "",
			UserAgent: "",
			NoSandbox: false,
		},
		Storage: StorageConfig{
			SaveDir: "",
			BaseDir: "",
		},
		Output: OutputConfig{
			SummaryTable:    true,
			WriteRunSummary: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "",
		},
	}
}

// CacheDir resolves the cache directory for a keyword: an explicit
// SaveDir wins, otherwise SI_<keyword>/csv under BaseDir
func (c *Config) CacheDir(keyword string) string {
	if c.Storage.SaveDir != "" {
		return c.Storage.SaveDir
	}
	return filepath.Join(c.Storage.BaseDir, fmt.Sprintf("SI_%s", keyword), "csv")
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if email := os.Getenv("SISCRAPER_EMAIL"); email != "" {
		c.SocialInsight.Email = email
	}
	if password := os.Getenv("SISCRAPER_PASSWORD"); password != "" {
		c.SocialInsight.Password = password
	}

	if saveDir := os.Getenv("SISCRAPER_SAVE_DIR"); saveDir != "" {
		c.Storage.SaveDir = saveDir
	}
	if baseDir := os.Getenv("SISCRAPER_BASE_DIR"); baseDir != "" {
		c.Storage.BaseDir = baseDir
	}

	if interval := os.Getenv("SISCRAPER_REQUEST_INTERVAL"); interval != "" {
		if v, err := time.ParseDuration(interval); err == nil && v > 0 {
			c.Fetch.RequestInterval = Duration(v)
		}
	}
	if settle := os.Getenv("SISCRAPER_SETTLE_TIMEOUT"); settle != "" {
		if v, err := time.ParseDuration(settle); err == nil && v > 0 {
			c.Fetch.SettleTimeout = Duration(v)
		}
	}

	if headless := os.Getenv("SISCRAPER_HEADLESS"); headless != "" {
		c.Browser.Headless = strings.ToLower(headless) != "false"
	}
	if execPath := os.Getenv("SISCRAPER_CHROME_PATH"); execPath != "" {
		c.Browser.ExecPath = execPath
	}

	if logLevel := os.Getenv("SISCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("SISCRAPER_LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".siscraper.yaml",
		".siscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "siscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "siscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".siscraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".siscraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Fetch.RequestInterval <= 0 {
		errs = append(errs, errors.New("request interval must be positive"))
	}
	if c.Fetch.SettleTimeout <= 0 {
		errs = append(errs, errors.New("settle timeout must be positive"))
	}
	if c.Fetch.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.Fetch.PollInterval >= c.Fetch.SettleTimeout && c.Fetch.SettleTimeout > 0 {
		errs = append(errs, errors.New("poll interval must be shorter than the settle timeout"))
	}
	if c.Fetch.LoginTimeout <= 0 {
		errs = append(errs, errors.New("login timeout must be positive"))
	}
	if c.Fetch.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("navigation timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	validLogFormats := map[string]bool{
		"": true, "console": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, errors.New("invalid log format"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if saveDir, ok := flags["save"].(string); ok && saveDir != "" {
		c.Storage.SaveDir = saveDir
	}
	if showBrowser, ok := flags["show-browser"].(bool); ok && showBrowser {
		c.Browser.Headless = false
	}
	if interval, ok := flags["interval"].(time.Duration); ok && interval > 0 {
		c.Fetch.RequestInterval = Duration(interval)
	}
	if settle, ok := flags["settle-timeout"].(time.Duration); ok && settle > 0 {
		c.Fetch.SettleTimeout = Duration(settle)
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
	if noSummary, ok := flags["no-summary"].(bool); ok && noSummary {
		c.Output.WriteRunSummary = false
	}
	if noTable, ok := flags["no-table"].(bool); ok && noTable {
		c.Output.SummaryTable = false
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".siscraper.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
