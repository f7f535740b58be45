package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"siscraper/pkg/config"
	"siscraper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage siscraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (SISCRAPER_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'siscraper.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values

The account password is masked for security.`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Duration values and their relationships
  - Path accessibility for cache and log locations`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := configFile
	if configPath == "" {
		configPath = "siscraper.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	// Create example configuration
	exampleConfig := `# siscraper configuration file
#
# All values can also be set through environment variables prefixed
# with SISCRAPER_, for example SISCRAPER_EMAIL or SISCRAPER_SAVE_DIR.

# Social Insight account credentials.
# Both are optional here: prefer 'siscraper auth login', which stores
# them in the system keychain instead of a plaintext file.
social_insight:
  email: ""
  password: ""

# Pacing and chart readiness
fetch:
  # Fixed pause before each remote fetch
  request_interval: 2s

  # How long to wait for the hourly chart to render on a day page
  settle_timeout: 15s

  # Delay between chart readiness checks
  poll_interval: 500ms

  # Bound on the login form round trip
  login_timeout: 45s

  # Bound on a single page navigation
  navigation_timeout: 30s

# Browser session
browser:
  # Run Chrome without a window
  headless: true

  # Explicit Chrome binary path, empty means auto-detect
  exec_path: ""

  # Override the browser user agent, empty means Chrome's default
  user_agent: ""

  # Pass --no-sandbox, needed in some container setups
  no_sandbox: false

# Cache storage
storage:
  # Explicit cache directory for day artifacts; overrides base_dir
  save_dir: ""

  # Artifacts go to <base_dir>/SI_<keyword>/csv, empty means the
  # working directory
  base_dir: ""

# Report output
output:
  # Render the per-period summary table after the line reports
  summary_table: true

  # Write run_summary.json into the cache directory after each run
  write_run_summary: true

# Logging
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log format: console, json
  format: "console"

  # Also write JSON logs to this file, empty disables
  file: ""
`

	// Write configuration file
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Run 'siscraper auth login' to store your Social Insight credentials")
	fmt.Println("2. Run 'siscraper config validate' to check the configuration")
	fmt.Println("3. Start fetching with 'siscraper fetch <keyword> <start_date> <end_date>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Create a sanitized version for display
	displayCfg := *cfg

	// The password never reaches a terminal
	if displayCfg.SocialInsight.Password != "" {
		displayCfg.SocialInsight.Password = "********"
	}

	// Convert to YAML for display
	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	// Show configuration sources
	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (SISCRAPER_*)")
	fmt.Println("3. .env files")
	if configFile != "" {
		fmt.Printf("4. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("4. Configuration file: (searched in standard locations)")
	}
	fmt.Println("5. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	// Check if config file is specified
	if configFile == "" {
		// Try to find config file in common locations
		possiblePaths := []string{
			"siscraper.yaml",
			"siscraper.yml",
			".siscraper.yaml",
			".siscraper.yml",
			filepath.Join(os.Getenv("HOME"), ".siscraper.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "siscraper", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	// Try to load and validate configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	// Perform additional checks
	warnings := []string{}
	errors := []string{}

	// Credentials may come from the store chain, so absence is a warning
	if cfg.SocialInsight.Email == "" || cfg.SocialInsight.Password == "" {
		warnings = append(warnings, "credentials not in configuration (the store chain or a prompt will supply them)")
	}

	// Pacing sanity
	if cfg.Fetch.RequestInterval.Std() < time.Second {
		warnings = append(warnings, "request_interval below 1s hits the admin pages hard")
	}

	// Check paths
	if cfg.Storage.SaveDir != "" {
		if err := os.MkdirAll(cfg.Storage.SaveDir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create save directory: %v", err))
		}
	}
	if cfg.Storage.BaseDir != "" {
		if err := os.MkdirAll(cfg.Storage.BaseDir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create base directory: %v", err))
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:", "")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:", "")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	// Show summary
	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Cache directory: %s\n", cfg.CacheDir("<keyword>"))
	fmt.Printf("  Request interval: %s\n", cfg.Fetch.RequestInterval)
	fmt.Printf("  Settle timeout: %s\n", cfg.Fetch.SettleTimeout)
	fmt.Printf("  Headless browser: %t\n", cfg.Browser.Headless)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
