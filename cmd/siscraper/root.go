package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"siscraper/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "siscraper",
	Short: "Acquire keyword post-volume time series from Social Insight",
	Long: `siscraper collects the hourly post-volume series for a keyword
registered on Social Insight (social-admin.userlocal.jp).

It walks a date range one day at a time, drives a browser through the
admin pages, and caches each day's hourly rows as a CSV artifact, so a
re-run only fetches the days that are still missing.

Features:
  - Per-day CSV cache, interrupted runs resume for free
  - Fixed-interval pacing between remote fetches
  - Secure credential storage using the system keychain
  - Chart readiness polling bounded by a settle window
  - Line reports plus a per-period summary table`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "version" && cmd.Name() != "help" && cmd.Name() != "completion" {
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .siscraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")

	// Version template
	rootCmd.SetVersionTemplate(`siscraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
