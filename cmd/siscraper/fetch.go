package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"siscraper/internal/browser"
	"siscraper/pkg/auth"
	"siscraper/pkg/config"
	"siscraper/pkg/logger"
	"siscraper/pkg/metadata"
	"siscraper/pkg/ratelimit"
	"siscraper/pkg/report"
	"siscraper/pkg/scraper"
	"siscraper/pkg/socialinsight"
	"siscraper/pkg/storage"
	"siscraper/pkg/ui"
)

var (
	// Fetch command flags
	saveDir       string
	showBrowser   bool
	interval      time.Duration
	settleTimeout time.Duration
	noSummary     bool
	noTable       bool
	noProgress    bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <keyword> <start_date> <end_date>",
	Short: "Acquire the hourly series for a keyword over a date range",
	Long: `Acquire the hourly post-volume series for a keyword between two dates.

Dates are YYYY-MM-DD and the range is half-open: start_date is included,
end_date is not. The keyword must already be registered on the Social
Insight account; it is matched against the keyword listing by exact name.

Each day's rows are cached as a CSV artifact. Days with an artifact are
never fetched again, so re-running after an interruption only fetches
what is missing. Remote fetches are paced by a fixed interval.

Credentials are resolved in order from the credential store chain
(environment, keychain, encrypted file, legacy dotfiles), then the
configuration file, and finally an interactive prompt.`,
	Example: `  # One week of data, end date exclusive
  siscraper fetch 渋谷 2024-01-01 2024-01-08

  # Custom cache directory and slower pacing
  siscraper fetch 渋谷 2024-01-01 2024-02-01 --save ./shibuya --interval 5s

  # Watch the browser do the work
  siscraper fetch 渋谷 2024-01-01 2024-01-02 --show-browser

  # Machine consumption: no table, no progress line
  siscraper fetch 渋谷 2024-01-01 2024-01-08 --no-table --no-progress > series.txt`,
	Args: cobra.ExactArgs(3),
	Run:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&saveDir, "save", "s", "", "cache directory for day artifacts (default: SI_<keyword>/csv)")
	fetchCmd.Flags().BoolVar(&showBrowser, "show-browser", false, "run the browser with a visible window")
	fetchCmd.Flags().DurationVar(&interval, "interval", 0, "pause before each remote fetch (default 2s)")
	fetchCmd.Flags().DurationVar(&settleTimeout, "settle-timeout", 0, "how long to wait for charts to render (default 15s)")
	fetchCmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip writing run_summary.json into the cache directory")
	fetchCmd.Flags().BoolVar(&noTable, "no-table", false, "skip the per-period summary table")
	fetchCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress line")
}

func runFetch(cmd *cobra.Command, args []string) {
	keyword := strings.TrimSpace(args[0])
	if keyword == "" {
		ui.PrintError("Keyword must not be empty")
		os.Exit(1)
	}

	dates, err := scraper.ParseDateRange(args[1], args[2])
	if err != nil {
		ui.PrintError("Invalid date range", err.Error())
		os.Exit(1)
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if saveDir != "" {
		flags["save"] = saveDir
	}
	if showBrowser {
		flags["show-browser"] = true
	}
	if interval > 0 {
		flags["interval"] = interval
	}
	if settleTimeout > 0 {
		flags["settle-timeout"] = settleTimeout
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFile != "" {
		flags["log-file"] = logFile
	}
	if noSummary {
		flags["no-summary"] = true
	}
	if noTable {
		flags["no-table"] = true
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("siscraper starting")

	ui.PrintInfo("Keyword", keyword)
	ui.PrintInfo("Range", fmt.Sprintf("[%s, %s)", dates.Start.Format("2006-01-02"), dates.End.Format("2006-01-02")))

	account := resolveAccount(cfg)

	cacheDir := cfg.CacheDir(keyword)
	cache, err := storage.NewManager(cacheDir)
	if err != nil {
		ui.PrintError("Failed to prepare cache directory", err.Error())
		os.Exit(1)
	}
	ui.PrintInfo("Cache", cacheDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.NewSession(&cfg.Browser, cfg.Fetch.NavigationTimeout.Std(), log)
	if err != nil {
		ui.PrintError("Failed to start browser", err.Error())
		os.Exit(1)
	}
	defer session.Close()

	client := socialinsight.NewClient(session, &cfg.Fetch, log)

	if err := client.Login(ctx, account); err != nil {
		log.WithError(err).Error("login failed")
		ui.PrintError("Login failed", err.Error())
		os.Exit(1)
	}

	pacer := ratelimit.NewFixedInterval(cfg.Fetch.RequestInterval.Std())
	s := scraper.New(keyword, dates, cache, client, client, pacer, log)

	var progress *ui.RunProgress
	if !noProgress && term.IsTerminal(int(os.Stdout.Fd())) {
		progress = ui.NewRunProgress(os.Stdout, keyword, dates.Len())
		s.SetProgress(scraper.ProgressFunc(func(day time.Time, st scraper.Stats) {
			progress.Update(ui.DaySnapshot{
				Date:          day.Format("2006-01-02"),
				DaysWalked:    st.DaysWalked,
				CacheHits:     st.CacheHits,
				Fetches:       st.Fetches,
				FetchFailures: st.FetchFailures,
				PointsMerged:  st.PointsMerged,
			})
		}))
	}

	notifier := ui.NewNotifier()

	startedAt := time.Now()
	store, stats, err := s.Run(ctx)
	finishedAt := time.Now()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			ui.PrintWarning("Interrupted, cached days are kept for the next run")
			os.Exit(130)
		}
		log.WithError(err).WithField("keyword", keyword).Error("acquisition failed")
		ui.PrintError("ACQUISITION FAILED", err.Error())
		notifier.SendError("siscraper", fmt.Sprintf("%s: acquisition failed", keyword))
		os.Exit(1)
	}

	if progress != nil {
		progress.Complete()
		fmt.Println()
	}

	// Full dump first, then the densest period
	if err := report.WriteAll(os.Stdout, store); err != nil {
		ui.PrintError("Failed to write report", err.Error())
		os.Exit(1)
	}
	if err := report.WriteMaxPeriod(os.Stdout, store); err != nil {
		ui.PrintError("Failed to write report", err.Error())
		os.Exit(1)
	}

	if cfg.Output.SummaryTable {
		fmt.Println()
		report.WriteSummaryTable(os.Stdout, store)
	}

	if cfg.Output.WriteRunSummary {
		summary := metadata.NewRunSummary(s.KeywordContext(), dates, startedAt, finishedAt, stats, store)
		if path, err := summary.Save(cacheDir); err != nil {
			log.WithError(err).Warn("failed to write run summary")
		} else {
			log.WithFields(map[string]interface{}{
				"run_id": summary.RunID,
				"path":   path,
			}).Info("run summary written")
		}
	}

	if stats.FetchFailures > 0 {
		ui.PrintWarning(fmt.Sprintf("%d day fetches failed and were skipped, re-run to retry them", stats.FetchFailures))
	}
	ui.PrintSuccess(fmt.Sprintf("[ACQUISITION COMPLETED: %d points]", stats.PointsMerged))
	notifier.SendSuccess("siscraper", fmt.Sprintf("%s: %d points acquired", keyword, stats.PointsMerged))
}

// resolveAccount finds login credentials: the store chain first, then
// the configuration file, then an interactive prompt
func resolveAccount(cfg *config.Config) *auth.Account {
	if manager, err := auth.NewManager(); err == nil {
		if account, source, err := manager.Resolve(); err == nil {
			logger.GetLogger().WithField("source", source).Info("using stored credentials")
			ui.PrintInfo("Account", account.Email)
			return account
		}
	}

	if cfg.SocialInsight.Email != "" && cfg.SocialInsight.Password != "" {
		logger.GetLogger().Info("using credentials from configuration")
		ui.PrintInfo("Account", cfg.SocialInsight.Email)
		return &auth.Account{
			Email:    cfg.SocialInsight.Email,
			Password: cfg.SocialInsight.Password,
		}
	}

	fmt.Println()
	auth.ShowCredentialGuide()

	account, err := promptForAccount("")
	if err != nil {
		ui.PrintError("Failed to read credentials", err.Error())
		os.Exit(1)
	}
	return account
}
