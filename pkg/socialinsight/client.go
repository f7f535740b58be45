package socialinsight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siscraper/pkg/auth"
	"siscraper/pkg/config"
	errs "siscraper/pkg/errors"
	"siscraper/pkg/logger"
	"siscraper/pkg/retry"
	"siscraper/pkg/series"
)

// chartExportsJS collects the CSV export of every chart rendered on
// the current page. Pages that have not finished rendering yield an
// empty array.
const chartExportsJS = `(() => {
	if (typeof Highcharts === 'undefined' || !Highcharts.charts) {
		return [];
	}
	return Highcharts.charts
		.filter((c) => c && typeof c.getCSV === 'function')
		.map((c) => c.getCSV());
})()`

// Browser is the automation surface the client drives. Exactly one
// operation runs at a time.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string) error
	SendKeys(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	WaitGone(ctx context.Context, selector string, timeout time.Duration) error
	HTML(ctx context.Context) (string, error)
	EvalStrings(ctx context.Context, expression string) ([]string, error)
}

// Client talks to Social Insight through a browser session
type Client struct {
	browser       Browser
	logger        logger.Logger
	settleTimeout time.Duration
	pollInterval  time.Duration
	loginTimeout  time.Duration
}

// NewClient creates a Social Insight client over a browser session
func NewClient(b Browser, cfg *config.FetchConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		browser:       b,
		logger:        log,
		settleTimeout: cfg.SettleTimeout.Std(),
		pollInterval:  cfg.PollInterval.Std(),
		loginTimeout:  cfg.LoginTimeout.Std(),
	}
}

// Login authenticates the browser session. The password is typed into
// the form and never logged.
func (c *Client) Login(ctx context.Context, account *auth.Account) error {
	if account == nil || account.Email == "" || account.Password == "" {
		return errs.New(errs.ErrorTypeAuth, "no credentials provided")
	}

	c.logger.Info("logging in to Social Insight")

	if err := c.browser.Navigate(ctx, LoginURL); err != nil {
		return errs.Wrap(err, errs.ErrorTypeAuth, "failed to open login page")
	}
	if err := c.browser.WaitVisible(ctx, loginEmailSelector); err != nil {
		return errs.Wrap(err, errs.ErrorTypeAuth, "login form did not render")
	}
	if err := c.browser.SendKeys(ctx, loginEmailSelector, account.Email); err != nil {
		return errs.Wrap(err, errs.ErrorTypeAuth, "failed to fill email field")
	}
	if err := c.browser.SendKeys(ctx, loginPasswordSelector, account.Password); err != nil {
		return errs.Wrap(err, errs.ErrorTypeAuth, "failed to fill password field")
	}
	if err := c.browser.Click(ctx, loginSubmitSelector); err != nil {
		return errs.Wrap(err, errs.ErrorTypeAuth, "failed to submit login form")
	}

	// The form disappearing is the signal that login went through; a
	// rejected login re-renders it and times out here
	if err := c.browser.WaitGone(ctx, loginSubmitSelector, c.loginTimeout); err != nil {
		return errs.Wrap(err, errs.ErrorTypeAuth, "login did not complete, check credentials")
	}

	c.logger.Info("login successful")
	return nil
}

// ResolveKeywordID looks up the remote identifier for a keyword by
// scanning the listing page. The first anchor whose trimmed text
// equals the keyword wins.
func (c *Client) ResolveKeywordID(ctx context.Context, keyword string) (string, error) {
	c.logger.DebugWithFields("resolving keyword id", map[string]interface{}{
		"keyword": keyword,
	})

	if err := c.browser.Navigate(ctx, KeywordListURL()); err != nil {
		return "", err
	}
	if err := c.browser.WaitVisible(ctx, `a[href*="/keywords/"]`); err != nil {
		return "", errs.Wrap(err, errs.ErrorTypeKeywordNotFound,
			fmt.Sprintf("keyword listing rendered no entries looking for %q", keyword))
	}

	html, err := c.browser.HTML(ctx)
	if err != nil {
		return "", err
	}

	entries, err := ParseKeywordListing(html)
	if err != nil {
		return "", errs.Wrap(err, errs.ErrorTypeKeywordNotFound, "failed to parse keyword listing")
	}

	for _, entry := range entries {
		if entry.Name == keyword {
			c.logger.InfoWithFields("keyword resolved", map[string]interface{}{
				"keyword":    keyword,
				"keyword_id": entry.ID,
			})
			return entry.ID, nil
		}
	}

	return "", errs.Newf(errs.ErrorTypeKeywordNotFound, "keyword %q not found in listing", keyword)
}

// FetchDay retrieves the hourly rows for one date. Charts render
// asynchronously, so the page is polled until the hourly export
// appears or the settle window closes.
func (c *Client) FetchDay(ctx context.Context, keywordID string, date time.Time) ([]series.Point, error) {
	day := date.Format("2006-01-02")
	url := DaySummaryURL(keywordID, date)

	c.logger.DebugWithFields("fetching day", map[string]interface{}{
		"date": day,
		"url":  url,
	})

	if err := c.browser.Navigate(ctx, url); err != nil {
		return nil, errs.Wrap(err, errs.ErrorTypeFetchFailure,
			fmt.Sprintf("failed to open day summary for %s", day))
	}

	export, err := retry.DoWithResult(ctx, func(ctx context.Context) (string, error) {
		exports, err := c.browser.EvalStrings(ctx, chartExportsJS)
		if err != nil {
			return "", err
		}
		for _, e := range exports {
			if IsHourlyExport(e) {
				return e, nil
			}
		}
		return "", errors.New("hourly chart not rendered yet")
	}, retry.PollConfig(c.pollInterval, c.settleTimeout, c.logger))
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrorTypeFetchFailure,
			fmt.Sprintf("no hourly chart for %s", day))
	}

	points, stats := DecodeHourlyExport(export, date)
	if stats.Malformed > 0 {
		c.logger.WarnWithFields("malformed rows skipped", map[string]interface{}{
			"date":    day,
			"dropped": stats.Malformed,
		})
	}

	c.logger.DebugWithFields("day fetched", map[string]interface{}{
		"date":   day,
		"points": len(points),
	})

	return points, nil
}
