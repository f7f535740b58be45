package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"siscraper/pkg/config"
	errs "siscraper/pkg/errors"
	"siscraper/pkg/logger"
)

// Session wraps one headless Chrome instance for the lifetime of a run.
// All remote interaction goes through it, one operation at a time.
type Session struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc
	logger      logger.Logger
	navTimeout  time.Duration
}

// NewSession launches the browser. The caller must Close the session
// when the run ends.
func NewSession(cfg *config.BrowserConfig, navTimeout time.Duration, log logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			log.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			log.Error(fmt.Sprintf(format, args...))
		}),
	)

	session := &Session{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		cancel:      cancel,
		logger:      log,
		navTimeout:  navTimeout,
	}

	// Launch eagerly so a missing or broken Chrome surfaces here,
	// not on the first navigation
	if err := chromedp.Run(browserCtx); err != nil {
		session.Close()
		return nil, errs.Wrap(err, errs.ErrorTypeBrowser, "failed to start browser")
	}

	log.DebugWithFields("browser session started", map[string]interface{}{
		"headless": cfg.Headless,
	})

	return session, nil
}

// run executes chromedp actions on the browser context, bounded by the
// given timeout and aborted if the caller's context is cancelled.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	tctx, tcancel := context.WithTimeout(s.browserCtx, timeout)
	defer tcancel()

	stop := context.AfterFunc(ctx, tcancel)
	defer stop()

	if err := chromedp.Run(tctx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Navigate loads a URL and waits for the load event
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.DebugWithFields("navigating", map[string]interface{}{"url": url})

	if err := s.run(ctx, s.navTimeout, chromedp.Navigate(url)); err != nil {
		return errs.Wrap(err, errs.ErrorTypeBrowser, fmt.Sprintf("failed to navigate to %s", url))
	}
	return nil
}

// WaitVisible blocks until the selector matches a visible node
func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	if err := s.run(ctx, s.navTimeout, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return errs.Wrap(err, errs.ErrorTypeBrowser, fmt.Sprintf("element %q did not appear", selector))
	}
	return nil
}

// WaitGone blocks until the selector no longer matches, bounded by the
// given timeout
func (s *Session) WaitGone(ctx context.Context, selector string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitNotPresent(selector, chromedp.ByQuery)); err != nil {
		return errs.Wrap(err, errs.ErrorTypeBrowser, fmt.Sprintf("element %q did not go away", selector))
	}
	return nil
}

// SendKeys types a value into the first node matching the selector
func (s *Session) SendKeys(ctx context.Context, selector, value string) error {
	if err := s.run(ctx, s.navTimeout, chromedp.SendKeys(selector, value, chromedp.ByQuery)); err != nil {
		return errs.Wrap(err, errs.ErrorTypeBrowser, fmt.Sprintf("failed to fill %q", selector))
	}
	return nil
}

// Click clicks the first node matching the selector
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, s.navTimeout, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return errs.Wrap(err, errs.ErrorTypeBrowser, fmt.Sprintf("failed to click %q", selector))
	}
	return nil
}

// Location returns the current page URL
func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, s.navTimeout, chromedp.Location(&url)); err != nil {
		return "", errs.Wrap(err, errs.ErrorTypeBrowser, "failed to read location")
	}
	return url, nil
}

// HTML returns the full rendered document
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, s.navTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", errs.Wrap(err, errs.ErrorTypeBrowser, "failed to read page HTML")
	}
	return html, nil
}

// EvalStrings evaluates a JavaScript expression that yields an array
// of strings
func (s *Session) EvalStrings(ctx context.Context, expression string) ([]string, error) {
	var result []string
	if err := s.run(ctx, s.navTimeout, chromedp.Evaluate(expression, &result)); err != nil {
		return nil, errs.Wrap(err, errs.ErrorTypeBrowser, "failed to evaluate expression")
	}
	return result, nil
}

// Close shuts the browser down
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
}
