package socialinsight

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siscraper/pkg/auth"
	"siscraper/pkg/config"
	errs "siscraper/pkg/errors"
	"siscraper/pkg/logger"
	"siscraper/pkg/series"
)

// fakeBrowser scripts browser responses and records every call in order
type fakeBrowser struct {
	mu    sync.Mutex
	calls []string

	navErr     error
	visibleErr error
	keysErr    error
	clickErr   error
	goneErr    error

	html    string
	htmlErr error

	evalResults [][]string
	evalErr     error
	evalCalls   int
}

func (f *fakeBrowser) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	f.record("navigate " + url)
	return f.navErr
}

func (f *fakeBrowser) WaitVisible(ctx context.Context, selector string) error {
	f.record("visible " + selector)
	return f.visibleErr
}

func (f *fakeBrowser) SendKeys(ctx context.Context, selector, value string) error {
	f.record("keys " + selector + "=" + value)
	return f.keysErr
}

func (f *fakeBrowser) Click(ctx context.Context, selector string) error {
	f.record("click " + selector)
	return f.clickErr
}

func (f *fakeBrowser) WaitGone(ctx context.Context, selector string, timeout time.Duration) error {
	f.record("gone " + selector)
	return f.goneErr
}

func (f *fakeBrowser) HTML(ctx context.Context) (string, error) {
	f.record("html")
	return f.html, f.htmlErr
}

func (f *fakeBrowser) EvalStrings(ctx context.Context, expression string) ([]string, error) {
	f.record("eval")

	f.mu.Lock()
	idx := f.evalCalls
	f.evalCalls++
	f.mu.Unlock()

	if f.evalErr != nil {
		return nil, f.evalErr
	}
	if len(f.evalResults) == 0 {
		return nil, nil
	}
	if idx >= len(f.evalResults) {
		idx = len(f.evalResults) - 1
	}
	return f.evalResults[idx], nil
}

func testFetchConfig() *config.FetchConfig {
	return &config.FetchConfig{
		SettleTimeout: config.Duration(200 * time.Millisecond),
		PollInterval:  config.Duration(time.Millisecond),
		LoginTimeout:  config.Duration(5 * time.Second),
	}
}

func TestClientLogin(t *testing.T) {
	fb := &fakeBrowser{}
	log := logger.NewTestLogger()
	client := NewClient(fb, testFetchConfig(), log)

	account := &auth.Account{Email: "ops@example.com", Password: "s3cret-hunter2"}
	err := client.Login(context.Background(), account)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"navigate " + LoginURL,
		`visible input[name="email"]`,
		`keys input[name="email"]=ops@example.com`,
		`keys input[name="password"]=s3cret-hunter2`,
		`click input[value="ログイン"]`,
		`gone input[value="ログイン"]`,
	}, fb.calls)

	// The password must never reach the logs
	for _, entry := range log.Entries() {
		assert.NotContains(t, entry.Message, account.Password)
		for _, v := range entry.Fields {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, account.Password)
			}
		}
	}
}

func TestClientLoginRejected(t *testing.T) {
	fb := &fakeBrowser{
		goneErr: errs.New(errs.ErrorTypeBrowser, "element still visible after timeout"),
	}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	err := client.Login(context.Background(), &auth.Account{
		Email:    "ops@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeAuth))
	assert.Contains(t, err.Error(), "check credentials")
}

func TestClientLoginMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		account *auth.Account
	}{
		{name: "nil account", account: nil},
		{name: "empty email", account: &auth.Account{Password: "pw"}},
		{name: "empty password", account: &auth.Account{Email: "ops@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBrowser{}
			client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

			err := client.Login(context.Background(), tt.account)

			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.ErrorTypeAuth))
			assert.Empty(t, fb.calls)
		})
	}
}

func TestClientResolveKeywordID(t *testing.T) {
	fb := &fakeBrowser{html: listingHTML}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	id, err := client.ResolveKeywordID(context.Background(), "新宿")
	require.NoError(t, err)
	assert.Equal(t, "102", id)

	assert.Equal(t, []string{
		"navigate " + KeywordListURL(),
		`visible a[href*="/keywords/"]`,
		"html",
	}, fb.calls)
}

func TestClientResolveKeywordIDFirstMatchWins(t *testing.T) {
	fb := &fakeBrowser{
		html: `<a href="/keywords/2">alpha</a><a href="/keywords/1">alpha</a>`,
	}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	id, err := client.ResolveKeywordID(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, "2", id)
}

func TestClientResolveKeywordIDNotFound(t *testing.T) {
	fb := &fakeBrowser{html: listingHTML}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	_, err := client.ResolveKeywordID(context.Background(), "存在しない")

	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeKeywordNotFound))
}

func TestClientResolveKeywordIDListingNeverRenders(t *testing.T) {
	fb := &fakeBrowser{
		visibleErr: errs.New(errs.ErrorTypeBrowser, "wait timed out"),
	}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	_, err := client.ResolveKeywordID(context.Background(), "渋谷")

	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeKeywordNotFound))
}

func TestClientFetchDay(t *testing.T) {
	hourly := "時間帯,時間帯別投稿数\n0,12\n5,42"
	daily := "日付,日別投稿数\n2024-01-15,120"

	// The hourly chart appears on the third poll, alongside charts that
	// must not be mistaken for it
	fb := &fakeBrowser{
		evalResults: [][]string{nil, {daily}, {daily, hourly}},
	}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	points, err := client.FetchDay(context.Background(), "4211", date)
	require.NoError(t, err)

	assert.Equal(t, []series.Point{
		{Timestamp: "2024-01-15T00", Value: "12"},
		{Timestamp: "2024-01-15T05", Value: "42"},
	}, points)
	assert.Equal(t, 3, fb.evalCalls)
	assert.Equal(t, "navigate "+DaySummaryURL("4211", date), fb.calls[0])
}

func TestClientFetchDayNeverSettles(t *testing.T) {
	fb := &fakeBrowser{}
	cfg := testFetchConfig()
	cfg.SettleTimeout = config.Duration(50 * time.Millisecond)
	cfg.PollInterval = config.Duration(5 * time.Millisecond)
	client := NewClient(fb, cfg, logger.NewTestLogger())

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchDay(context.Background(), "4211", date)

	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeFetchFailure))
	assert.Contains(t, err.Error(), "no hourly chart")
	assert.Greater(t, fb.evalCalls, 1)
}

func TestClientFetchDayNavigationFailure(t *testing.T) {
	fb := &fakeBrowser{
		navErr: errs.New(errs.ErrorTypeBrowser, "tab crashed"),
	}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchDay(context.Background(), "4211", date)

	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeFetchFailure))
	assert.Equal(t, 0, fb.evalCalls)
}

func TestClientFetchDayBrowserFailureAbortsPoll(t *testing.T) {
	fb := &fakeBrowser{
		evalErr: errs.New(errs.ErrorTypeBrowser, "javascript evaluation failed"),
	}
	client := NewClient(fb, testFetchConfig(), logger.NewTestLogger())

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchDay(context.Background(), "4211", date)

	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeFetchFailure))
	assert.Equal(t, 1, fb.evalCalls)
}

func TestClientFetchDayMalformedRowsLogged(t *testing.T) {
	hourly := "時間帯,時間帯別投稿数\nabc,1\n2,9"
	fb := &fakeBrowser{evalResults: [][]string{{hourly}}}
	log := logger.NewTestLogger()
	client := NewClient(fb, testFetchConfig(), log)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	points, err := client.FetchDay(context.Background(), "4211", date)
	require.NoError(t, err)
	require.Len(t, points, 1)

	require.True(t, log.HasMessageContaining("malformed rows skipped"))
	for _, entry := range log.Entries() {
		if entry.Message == "malformed rows skipped" {
			assert.Equal(t, 1, entry.Fields["dropped"])
		}
	}
}
