package socialinsight

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// AdminBaseURL is the base URL of the Social Insight admin console
	AdminBaseURL = "https://social-admin.userlocal.jp"

	// LoginURL is the login form page
	LoginURL = "https://auth.userlocal.jp/login?"

	// HourlyChartMarker identifies the hourly-breakdown chart among the
	// exports rendered on a day summary page
	HourlyChartMarker = "時間帯別"
)

// Login form selectors
const (
	loginEmailSelector    = `input[name="email"]`
	loginPasswordSelector = `input[name="password"]`
	loginSubmitSelector   = `input[value="ログイン"]`
)

// KeywordListURL returns the keyword listing page URL
func KeywordListURL() string {
	return AdminBaseURL + "/keywords"
}

// DaySummaryURL constructs the per-day Twitter summary URL for a
// keyword. Start and end are pinned to the same date so exactly one
// day renders.
func DaySummaryURL(keywordID string, date time.Time) string {
	day := date.Format("2006-01-02")

	params := url.Values{}
	params.Set("start_date", day)
	params.Set("end_date", day)

	return fmt.Sprintf("%s/keywords/%s/tw/summary?%s", AdminBaseURL, keywordID, params.Encode())
}

// KeywordIDFromHref extracts the keyword identifier from a listing
// anchor href: the path segment immediately after "/keywords/".
// Returns "" when the href carries no identifier.
func KeywordIDFromHref(href string) string {
	const prefix = "/keywords/"

	i := strings.Index(href, prefix)
	if i < 0 {
		return ""
	}

	rest := href[i+len(prefix):]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}

	return rest
}
