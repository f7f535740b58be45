// Package socialinsight provides a client for the Social Insight
// keyword admin pages.
//
// This package includes:
//   - A browser-backed client for login, keyword lookup, and day fetches
//   - Helper functions for constructing admin page URLs
//   - A decoder for the hourly chart CSV export
//
// The admin pages render their charts client-side, so the client
// drives a real browser session and polls the page until the hourly
// chart has produced an export. The Browser interface keeps the
// package testable without a running browser.
//
// Example usage:
//
//	client := socialinsight.NewClient(session, &cfg.Fetch, log)
//
//	if err := client.Login(ctx, account); err != nil {
//	    // Fatal: nothing works without a session
//	}
//
//	id, err := client.ResolveKeywordID(ctx, "渋谷")
//	if err != nil {
//	    // Fatal: the keyword is not registered on the account
//	}
//
//	points, err := client.FetchDay(ctx, id, date)
//	if err != nil {
//	    // Recoverable: log and move on to the next date
//	}
package socialinsight
