// Package scraper drives one acquisition run over a date range.
//
// The Scraper walks every date in the half-open range [Start, End)
// ascending, one day at a time. Dates with a cached artifact are
// skipped; missing dates are fetched through the DayFetcher after the
// fixed pacer pause and persisted through the cache manager. Every
// date with an artifact, including ones left by earlier runs, is then
// parsed and merged into the series store, so partial progress always
// carries across reruns.
//
// Failure policy:
//
//   - Keyword resolution failure aborts the run before any fetching.
//   - A per-date fetch failure is counted and logged; the run moves to
//     the next date and that date is simply absent from the series.
//   - Cache I/O failures are fatal: the cache is the source of truth
//     for what has been acquired.
//
// Usage:
//
//	dates, err := scraper.ParseDateRange("2024-01-01", "2024-01-08")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s := scraper.New(keyword, dates, cache, client, client, pacer, log)
//	store, stats, err := s.Run(ctx)
//
// The DayFetcher and KeywordResolver collaborators are small
// interfaces, both satisfied by socialinsight.Client, so tests can
// run the full driver loop against fakes.
package scraper
