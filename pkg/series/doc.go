// Package series holds the merged keyword time series and the parser
// for per-day cache artifacts.
//
// A Store partitions data into periods, each an ordered mapping from
// hour-granular timestamps (YYYY-MM-DDTHH) to opaque score values.
// One acquisition run populates period 0 only; separate runs can be
// merged side by side into further periods. Inserting an existing
// timestamp overwrites it, which makes replaying cached days
// idempotent.
//
// ParseRecord turns one artifact (newline-delimited "timestamp,value"
// rows, possibly with header lines) back into points, skipping and
// counting rows that fail the structured check instead of failing the
// whole record.
package series
