// Package report renders a merged series store for terminal output.
//
// Two line-oriented reports mirror what downstream tooling consumes:
//
//	ALL_DATA: period 0 t 2024-01-15T00 data 12
//	DATA: period 3 t 2024-01-15T00 data 12
//
// WriteAll emits every period, WriteMaxPeriod only the period with the
// most points. Both print periods by their stored 0-based index and
// order timestamps ascending, so output is stable for a given store.
//
// WriteSummaryTable complements the raw lines with a human-oriented
// per-period table (point counts and first/last timestamps).
package report
