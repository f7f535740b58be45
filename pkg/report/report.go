package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"siscraper/pkg/series"
)

// WriteAll prints every period's points, periods ascending by index
// and timestamps ascending within each period, one line per point.
// Period indices print exactly as stored, starting at 0.
func WriteAll(w io.Writer, store *series.Store) error {
	for _, period := range store.PeriodIndices() {
		for _, p := range store.PeriodPoints(period) {
			if _, err := fmt.Fprintf(w, "ALL_DATA: period %d t %s data %s\n",
				period, p.Timestamp, p.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteMaxPeriod prints only the period holding the most points,
// timestamps ascending
func WriteMaxPeriod(w io.Writer, store *series.Store) error {
	period := store.MaxPeriod()
	for _, p := range store.PeriodPoints(period) {
		if _, err := fmt.Fprintf(w, "DATA: period %d t %s data %s\n",
			period, p.Timestamp, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummaryTable renders a per-period overview. Periods are
// labelled with 1-based ordinals here; the data reports above keep
// the stored 0-based indices.
func WriteSummaryTable(w io.Writer, store *series.Store) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Period", "Points", "First", "Last"})

	for i, idx := range store.PeriodIndices() {
		points := store.PeriodPoints(idx)
		first, last := "-", "-"
		if len(points) > 0 {
			first = points[0].Timestamp
			last = points[len(points)-1].Timestamp
		}
		t.AppendRow(table.Row{i + 1, len(points), first, last})
	}

	t.AppendFooter(table.Row{"Total", store.TotalPoints(), "", ""})
	t.Render()
}
