package socialinsight

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"siscraper/pkg/series"
)

// IsHourlyExport reports whether a chart export is the hourly breakdown
func IsHourlyExport(export string) bool {
	return strings.Contains(export, HourlyChartMarker)
}

// DecodeHourlyExport converts one hourly chart export into rows keyed
// by full timestamp. The export's first line is a header and is
// dropped; each remaining line carries a bare hour-of-day token and a
// value, re-keyed here to YYYY-MM-DDTHH using the requested date.
// Fields beyond the value are dropped. Lines that do not yield an hour
// and a non-empty value are skipped and counted in the stats.
func DecodeHourlyExport(export string, date time.Time) ([]series.Point, series.ParseStats) {
	var stats series.ParseStats
	var points []series.Point

	day := date.Format("2006-01-02")

	lines := strings.Split(export, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			stats.Ignored++
			continue
		}
		stats.Lines++

		hourToken, value, ok := strings.Cut(line, ",")
		if !ok {
			stats.Malformed++
			continue
		}
		if i := strings.IndexByte(value, ','); i >= 0 {
			value = value[:i]
		}

		hour, err := strconv.Atoi(strings.TrimSpace(hourToken))
		if err != nil {
			stats.Malformed++
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			stats.Malformed++
			continue
		}

		points = append(points, series.Point{
			Timestamp: fmt.Sprintf("%sT%02d", day, hour),
			Value:     value,
		})
		stats.Points++
	}

	return points, stats
}
