package series

import (
	"bufio"
	"io"
	"strings"
)

// ParseStats reports what a record parse consumed and dropped
type ParseStats struct {
	Lines     int // lines read
	Points    int // valid data rows
	Ignored   int // blank lines, comments, headers
	Malformed int // candidate rows failing the two-field split
}

// ParseRecord reads one day's artifact into points, in file order.
// A line is a candidate data row iff its first two characters are
// "20"; everything else is ignored. A candidate must split on a
// single comma into a timestamp and a non-empty value; candidates
// that do not are counted as malformed and skipped. The hour token is
// not range checked, values pass through opaque.
func ParseRecord(r io.Reader) ([]Point, ParseStats, error) {
	var points []Point
	var stats ParseStats

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 || line[:2] != "20" {
			stats.Ignored++
			continue
		}
		timestamp, value, ok := strings.Cut(line, ",")
		if !ok || value == "" || strings.Contains(value, ",") {
			stats.Malformed++
			continue
		}
		points = append(points, Point{Timestamp: timestamp, Value: value})
		stats.Points++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}

	return points, stats, nil
}
