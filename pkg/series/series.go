package series

import "sort"

// Point is one hour's score for the keyword on a given date
type Point struct {
	Timestamp string // YYYY-MM-DDTHH
	Value     string // opaque, passed through unmodified
}

// Period holds one contiguous run of merged data keyed by timestamp
type Period map[string]string

// Store accumulates parsed points into periods. A fresh acquisition
// run only ever populates period 0; additional periods exist for
// merging separate runs side by side.
type Store struct {
	periods    map[int]Period
	numPeriods int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{periods: make(map[int]Period)}
}

// Merge inserts points into period 0, creating it on the first
// insertion ever. An existing timestamp is overwritten (last write
// wins), so replaying a day's rows is a no-op.
func (s *Store) Merge(points []Point) {
	s.MergeInto(0, points)
}

// MergeInto inserts points into the given period, creating it if it
// does not exist yet. Later inserts for the same timestamp overwrite
// earlier ones.
func (s *Store) MergeInto(period int, points []Point) {
	p, ok := s.periods[period]
	if !ok {
		p = make(Period)
		s.periods[period] = p
		s.numPeriods++
	}
	for _, point := range points {
		p[point.Timestamp] = point.Value
	}
}

// AddPeriod allocates the lowest unused period index and returns it
func (s *Store) AddPeriod() int {
	idx := 0
	for {
		if _, ok := s.periods[idx]; !ok {
			break
		}
		idx++
	}
	s.periods[idx] = make(Period)
	s.numPeriods++
	return idx
}

// NumPeriods returns how many periods have been created
func (s *Store) NumPeriods() int {
	return s.numPeriods
}

// TotalPoints returns the number of distinct timestamps across all
// periods
func (s *Store) TotalPoints() int {
	total := 0
	for _, p := range s.periods {
		total += len(p)
	}
	return total
}

// PeriodIndices returns the existing period indices in ascending order
func (s *Store) PeriodIndices() []int {
	indices := make([]int, 0, len(s.periods))
	for idx := range s.periods {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// PeriodLen returns the number of distinct timestamps in a period,
// zero if the period does not exist
func (s *Store) PeriodLen(period int) int {
	return len(s.periods[period])
}

// PeriodPoints returns a period's points sorted ascending by
// timestamp. Zero-padded hour keys make lexicographic order
// chronological.
func (s *Store) PeriodPoints(period int) []Point {
	p, ok := s.periods[period]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(p))
	for ts := range p {
		keys = append(keys, ts)
	}
	sort.Strings(keys)

	points := make([]Point, 0, len(keys))
	for _, ts := range keys {
		points = append(points, Point{Timestamp: ts, Value: p[ts]})
	}
	return points
}

// Value looks up the value stored for a timestamp in a period
func (s *Store) Value(period int, timestamp string) (string, bool) {
	v, ok := s.periods[period][timestamp]
	return v, ok
}

// MaxPeriod returns the index of the period holding the most distinct
// timestamps, ties broken by the lowest index. An empty store reports
// period 0.
func (s *Store) MaxPeriod() int {
	max := 0
	maxLen := -1
	for _, idx := range s.PeriodIndices() {
		if l := len(s.periods[idx]); l > maxLen {
			max = idx
			maxLen = l
		}
	}
	if maxLen < 0 {
		return 0
	}
	return max
}
