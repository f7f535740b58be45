package series

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []Point
		wantStats ParseStats
	}{
		{
			name:  "single valid row",
			input: "2024-01-01T05,42\n",
			want:  []Point{{Timestamp: "2024-01-01T05", Value: "42"}},
			wantStats: ParseStats{
				Lines:  1,
				Points: 1,
			},
		},
		{
			name:  "non-row line is excluded",
			input: "not-a-row\n",
			want:  nil,
			wantStats: ParseStats{
				Lines:   1,
				Ignored: 1,
			},
		},
		{
			name: "header and blank lines ignored",
			input: "\"Category\",\"投稿数\"\n" +
				"\n" +
				"2024-01-01T00,10\n" +
				"2024-01-01T01,11\n",
			want: []Point{
				{Timestamp: "2024-01-01T00", Value: "10"},
				{Timestamp: "2024-01-01T01", Value: "11"},
			},
			wantStats: ParseStats{
				Lines:   4,
				Points:  2,
				Ignored: 2,
			},
		},
		{
			name: "malformed candidates skipped with counts",
			input: "2024-01-01T00,10\n" +
				"2024-01-01T01\n" + // no comma
				"2024-01-01T02,\n" + // empty value
				"2024-01-01T03,7,9\n" + // too many fields
				"2024-01-01T04,12\n",
			want: []Point{
				{Timestamp: "2024-01-01T00", Value: "10"},
				{Timestamp: "2024-01-01T04", Value: "12"},
			},
			wantStats: ParseStats{
				Lines:     5,
				Points:    2,
				Malformed: 3,
			},
		},
		{
			name:  "hour is not range checked",
			input: "2024-01-01T99,5\n",
			want:  []Point{{Timestamp: "2024-01-01T99", Value: "5"}},
			wantStats: ParseStats{
				Lines:  1,
				Points: 1,
			},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  2024-01-01T05,42  \n",
			want:  []Point{{Timestamp: "2024-01-01T05", Value: "42"}},
			wantStats: ParseStats{
				Lines:  1,
				Points: 1,
			},
		},
		{
			name:      "empty input",
			input:     "",
			want:      nil,
			wantStats: ParseStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, stats, err := ParseRecord(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, points)
			assert.Equal(t, tt.wantStats, stats)
		})
	}
}

func TestParseRecordFileOrder(t *testing.T) {
	// Rows come back in file order, not sorted
	input := "2024-01-01T10,1\n2024-01-01T02,2\n"
	points, _, err := ParseRecord(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-01T10", points[0].Timestamp)
	assert.Equal(t, "2024-01-01T02", points[1].Timestamp)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestParseRecordReadError(t *testing.T) {
	_, _, err := ParseRecord(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}
