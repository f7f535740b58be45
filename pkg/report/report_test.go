package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siscraper/pkg/series"
)

func buildStore() *series.Store {
	store := series.NewStore()
	// Merged out of timestamp order on purpose; reports must sort.
	store.MergeInto(0, []series.Point{
		{Timestamp: "2024-01-15T05", Value: "42"},
		{Timestamp: "2024-01-15T00", Value: "12"},
	})
	store.MergeInto(2, []series.Point{
		{Timestamp: "2024-02-01T03", Value: "7"},
	})
	return store
}

func TestWriteAll(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, buildStore()))

	expected := "ALL_DATA: period 0 t 2024-01-15T00 data 12\n" +
		"ALL_DATA: period 0 t 2024-01-15T05 data 42\n" +
		"ALL_DATA: period 2 t 2024-02-01T03 data 7\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteAllEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, series.NewStore()))
	assert.Empty(t, buf.String())
}

func TestWriteMaxPeriod(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMaxPeriod(&buf, buildStore()))

	expected := "DATA: period 0 t 2024-01-15T00 data 12\n" +
		"DATA: period 0 t 2024-01-15T05 data 42\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteMaxPeriodPicksLargest(t *testing.T) {
	store := series.NewStore()
	store.MergeInto(0, []series.Point{
		{Timestamp: "2024-01-01T00", Value: "1"},
	})
	store.MergeInto(1, []series.Point{
		{Timestamp: "2024-01-02T00", Value: "2"},
		{Timestamp: "2024-01-02T01", Value: "3"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteMaxPeriod(&buf, store))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "DATA: period 1 "), "unexpected line: %s", line)
	}
}

func TestWriteMaxPeriodEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMaxPeriod(&buf, series.NewStore()))
	assert.Empty(t, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestWriteAllPropagatesWriterError(t *testing.T) {
	err := WriteAll(failWriter{}, buildStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipe closed")
}

func TestWriteMaxPeriodPropagatesWriterError(t *testing.T) {
	err := WriteMaxPeriod(failWriter{}, buildStore())
	require.Error(t, err)
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, buildStore())
	out := buf.String()

	assert.Contains(t, out, "PERIOD")
	assert.Contains(t, out, "POINTS")
	assert.Contains(t, out, "FIRST")
	assert.Contains(t, out, "LAST")

	// Ordinals are 1-based in the table regardless of stored indices.
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2024-01-15T00")
	assert.Contains(t, out, "2024-01-15T05")
	assert.Contains(t, out, "2024-02-01T03")

	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "3")
}

func TestWriteSummaryTableEmptyPeriod(t *testing.T) {
	store := series.NewStore()
	store.AddPeriod()

	var buf bytes.Buffer
	WriteSummaryTable(&buf, store)

	assert.Contains(t, buf.String(), "-")
}

func BenchmarkWriteAll(b *testing.B) {
	store := buildStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		_ = WriteAll(&buf, store)
	}
}
