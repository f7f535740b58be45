package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// DaySnapshot carries the walk counters behind one progress update
type DaySnapshot struct {
	Date          string
	DaysWalked    int
	CacheHits     int
	Fetches       int
	FetchFailures int
	PointsMerged  int
}

// RunProgress renders a single-line progress display for a date walk
// over a known number of days. Safe for concurrent use.
type RunProgress struct {
	mu        sync.Mutex
	out       io.Writer
	keyword   string
	totalDays int
	last      DaySnapshot
	startTime time.Time
}

// NewRunProgress creates a progress display for a walk of totalDays
// days, writing to out
func NewRunProgress(out io.Writer, keyword string, totalDays int) *RunProgress {
	return &RunProgress{
		out:       out,
		keyword:   keyword,
		totalDays: totalDays,
		startTime: time.Now(),
	}
}

// Update redraws the progress line with the given counters
func (p *RunProgress) Update(s DaySnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = s
	p.printLine()
}

// printLine draws the in-place progress line. Caller holds the lock.
func (p *RunProgress) printLine() {
	const barWidth = 20

	progress := 0.0
	if p.totalDays > 0 {
		progress = float64(p.last.DaysWalked) / float64(p.totalDays)
	}
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)

	line := fmt.Sprintf("\r%s [%s] %d/%d days • %d fetched • %d cached • %d pts • %s",
		Cyan(p.keyword),
		bar,
		p.last.DaysWalked,
		p.totalDays,
		p.last.Fetches,
		p.last.CacheHits,
		p.last.PointsMerged,
		p.eta(),
	)

	if p.last.FetchFailures > 0 {
		line += fmt.Sprintf(" • %s", Red(fmt.Sprintf("%d failed", p.last.FetchFailures)))
	}

	fmt.Fprintf(p.out, "\r%s\r%s", strings.Repeat(" ", 120), line)
}

// Complete ends the progress line and prints the closing summary
func (p *RunProgress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)

	fmt.Fprintf(p.out, "\n\n%s Walked %d days for %s\n",
		Green("✓"),
		p.last.DaysWalked,
		p.keyword,
	)
	fmt.Fprintf(p.out, "  %s %d points from %d fetches (%d cache hits) in %s\n",
		Dim("•"),
		p.last.PointsMerged,
		p.last.Fetches,
		p.last.CacheHits,
		formatDuration(elapsed),
	)
	if p.last.FetchFailures > 0 {
		fmt.Fprintf(p.out, "  %s %d day fetches failed\n",
			Dim("•"),
			p.last.FetchFailures,
		)
	}
}

// eta estimates time remaining from the average pace so far
func (p *RunProgress) eta() string {
	if p.last.DaysWalked == 0 {
		return "…"
	}

	remaining := p.totalDays - p.last.DaysWalked
	if remaining <= 0 {
		return formatDuration(time.Since(p.startTime))
	}

	perDay := time.Since(p.startTime) / time.Duration(p.last.DaysWalked)
	return "eta " + formatDuration(perDay*time.Duration(remaining))
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
