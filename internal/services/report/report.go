// Package report computes APM values over recorded events and renders the
// statistics text. The line phrasings are a compatibility contract with the
// widget's patterns and with any other consumer that greps the output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vshulcz/apmtrack/internal/domain"
)

// Window is one reported time span.
type Window struct {
	Label   string
	Minutes int
}

// Windows lists every span the stats utility reports, in print order. Labels
// carry their own padding so the value column lines up.
var Windows = []Window{
	{Label: "Last 1 minute:    ", Minutes: 1},
	{Label: "Last 5 minutes:   ", Minutes: 5},
	{Label: "Last 15 minutes:  ", Minutes: 15},
	{Label: "Last hour:        ", Minutes: 60},
	{Label: "Last 24 hours:    ", Minutes: 24 * 60},
	{Label: "Last 7 days:      ", Minutes: 7 * 24 * 60},
}

// APM counts events at or after now minus the window and divides by the
// window length in minutes.
func APM(events []domain.Event, minutes int, now time.Time) float64 {
	if len(events) == 0 || minutes <= 0 {
		return 0
	}
	cutoff := now.Unix() - int64(minutes)*60
	n := 0
	for _, ev := range events {
		if ev.Timestamp >= cutoff {
			n++
		}
	}
	return float64(n) / float64(minutes)
}

// Render builds the full statistics report.
func Render(events []domain.Event, now time.Time) string {
	var b strings.Builder
	b.WriteString("Actions Per Minute (APM) Statistics:\n")
	b.WriteString("--------------------------------\n")
	for _, w := range Windows {
		fmt.Fprintf(&b, "%s%.2f APM\n", w.Label, APM(events, w.Minutes, now))
	}
	return b.String()
}
