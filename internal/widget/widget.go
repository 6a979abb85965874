// Package widget implements the APM status-bar widget: a refresh-gated poller
// around the external statistics command and a small renderer for its result.
package widget

import (
	"context"
	"regexp"
	"time"

	"github.com/vshulcz/apmtrack/internal/domain"
	"github.com/vshulcz/apmtrack/internal/ports"
)

// StateWarning is reported whenever the last poll left an error behind.
const StateWarning = "warning"

// Config is fixed at construction and never mutated afterwards.
type Config struct {
	Interval domain.Interval
	Prefix   string
	Refresh  time.Duration
}

// Phrasing alternatives per interval, tried in order; the first alternative
// that yields a capture wins. The hour window has two known phrasings and the
// "Last 1 hour" one is preferred, matching the established parse behavior.
var (
	reMinute    = regexp.MustCompile(`Last 1 minute:\s+(\d+\.\d+) APM`)
	reHourLong  = regexp.MustCompile(`Last 1 hour:\s+(\d+\.\d+) APM`)
	reHourShort = regexp.MustCompile(`Last hour:\s+(\d+\.\d+) APM`)
	reDay       = regexp.MustCompile(`Last 24 hours:\s+(\d+\.\d+) APM`)
	reWeek      = regexp.MustCompile(`Last 7 days:\s+(\d+\.\d+) APM`)
)

func patternsFor(interval domain.Interval) []*regexp.Regexp {
	switch interval {
	case domain.IntervalMinute:
		return []*regexp.Regexp{reMinute}
	case domain.IntervalDay:
		return []*regexp.Regexp{reDay}
	case domain.IntervalWeek:
		return []*regexp.Regexp{reWeek}
	default:
		// hour, and anything unrecognized
		return []*regexp.Regexp{reHourLong, reHourShort}
	}
}

// Status is one rendered widget tick.
type Status struct {
	Text  string
	State string
}

// Widget polls the stats command and holds the last parsed value. All state is
// owned by the host's update loop; none of the methods are safe for concurrent
// use and none need to be.
type Widget struct {
	now    func() time.Time
	runner ports.StatsRunner
	value  string
	errMsg string
	pats   []*regexp.Regexp
	last   time.Time
	cfg    Config
}

// New builds a widget around the given stats runner.
func New(cfg Config, runner ports.StatsRunner) *Widget {
	return &Widget{
		cfg:    cfg,
		runner: runner,
		pats:   patternsFor(cfg.Interval),
		value:  "N/A",
		now:    time.Now,
	}
}

// Update polls the stats command unless the refresh window has not elapsed
// since the previous executed poll. It never returns an error: failures are
// held in the widget state and surfaced through Output and State.
func (w *Widget) Update(ctx context.Context) {
	now := w.now()
	if now.Sub(w.last) < w.cfg.Refresh {
		return
	}
	w.last = now
	w.errMsg = ""

	code, out, err := w.runner.Run(ctx)
	if err != nil {
		w.value = "Error"
		w.errMsg = err.Error()
		return
	}
	if code != 0 {
		w.value = "Error"
		w.errMsg = "Command failed"
		return
	}

	matched := false
	for _, re := range w.pats {
		m := re.FindStringSubmatch(out)
		if m == nil {
			continue
		}
		matched = true
		if m[1] != "" {
			// captured numeric text is kept verbatim, decimals included
			w.value = m[1]
			return
		}
	}
	w.value = "0.00"
	if matched {
		w.errMsg = "No match"
	} else {
		w.errMsg = "No pattern match"
	}
}

// Output renders the display line for the host.
func (w *Widget) Output() string {
	if w.errMsg != "" {
		return w.cfg.Prefix + ": " + w.value + " (" + w.errMsg + ")"
	}
	switch w.cfg.Interval {
	case domain.IntervalMinute:
		return w.cfg.Prefix + " last minute: " + w.value
	case domain.IntervalHour:
		return w.cfg.Prefix + " last hour: " + w.value
	case domain.IntervalDay:
		return w.cfg.Prefix + " last day: " + w.value
	case domain.IntervalWeek:
		return w.cfg.Prefix + " last week: " + w.value
	default:
		return w.cfg.Prefix + ": " + w.value
	}
}

// State returns StateWarning while an error is held, otherwise an empty string.
func (w *Widget) State() string {
	if w.errMsg != "" {
		return StateWarning
	}
	return ""
}

// Status bundles Output and State for publishing to the host's sinks.
func (w *Widget) Status() Status {
	return Status{Text: w.Output(), State: w.State()}
}
