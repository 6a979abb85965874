package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vshulcz/apmtrack/internal/domain"
)

const sampleReport = `Actions Per Minute (APM) Statistics:
--------------------------------
Last 1 minute:    12.00 APM
Last 5 minutes:   10.40 APM
Last 15 minutes:  9.33 APM
Last hour:        42.50 APM
Last 24 hours:    5.21 APM
Last 7 days:      1.07 APM`

type fakeRunner struct {
	err    error
	stdout string
	code   int
	calls  int
}

func (f *fakeRunner) Run(context.Context) (int, string, error) {
	f.calls++
	return f.code, f.stdout, f.err
}

func newTestWidget(cfg Config, r *fakeRunner, now time.Time) *Widget {
	w := New(cfg, r)
	w.now = func() time.Time { return now }
	return w
}

func TestUpdateParsesIntervals(t *testing.T) {
	tests := []struct {
		name      string
		interval  domain.Interval
		stdout    string
		wantValue string
		wantErr   string
	}{
		{name: "minute", interval: domain.IntervalMinute, stdout: sampleReport, wantValue: "12.00"},
		{name: "hour short phrasing", interval: domain.IntervalHour, stdout: sampleReport, wantValue: "42.50"},
		{name: "hour long phrasing", interval: domain.IntervalHour, stdout: "Last 1 hour:   7.00 APM", wantValue: "7.00"},
		{
			name:     "hour prefers long phrasing when both present",
			interval: domain.IntervalHour,
			stdout:   "Last hour:  42.50 APM\nLast 1 hour:  7.00 APM",
			wantValue: "7.00",
		},
		{name: "day", interval: domain.IntervalDay, stdout: sampleReport, wantValue: "5.21"},
		{name: "week", interval: domain.IntervalWeek, stdout: sampleReport, wantValue: "1.07"},
		{name: "unrecognized falls back to hour", interval: domain.Interval("fortnight"), stdout: sampleReport, wantValue: "42.50"},
		{name: "no phrase at all", interval: domain.IntervalHour, stdout: "nothing to see here", wantValue: "0.00", wantErr: "No pattern match"},
		{name: "decimal text preserved verbatim", interval: domain.IntervalMinute, stdout: "Last 1 minute:  0.50 APM", wantValue: "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{stdout: tt.stdout}
			w := newTestWidget(Config{Interval: tt.interval, Prefix: "APM", Refresh: time.Second}, r, time.Now())
			w.Update(context.Background())
			if w.value != tt.wantValue {
				t.Errorf("value = %q, want %q", w.value, tt.wantValue)
			}
			if w.errMsg != tt.wantErr {
				t.Errorf("errMsg = %q, want %q", w.errMsg, tt.wantErr)
			}
		})
	}
}

func TestUpdateCommandFailed(t *testing.T) {
	r := &fakeRunner{code: 1, stdout: sampleReport}
	w := newTestWidget(Config{Interval: domain.IntervalHour, Prefix: "APM", Refresh: time.Second}, r, time.Now())
	w.Update(context.Background())
	if w.value != "Error" || w.errMsg != "Command failed" {
		t.Fatalf("got value=%q errMsg=%q, want Error/Command failed", w.value, w.errMsg)
	}
}

func TestUpdateLaunchFailure(t *testing.T) {
	r := &fakeRunner{err: errors.New("exec: not found")}
	w := newTestWidget(Config{Interval: domain.IntervalHour, Prefix: "APM", Refresh: time.Second}, r, time.Now())
	w.Update(context.Background())
	if w.value != "Error" {
		t.Fatalf("value = %q, want Error", w.value)
	}
	if w.errMsg != "exec: not found" {
		t.Fatalf("errMsg = %q, want the launch error text", w.errMsg)
	}
}

func TestUpdateRefreshGate(t *testing.T) {
	base := time.Unix(1700000000, 0)
	r := &fakeRunner{stdout: sampleReport}
	w := New(Config{Interval: domain.IntervalHour, Prefix: "APM", Refresh: 5 * time.Second}, r)

	clock := base
	w.now = func() time.Time { return clock }

	w.Update(context.Background())
	if r.calls != 1 {
		t.Fatalf("first update should poll, calls = %d", r.calls)
	}

	// within the window: no invocation and no state change at all
	r.stdout = "Last hour:  99.99 APM"
	before := *w
	clock = base.Add(3 * time.Second)
	w.Update(context.Background())
	if r.calls != 1 {
		t.Fatalf("gated update polled, calls = %d", r.calls)
	}
	if w.value != before.value || w.errMsg != before.errMsg || !w.last.Equal(before.last) {
		t.Fatal("gated update mutated state")
	}

	// window elapsed: polls again and picks up the new output
	clock = base.Add(6 * time.Second)
	w.Update(context.Background())
	if r.calls != 2 {
		t.Fatalf("update after window should poll, calls = %d", r.calls)
	}
	if w.value != "99.99" {
		t.Fatalf("value = %q, want 99.99", w.value)
	}
}

func TestUpdateClearsPreviousError(t *testing.T) {
	r := &fakeRunner{code: 1}
	clock := time.Unix(1700000000, 0)
	w := New(Config{Interval: domain.IntervalHour, Prefix: "APM", Refresh: time.Second}, r)
	w.now = func() time.Time { return clock }

	w.Update(context.Background())
	if w.State() != StateWarning {
		t.Fatal("expected warning after failed poll")
	}

	r.code = 0
	r.stdout = sampleReport
	clock = clock.Add(2 * time.Second)
	w.Update(context.Background())
	if w.errMsg != "" {
		t.Fatalf("errMsg = %q, want cleared", w.errMsg)
	}
	if w.State() != "" {
		t.Fatal("state should be empty after a clean poll")
	}
}

func TestOutput(t *testing.T) {
	tests := []struct {
		name     string
		interval domain.Interval
		value    string
		errMsg   string
		want     string
	}{
		{name: "initial", interval: domain.IntervalHour, value: "N/A", want: "APM last hour: N/A"},
		{name: "minute", interval: domain.IntervalMinute, value: "12.00", want: "APM last minute: 12.00"},
		{name: "day", interval: domain.IntervalDay, value: "5.21", want: "APM last day: 5.21"},
		{name: "week", interval: domain.IntervalWeek, value: "1.07", want: "APM last week: 1.07"},
		{name: "unrecognized interval", interval: domain.Interval("x"), value: "3.14", want: "APM: 3.14"},
		{name: "error embeds parentheses", interval: domain.IntervalHour, value: "Error", errMsg: "Command failed", want: "APM: Error (Command failed)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(Config{Interval: tt.interval, Prefix: "APM"}, &fakeRunner{})
			w.value = tt.value
			w.errMsg = tt.errMsg
			if got := w.Output(); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
			wantState := ""
			if tt.errMsg != "" {
				wantState = StateWarning
			}
			if got := w.State(); got != wantState {
				t.Errorf("State() = %q, want %q", got, wantState)
			}
		})
	}
}
