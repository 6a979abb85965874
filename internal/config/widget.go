package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vshulcz/apmtrack/internal/domain"
	"github.com/vshulcz/apmtrack/internal/misc"
)

const (
	defaultInterval = string(domain.IntervalHour)
	defaultPrefix   = "APM"
	defaultRefresh  = 1 // seconds
	defaultStatsCmd = "apm_stats"
	defaultTick     = 1 // seconds
)

// WidgetConfig configures the status-bar widget and its host driver.
type WidgetConfig struct {
	Interval     domain.Interval
	Prefix       string
	StatsCommand string
	Refresh      time.Duration
	Tick         time.Duration
}

// LoadWidgetConfig resolves the widget configuration, ENV > CLI > defaults.
func LoadWidgetConfig(args []string, out io.Writer) (WidgetConfig, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("widget", flag.ContinueOnError)
	fs.SetOutput(out)

	var intervalOpt string
	var prefixOpt string
	var cmdOpt string
	var refreshOpt int
	var tickOpt int

	fs.StringVar(&intervalOpt, "i", "", fmt.Sprintf("time window to display (minute|hour|day|week), default: %s", defaultInterval))
	fs.StringVar(&prefixOpt, "x", "", fmt.Sprintf("display prefix, default: %s", defaultPrefix))
	fs.StringVar(&cmdOpt, "c", "", fmt.Sprintf("stats command to run, default: %s", defaultStatsCmd))
	fs.IntVar(&refreshOpt, "r", -1, fmt.Sprintf("minimum seconds between stats invocations, default: %d", defaultRefresh))
	fs.IntVar(&tickOpt, "t", 0, fmt.Sprintf("driver tick in seconds, default: %d", defaultTick))

	if err := fs.Parse(args); err != nil {
		return WidgetConfig{}, err
	}

	interval := strings.TrimSpace(misc.Getenv("APM_INTERVAL", ""))
	if interval == "" {
		interval = strings.TrimSpace(intervalOpt)
	}
	if interval == "" {
		interval = defaultInterval
	}

	prefix := misc.Getenv("APM_PREFIX", "")
	if prefix == "" {
		prefix = prefixOpt
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	command := strings.TrimSpace(misc.Getenv("APM_STATS_CMD", ""))
	if command == "" {
		command = strings.TrimSpace(cmdOpt)
	}
	if command == "" {
		command = defaultStatsCmd
	}

	refresh := defaultRefresh
	if ev := strings.TrimSpace(misc.Getenv("APM_REFRESH", "")); ev != "" {
		refresh = misc.GetInt("APM_REFRESH", defaultRefresh)
	} else if refreshOpt >= 0 {
		refresh = refreshOpt
	}
	if refresh < 0 {
		return WidgetConfig{}, fmt.Errorf("refresh must be >= 0, got %d", refresh)
	}

	tick := defaultTick
	if ev := strings.TrimSpace(misc.Getenv("APM_TICK", "")); ev != "" {
		tick = misc.GetInt("APM_TICK", defaultTick)
	} else if tickOpt > 0 {
		tick = tickOpt
	}
	if tick <= 0 {
		return WidgetConfig{}, fmt.Errorf("tick must be > 0, got %d", tick)
	}

	return WidgetConfig{
		Interval:     domain.Interval(interval),
		Prefix:       prefix,
		StatsCommand: command,
		Refresh:      time.Duration(refresh) * time.Second,
		Tick:         time.Duration(tick) * time.Second,
	}, nil
}
