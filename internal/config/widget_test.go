package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vshulcz/apmtrack/internal/domain"
)

var widgetEnvKeys = []string{"APM_INTERVAL", "APM_PREFIX", "APM_STATS_CMD", "APM_REFRESH", "APM_TICK"}

func TestLoadWidgetConfig(t *testing.T) {
	tests := []struct {
		env       map[string]string
		name      string
		wantError string
		args      []string
		want      WidgetConfig
	}{
		{
			name: "defaults",
			args: []string{},
			env:  map[string]string{},
			want: WidgetConfig{
				Interval:     domain.IntervalHour,
				Prefix:       "APM",
				StatsCommand: "apm_stats",
				Refresh:      time.Second,
				Tick:         time.Second,
			},
		},
		{
			name: "only flags",
			args: []string{"-i", "minute", "-x", "Actions", "-c", "/usr/local/bin/apm_stats", "-r", "5", "-t", "2"},
			env:  map[string]string{},
			want: WidgetConfig{
				Interval:     domain.IntervalMinute,
				Prefix:       "Actions",
				StatsCommand: "/usr/local/bin/apm_stats",
				Refresh:      5 * time.Second,
				Tick:         2 * time.Second,
			},
		},
		{
			name: "env overrides flags",
			args: []string{"-i", "minute", "-r", "5"},
			env: map[string]string{
				"APM_INTERVAL": "week",
				"APM_REFRESH":  "30",
			},
			want: WidgetConfig{
				Interval:     domain.IntervalWeek,
				Prefix:       "APM",
				StatsCommand: "apm_stats",
				Refresh:      30 * time.Second,
				Tick:         time.Second,
			},
		},
		{
			name: "zero refresh allowed",
			args: []string{"-r", "0"},
			env:  map[string]string{},
			want: WidgetConfig{
				Interval:     domain.IntervalHour,
				Prefix:       "APM",
				StatsCommand: "apm_stats",
				Refresh:      0,
				Tick:         time.Second,
			},
		},
		{
			name: "unrecognized interval passes through",
			args: []string{"-i", "fortnight"},
			env:  map[string]string{},
			want: WidgetConfig{
				Interval:     domain.Interval("fortnight"),
				Prefix:       "APM",
				StatsCommand: "apm_stats",
				Refresh:      time.Second,
				Tick:         time.Second,
			},
		},
		{
			name:      "flag parse error",
			args:      []string{"-r", "oops"},
			env:       map[string]string{},
			wantError: "invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range widgetEnvKeys {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := LoadWidgetConfig(tt.args, os.Stderr)
			if tt.wantError != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantError)
				}
				if !strings.Contains(err.Error(), tt.wantError) {
					t.Fatalf("expected error %q, got %v", tt.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
