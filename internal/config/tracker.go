package config

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vshulcz/apmtrack/internal/misc"
)

// DefaultDataFile is where the tracker keeps its event data unless told
// otherwise.
const DefaultDataFile = "/var/lib/apm_tracker/apm_data.bin"

const (
	defaultInputDir      = "/dev/input"
	defaultSaveInterval  = 5 * time.Minute
	defaultStatsInterval = time.Hour
)

// PidFileFor returns the pidfile path used for a given data file.
func PidFileFor(dataFile string) string {
	return filepath.Join(filepath.Dir(dataFile), "apm_tracker.pid")
}

// TrackerConfig configures the tracker daemon.
type TrackerConfig struct {
	DataFile      string
	PidFile       string
	InputDir      string
	SaveInterval  time.Duration
	StatsInterval time.Duration
}

// LoadTrackerConfig resolves the tracker configuration, ENV > CLI > defaults.
// The pidfile defaults to sitting next to the data file.
func LoadTrackerConfig(args []string, out io.Writer) (TrackerConfig, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	fs.SetOutput(out)

	var fileOpt string
	var dirOpt string
	var pidOpt string
	var saveOpt int

	fs.StringVar(&fileOpt, "f", "", fmt.Sprintf("data file path, default: %s", DefaultDataFile))
	fs.StringVar(&dirOpt, "d", "", fmt.Sprintf("input device directory, default: %s", defaultInputDir))
	fs.StringVar(&pidOpt, "p", "", "pidfile path, default: next to the data file")
	fs.IntVar(&saveOpt, "s", 0, fmt.Sprintf("save interval in seconds, default: %d", int(defaultSaveInterval.Seconds())))

	if err := fs.Parse(args); err != nil {
		return TrackerConfig{}, err
	}

	dataFile := strings.TrimSpace(misc.Getenv("APM_DATA_FILE", ""))
	if dataFile == "" {
		dataFile = strings.TrimSpace(fileOpt)
	}
	if dataFile == "" {
		dataFile = DefaultDataFile
	}

	inputDir := strings.TrimSpace(misc.Getenv("APM_INPUT_DIR", ""))
	if inputDir == "" {
		inputDir = strings.TrimSpace(dirOpt)
	}
	if inputDir == "" {
		inputDir = defaultInputDir
	}

	pidFile := strings.TrimSpace(misc.Getenv("APM_PID_FILE", ""))
	if pidFile == "" {
		pidFile = strings.TrimSpace(pidOpt)
	}
	if pidFile == "" {
		pidFile = PidFileFor(dataFile)
	}

	save := misc.GetDuration("APM_SAVE_INTERVAL", 0)
	if save == 0 && strings.TrimSpace(misc.Getenv("APM_SAVE_INTERVAL", "")) == "" {
		if saveOpt > 0 {
			save = time.Duration(saveOpt) * time.Second
		} else {
			save = defaultSaveInterval
		}
	}
	if save <= 0 {
		return TrackerConfig{}, fmt.Errorf("save interval must be > 0, got %v", save)
	}

	stats := misc.GetDuration("APM_STATS_INTERVAL", defaultStatsInterval)
	if stats <= 0 {
		return TrackerConfig{}, fmt.Errorf("stats interval must be > 0, got %v", stats)
	}

	return TrackerConfig{
		DataFile:      dataFile,
		PidFile:       pidFile,
		InputDir:      inputDir,
		SaveInterval:  save,
		StatsInterval: stats,
	}, nil
}
