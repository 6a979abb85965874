// Command stats prints actions-per-minute statistics computed from the data
// file maintained by the tracker daemon. The output line phrasings are a
// compatibility contract with the widget patterns and must not change.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/vshulcz/apmtrack/internal/adapters/persistence/file"
	"github.com/vshulcz/apmtrack/internal/config"
	"github.com/vshulcz/apmtrack/internal/services/report"
	"github.com/vshulcz/apmtrack/internal/services/tracker"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var dataFile string
	var pidFile string
	var clear bool
	var service bool

	flag.StringVar(&dataFile, "f", config.DefaultDataFile, "path to the data file")
	flag.StringVar(&pidFile, "p", "", "path to the tracker pidfile, default: next to the data file")
	flag.BoolVar(&clear, "clear", false, "reset the data file to an empty valid file")
	flag.BoolVar(&service, "service", false, "report whether the tracker daemon is running")
	flag.Parse()

	if pidFile == "" {
		pidFile = config.PidFileFor(dataFile)
	}

	ctx := context.Background()
	store := file.New(dataFile)

	switch {
	case service:
		pid := tracker.RunningPid(pidFile)
		if pid == 0 {
			return errors.New("tracker is not running")
		}
		fmt.Printf("tracker is running (pid %d)\n", pid)
	case clear:
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("cannot clear data file: %w", err)
		}
	default:
		events, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("cannot read data file: %w", err)
		}
		fmt.Print(report.Render(events, time.Now()))
	}
	return nil
}
