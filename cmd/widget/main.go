// Command widget drives the APM status-bar widget: on every tick it refreshes
// the widget and prints the rendered line to stdout, one line per tick, with a
// " [warning]" suffix while an error is held.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	statsexec "github.com/vshulcz/apmtrack/internal/adapters/stats/exec"
	"github.com/vshulcz/apmtrack/internal/config"
	"github.com/vshulcz/apmtrack/internal/widget"
	"github.com/vshulcz/apmtrack/pkg/observer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadWidgetConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	w := widget.New(widget.Config{
		Interval: cfg.Interval,
		Prefix:   cfg.Prefix,
		Refresh:  cfg.Refresh,
	}, statsexec.New(cfg.StatsCommand))

	subject := observer.NewSubject(observer.ObserverFunc[widget.Status](printStatus))
	subject.SetErrorHandler(func(err error) {
		logger.Warn("status sink failed", zap.Error(err))
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	w.Update(ctx)
	subject.Publish(ctx, w.Status())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Update(ctx)
			subject.Publish(ctx, w.Status())
		}
	}
}

func printStatus(_ context.Context, st widget.Status) error {
	line := st.Text
	if st.State == widget.StateWarning {
		line += " [warning]"
	}
	_, err := fmt.Println(line)
	return err
}
