// Package tracker implements the action tracking service: it drains an event
// source into a bounded ring, persists the ring on a fixed cadence, and logs
// periodic APM summaries.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vshulcz/apmtrack/internal/config"
	"github.com/vshulcz/apmtrack/internal/domain"
	"github.com/vshulcz/apmtrack/internal/ports"
	"github.com/vshulcz/apmtrack/internal/services/report"
)

// Capacity is seven days of events at one per second, the retention horizon
// of the longest reported window.
const Capacity = 7 * 24 * 60 * 60

// Service owns the event ring and the persistence cadence.
type Service struct {
	log   *zap.Logger
	src   ports.EventSource
	store ports.EventStore
	ring  *ring
	cfg   config.TrackerConfig
}

// New wires the tracker from its source, store, and configuration.
func New(cfg config.TrackerConfig, src ports.EventSource, store ports.EventStore, log *zap.Logger) *Service {
	return &Service{
		cfg:   cfg,
		src:   src,
		store: store,
		log:   log,
		ring:  newRing(Capacity),
	}
}

// Run restores persisted events, starts the source, and services the loop
// until ctx is done. The ring is saved on the way out.
func (s *Service) Run(ctx context.Context) error {
	if err := s.restore(ctx); err != nil {
		return err
	}

	events, err := s.src.Start(ctx)
	if err != nil {
		return fmt.Errorf("start event source: %w", err)
	}
	defer s.src.Stop()

	saveT := time.NewTicker(s.cfg.SaveInterval)
	defer saveT.Stop()
	statsT := time.NewTicker(s.cfg.StatsInterval)
	defer statsT.Stop()

	s.log.Info("tracker started",
		zap.String("data_file", s.cfg.DataFile),
		zap.Int("restored_events", s.ring.Len()))

	for {
		select {
		case <-ctx.Done():
			s.save(context.Background())
			s.log.Info("tracker stopped", zap.Int("events", s.ring.Len()))
			return nil
		case ev, ok := <-events:
			if !ok {
				s.save(context.Background())
				return errors.New("event source closed")
			}
			s.ring.Add(ev.Timestamp)
		case <-saveT.C:
			s.save(ctx)
		case <-statsT.C:
			s.logStats()
		}
	}
}

func (s *Service) restore(ctx context.Context) error {
	events, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if errors.Is(err, domain.ErrBadFormat) || errors.Is(err, domain.ErrUnsupportedVersion) {
			s.log.Warn("ignoring unreadable data file", zap.Error(err))
			return nil
		}
		return fmt.Errorf("load events: %w", err)
	}
	s.ring.Fill(events)
	return nil
}

func (s *Service) save(ctx context.Context) {
	if s.ring.Len() == 0 {
		return
	}
	if err := s.store.Save(ctx, s.ring.Events()); err != nil {
		s.log.Warn("save failed", zap.Error(err))
	}
}

func (s *Service) logStats() {
	events := s.ring.Events()
	now := time.Now()
	s.log.Info("apm summary",
		zap.Float64("1h", report.APM(events, 60, now)),
		zap.Float64("24h", report.APM(events, 24*60, now)),
		zap.Float64("7d", report.APM(events, 7*24*60, now)))
}
