package ports

import (
	"context"

	"github.com/vshulcz/apmtrack/internal/domain"
)

// StatsRunner executes the external statistics command and captures its result.
// The call blocks until the process exits; err is reserved for launch and I/O
// failures, a non-zero exit status is reported through exitCode.
type StatsRunner interface {
	Run(ctx context.Context) (exitCode int, stdout string, err error)
}

// EventSource produces user action events until stopped.
type EventSource interface {
	Start(ctx context.Context) (<-chan domain.Event, error)
	Stop()
}

// EventStore persists recorded events between tracker runs.
type EventStore interface {
	Save(ctx context.Context, events []domain.Event) error
	Load(ctx context.Context) ([]domain.Event, error)
}
