package tracker

import "github.com/vshulcz/apmtrack/internal/domain"

// ring holds event timestamps in arrival order, overwriting the oldest entry
// once capacity is reached. It is owned by the service loop goroutine and
// needs no locking.
type ring struct {
	buf   []int64
	head  int // next write position
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]int64, capacity)}
}

func (r *ring) Add(ts int64) {
	r.buf[r.head] = ts
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

func (r *ring) Len() int {
	return r.count
}

// Events returns the buffered timestamps oldest first.
func (r *ring) Events() []domain.Event {
	out := make([]domain.Event, 0, r.count)
	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		out = append(out, domain.Event{Timestamp: r.buf[(start+i)%len(r.buf)]})
	}
	return out
}

// Fill seeds the ring from persisted events, keeping only the newest entries
// when there are more than fit.
func (r *ring) Fill(events []domain.Event) {
	if len(events) > len(r.buf) {
		events = events[len(events)-len(r.buf):]
	}
	for _, ev := range events {
		r.Add(ev.Timestamp)
	}
}
