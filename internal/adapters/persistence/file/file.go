// Package file persists recorded events in the tracker's binary data file.
//
// Layout, little-endian: magic uint32, version uint32, count uint32, then
// count int64 unix timestamps in chronological order. The layout is shared
// with the stats utility and must not change without a version bump.
package file

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vshulcz/apmtrack/internal/domain"
	"github.com/vshulcz/apmtrack/internal/ports"
)

const (
	magic   = 0x00415041 // "APA\0"
	version = 1
)

type header struct {
	Magic   uint32
	Version uint32
	Count   uint32
}

// Store reads and writes the event data file at a fixed path.
type Store struct {
	path string
}

var _ ports.EventStore = (*Store)(nil)

// New creates a store for the given data file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes all events atomically: a temp file in the same directory is
// renamed over the destination, so readers never observe a partial file.
func (s *Store) Save(_ context.Context, events []domain.Event) (retErr error) {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".apm-data-*")
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := true
	closed := false
	defer func() {
		if !closed {
			if cerr := tmp.Close(); cerr != nil && retErr == nil {
				retErr = fmt.Errorf("close tmp: %w", cerr)
			}
		}
		if cleanup {
			if err := os.Remove(tmpName); err != nil && retErr == nil {
				retErr = fmt.Errorf("remove tmp: %w", err)
			}
		}
	}()

	h := header{Magic: magic, Version: version, Count: uint32(len(events))}
	if err := binary.Write(tmp, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, ev := range events {
		if err := binary.Write(tmp, binary.LittleEndian, ev.Timestamp); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close tmp: %w", err)
	}
	closed = true
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	cleanup = false
	return nil
}

// Load reads every event from the data file. A missing file is reported as
// os.ErrNotExist so callers can decide whether that means "start fresh" or
// "nothing to report".
func (s *Store) Load(_ context.Context) (events []domain.Event, retErr error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("close: %w", cerr)
		}
	}()

	var h header
	if err := binary.Read(f, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated header", domain.ErrBadFormat)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("%w: magic %#x", domain.ErrBadFormat, h.Magic)
	}
	if h.Version != version {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, h.Version)
	}

	events = make([]domain.Event, 0, h.Count)
	for i := uint32(0); i < h.Count; i++ {
		var ts int64
		if err := binary.Read(f, binary.LittleEndian, &ts); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: truncated at event %d", domain.ErrBadFormat, i)
			}
			return nil, fmt.Errorf("read event: %w", err)
		}
		events = append(events, domain.Event{Timestamp: ts})
	}
	return events, nil
}

// Clear replaces the data file with an empty, valid one.
func (s *Store) Clear(ctx context.Context) error {
	return s.Save(ctx, nil)
}
