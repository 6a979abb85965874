//go:build linux

// Package evdev reads user actions from the Linux input subsystem. Every
// /dev/input/event* device that advertises key or relative-axis capability is
// watched; key and button presses are forwarded as domain events.
package evdev

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/vshulcz/apmtrack/internal/domain"
	"github.com/vshulcz/apmtrack/internal/misc"
	"github.com/vshulcz/apmtrack/internal/ports"
)

const (
	maxDevices = 32
	// pollDelay paces the nonblocking read loop while a device is idle.
	pollDelay = 100 * time.Millisecond
)

// Source watches input devices under a directory, normally /dev/input.
type Source struct {
	log      *zap.Logger
	events   chan domain.Event
	stop     chan struct{}
	dir      string
	wg       sync.WaitGroup
	stopOnce sync.Once
}

var _ ports.EventSource = (*Source)(nil)

// New creates a source scanning dir for event devices.
func New(dir string, log *zap.Logger) *Source {
	return &Source{
		dir:    dir,
		log:    log,
		events: make(chan domain.Event, 256),
		stop:   make(chan struct{}),
	}
}

// Start discovers eligible devices and launches one read loop per device.
// The returned channel is closed once every loop has exited.
func (s *Source) Start(ctx context.Context) (<-chan domain.Event, error) {
	paths, err := s.discover()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		s.wg.Add(1)
		go s.readLoop(ctx, p)
	}
	go func() {
		s.wg.Wait()
		close(s.events)
	}()
	return s.events, nil
}

// Stop halts every read loop and waits for them to finish.
func (s *Source) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *Source) discover() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if len(paths) >= maxDevices {
			break
		}
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		p := filepath.Join(s.dir, e.Name())
		fd, err := openDevice(p)
		if err != nil {
			s.log.Debug("cannot open input device", zap.String("device", p), zap.Error(err))
			continue
		}
		ok, err := hasKeyOrRel(fd)
		_ = unix.Close(fd)
		if err != nil {
			s.log.Debug("cannot query device capabilities", zap.String("device", p), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		paths = append(paths, p)
		s.log.Info("monitoring device", zap.String("device", p))
	}

	if len(paths) == 0 {
		return nil, domain.ErrNoDevices
	}
	return paths, nil
}

func (s *Source) readLoop(ctx context.Context, path string) {
	defer s.wg.Done()

	fd, err := openDevice(path)
	if err != nil {
		s.log.Warn("cannot reopen input device", zap.String("device", path), zap.Error(err))
		return
	}
	defer func() { _ = unix.Close(fd) }()

	buf := make([]byte, eventSize*64)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		default:
		}

		n, err := unix.Read(fd, buf)
		switch {
		case err == unix.EAGAIN:
			if !s.wait(ctx, pollDelay) {
				return
			}
			continue
		case err != nil || n == 0:
			// device went away (unplug, suspend); try to get it back
			_ = unix.Close(fd)
			rerr := misc.Retry(ctx, misc.DefaultBackoff,
				func(error) bool { return true },
				func() error {
					nfd, oerr := openDevice(path)
					if oerr == nil {
						fd = nfd
					}
					return oerr
				})
			if rerr != nil {
				s.log.Warn("input device lost", zap.String("device", path), zap.Error(rerr))
				fd = -1
				return
			}
			continue
		}

		now := time.Now().Unix()
		for _, ev := range decodeEvents(buf[:n]) {
			if !isAction(ev) {
				continue
			}
			select {
			case s.events <- domain.Event{Timestamp: now}:
			default:
				// consumer is behind; dropping an action beats blocking the device
			}
		}
	}
}

// wait sleeps for d unless the source is stopped first.
func (s *Source) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-s.stop:
		return false
	case <-t.C:
		return true
	}
}

func openDevice(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}
	return fd, nil
}

// hasKeyOrRel checks EVIOCGBIT(0) for key or relative-axis event support,
// which is what distinguishes keyboards and mice from e.g. lid switches.
func hasKeyOrRel(fd int) (bool, error) {
	var bits [4]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgbit(0, len(bits)), uintptr(unsafe.Pointer(&bits[0])))
	if errno != 0 {
		return false, errno
	}
	hasBit := func(ev uint) bool { return bits[ev/8]&(1<<(ev%8)) != 0 }
	return hasBit(evKey) || hasBit(evRel), nil
}

// eviocgbit builds the EVIOCGBIT(ev, size) ioctl request number:
// _IOC(_IOC_READ, 'E', 0x20+ev, size).
func eviocgbit(ev, size int) uintptr {
	const iocRead = 2
	return uintptr(iocRead<<30 | size<<16 | 'E'<<8 | (0x20 + ev))
}
