package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/vshulcz/apmtrack/internal/domain"
)

// AcquirePidfile claims single-instance ownership through a pidfile. A
// pidfile naming a live process means another tracker is running; a stale one
// is overwritten. The returned release removes the file.
func AcquirePidfile(path string) (release func(), err error) {
	if raw, rerr := os.ReadFile(path); rerr == nil {
		if pid, perr := strconv.Atoi(strings.TrimSpace(string(raw))); perr == nil {
			alive, _ := process.PidExists(int32(pid))
			if alive && pid != os.Getpid() {
				return nil, fmt.Errorf("%w: pid %d", domain.ErrAlreadyRunning, pid)
			}
		}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, fmt.Errorf("write pidfile: %w", err)
	}
	return func() { _ = os.Remove(path) }, nil
}

// RunningPid reports the live tracker pid recorded in the pidfile, or 0 when
// no tracker is running.
func RunningPid(path string) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0
	}
	alive, err := process.PidExists(int32(pid))
	if err != nil || !alive {
		return 0
	}
	return pid
}
