// Package exec runs the external statistics command and captures its output.
package exec

import (
	"bytes"
	"context"
	"errors"
	osexec "os/exec"
	"strings"

	"github.com/vshulcz/apmtrack/internal/ports"
)

// Runner shells out to a statistics command and reports exit code plus stdout.
type Runner struct {
	command string
	args    []string
}

var _ ports.StatsRunner = (*Runner)(nil)

// New creates a runner for the given command. The production widget runs the
// stats utility with no arguments; args exist for tests and overrides.
func New(command string, args ...string) *Runner {
	return &Runner{command: command, args: args}
}

// Run executes the command and blocks until it exits. A non-zero exit status
// is not an error here: it comes back through the exit code so the caller can
// apply its own failure policy. The process handle is always reaped, stderr is
// discarded.
func (r *Runner) Run(ctx context.Context) (int, string, error) {
	cmd := osexec.CommandContext(ctx, r.command, r.args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), strings.TrimSpace(stdout.String()), nil
		}
		return 0, "", err
	}
	return 0, strings.TrimSpace(stdout.String()), nil
}
