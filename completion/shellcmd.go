package completion

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

type commandRunner struct {
	timeout time.Duration
	shell   []string
	dir     string
	logger  *slog.Logger
}

// run executes command and returns its trimmed, non-empty output lines. Failures and timeouts
// yield no lines.
func (r commandRunner) run(ctx context.Context, command string) []string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(append([]string(nil), r.shell[1:]...), command)
	cmd := exec.CommandContext(ctx, r.shell[0], args...)
	cmd.Dir = r.dir
	cmd.WaitDelay = time.Second

	out, err := cmd.Output()
	if err != nil {
		r.logger.Debug("completion command failed",
			slog.String("command", command),
			slog.Any("error", err))
		return nil
	}

	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
