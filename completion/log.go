package completion

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv names a file the dynamic engine appends debug records to
const DebugEnv = "CLIKIT_COMPLETION_DEBUG"

// newDebugLogger logs to path, or nowhere when path is empty. Completion output goes to
// stdout, so diagnostics must never reach the terminal.
func newDebugLogger(path string) *slog.Logger {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return slog.New(slog.NewTextHandler(appendFile(path), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// appendFile opens the file for every write, so no descriptor outlives a completion request
type appendFile string

func (a appendFile) Write(p []byte) (int, error) {
	f, err := os.OpenFile(string(a), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return f.Write(p)
}
