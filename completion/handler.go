package completion

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/napalu/clikit/internal/parse"
)

// HiddenCommandName is the sub-command the dynamic stubs invoke. It never appears in help or
// completion listings.
const HiddenCommandName = "__complete"

// LineEnv carries the command line up to the cursor. When set, it takes precedence over the
// arguments passed to the hidden command.
const LineEnv = "CLIKIT_COMP_LINE"

// Handler answers completion requests for a command tree
type Handler struct {
	root Node
	cfg  *config
	gen  *CandidateGenerator
}

// NewHandler returns a handler for the tree rooted at root
func NewHandler(root Node, opts ...Option) *Handler {
	cfg := newConfig(opts...)
	return &Handler{root: root, cfg: cfg, gen: &CandidateGenerator{cfg: cfg}}
}

// Complete computes candidates for args, the words after the program name with the word under
// the cursor last. Deferred commands on the path are loaded within the configured timeout.
// Failures are reported through the Error directive.
func (h *Handler) Complete(ctx context.Context, args []string) ([]Candidate, Directive) {
	log := h.cfg.logger.With(slog.Any("args", args))

	parser, err := NewContextParser(h.root)
	if err != nil {
		log.Debug("invalid command tree", slog.Any("error", err))
		return nil, Directive{Error: true}
	}

	loadCtx, cancel := context.WithTimeout(ctx, h.cfg.timeout)
	c, err := parser.Parse(loadCtx, args)
	cancel()
	if err != nil {
		log.Debug("context parse failed", slog.Any("error", err))
		return nil, Directive{Error: true}
	}

	cands, d := h.gen.Generate(ctx, c)
	log.Debug("completed",
		slog.String("path", strings.Join(c.Path, " ")),
		slog.String("type", c.Type.String()),
		slog.Int("candidates", len(cands)),
		slog.String("directive", d.String()))

	return cands, d
}

// Run serves one request of the hidden command and writes the response to w
func (h *Handler) Run(ctx context.Context, w io.Writer, args []string) error {
	if line := h.cfg.getenv(LineEnv); line != "" {
		args = argsFromLine(line)
	}

	cands, d := h.Complete(ctx, args)

	return NewShellFormatter(w).Write(cands, d)
}

// argsFromLine splits a raw command line and drops the program name
func argsFromLine(line string) []string {
	words := parse.SplitCompletionLine(line)
	if len(words) <= 1 {
		return []string{""}
	}

	return words[1:]
}
