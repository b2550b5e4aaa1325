package completion

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/text/language"
)

// Option configures the dynamic completion engine
type Option func(*config)

type config struct {
	dir     string
	timeout time.Duration
	shell   []string
	logger  *slog.Logger
	getenv  func(string) string
	lang    language.Tag
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		dir:     ".",
		timeout: DefaultTimeout,
		shell:   defaultShell(),
		getenv:  os.Getenv,
		lang:    language.English,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = newDebugLogger(cfg.getenv(DebugEnv))
	}

	return cfg
}

func (c *config) runner() commandRunner {
	return commandRunner{timeout: c.timeout, shell: c.shell, dir: c.dir, logger: c.logger}
}

// WithDir sets the directory relative file names are resolved against
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithTimeout bounds how long a completion shell command may run
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithShell sets the interpreter shell commands are run with, e.g. "/bin/bash", "-c"
func WithShell(argv ...string) Option {
	return func(c *config) {
		if len(argv) > 0 {
			c.shell = append([]string(nil), argv...)
		}
	}
}

// WithLogger sets the debug logger, replacing the one configured by the environment
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLanguage selects the language of built-in candidate descriptions
func WithLanguage(lang language.Tag) Option {
	return func(c *config) {
		c.lang = scriptLanguage(lang)
	}
}

// WithEnv replaces the environment lookup
func WithEnv(getenv func(string) string) Option {
	return func(c *config) {
		if getenv != nil {
			c.getenv = getenv
		}
	}
}

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}

	return []string{"/bin/sh", "-c"}
}
