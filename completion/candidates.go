package completion

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// CandidateKind tells what a candidate stands for
type CandidateKind int

const (
	KindValue CandidateKind = iota
	KindSubcommand
	KindOption
	KindFile
	KindDirectory
)

// Candidate is one completion suggestion
type Candidate struct {
	Value       string
	Description string
	Kind        CandidateKind
}

// CandidateGenerator turns a Context into candidates and a directive
type CandidateGenerator struct {
	cfg *config
}

// NewCandidateGenerator returns a generator configured by opts
func NewCandidateGenerator(opts ...Option) *CandidateGenerator {
	return &CandidateGenerator{cfg: newConfig(opts...)}
}

var listDirective = Directive{FilterPrefix: true, NoFileCompletion: true}

// Generate produces the candidates for c. Only shell commands make use of ctx.
func (g *CandidateGenerator) Generate(ctx context.Context, c *Context) ([]Candidate, Directive) {
	switch c.Type {
	case CompleteSubcommand:
		if cands := subcommandCandidates(c, g.cfg.lang); len(cands) > 0 {
			return cands, listDirective
		}
		return optionCandidates(c, g.cfg.lang), listDirective
	case CompleteOptionName:
		return optionCandidates(c, g.cfg.lang), listDirective
	case CompleteOptionValue:
		if c.Option == nil {
			return nil, Directive{NoFileCompletion: true}
		}
		return g.values(ctx, c, c.Option.ValueCompletion)
	case CompletePositional:
		p, ok := c.Positional()
		if !ok {
			return nil, Directive{NoFileCompletion: true}
		}
		return g.values(ctx, c, p.ValueCompletion)
	default:
		return nil, Directive{}
	}
}

func (g *CandidateGenerator) values(ctx context.Context, c *Context, vc ValueCompletion) ([]Candidate, Directive) {
	switch v := vc.(type) {
	case Choices:
		d := listDirective
		d.KeepOrder = true
		return filterCandidates(c.CurrentWord, v.Values, KindValue), d
	case File:
		if !v.Filtered() {
			return nil, Directive{FileCompletion: true}
		}
		cands := listFiles(g.cfg.dir, c.CurrentWord, v)
		d := Directive{NoFileCompletion: true}
		if len(cands) == 1 && cands[0].Kind == KindDirectory {
			d.NoSpace = true
		}
		return cands, d
	case Directory:
		return nil, Directive{DirectoryCompletion: true}
	case ShellCommand:
		lines := g.cfg.runner().run(ctx, v.Command)
		return filterCandidates(c.CurrentWord, lines, KindValue), listDirective
	case None:
		return nil, Directive{NoFileCompletion: true}
	default:
		g.cfg.logger.Debug("no value completion, deferring to files", slog.String("word", c.CurrentWord))
		return nil, Directive{FileCompletion: true}
	}
}

func subcommandCandidates(c *Context, lang language.Tag) []Candidate {
	var cands []Candidate
	for _, child := range c.Subcommands() {
		name := child.CompletionName()
		if !strings.HasPrefix(name, c.CurrentWord) {
			continue
		}
		desc := child.CompletionDescription()
		if d, ok := child.(DeferredNode); ok && desc == "" && !d.Resolved() {
			desc = subcommandDescription(&CompletableSubcommand{Placeholder: true}, lang)
		}
		cands = append(cands, Candidate{Value: name, Description: desc, Kind: KindSubcommand})
	}

	return cands
}

// optionCandidates lists the options that may still be given. Repeatable options stay
// available after use.
func optionCandidates(c *Context, lang language.Tag) []Candidate {
	short := !strings.HasPrefix(c.CurrentWord, "--")
	hasHelp := false

	var cands []Candidate
	add := func(value, desc string) {
		if strings.HasPrefix(value, c.CurrentWord) {
			cands = append(cands, Candidate{Value: value, Description: desc, Kind: KindOption})
		}
	}
	for _, o := range c.Options {
		if o.CLIName == "help" {
			hasHelp = true
		}
		if !o.Repeatable() && usedAny(c.Used, o) {
			continue
		}
		add(o.Long(), o.Description)
		if short && o.Alias != "" {
			add(o.Short(), o.Description)
		}
	}
	if !hasHelp && !c.Used["--help"] {
		add("--help", helpDescription(lang))
	}

	return cands
}

func usedAny(used map[string]bool, o CompletableOption) bool {
	for _, s := range o.Spellings() {
		if used[s] {
			return true
		}
	}

	return false
}

func filterCandidates(prefix string, values []string, kind CandidateKind) []Candidate {
	var cands []Candidate
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			cands = append(cands, Candidate{Value: v, Kind: kind})
		}
	}

	return cands
}
