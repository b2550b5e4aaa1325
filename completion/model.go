package completion

import (
	"strings"

	"github.com/napalu/clikit/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CompletableOption is a named flag of a command
type CompletableOption struct {
	Name            string
	CLIName         string
	Alias           string
	Description     string
	TakesValue      bool
	ValueType       types.ValueType
	Required        bool
	ValueCompletion ValueCompletion
}

// Repeatable reports whether the option may be given more than once
func (o CompletableOption) Repeatable() bool {
	return o.ValueType.Repeatable()
}

// Long returns the --name spelling
func (o CompletableOption) Long() string {
	return "--" + o.CLIName
}

// Short returns the -a spelling, or "" when the option has no alias
func (o CompletableOption) Short() string {
	if o.Alias == "" {
		return ""
	}

	return "-" + o.Alias
}

// Spellings returns every way the option can be written on the command line
func (o CompletableOption) Spellings() []string {
	if o.Alias == "" {
		return []string{o.Long()}
	}

	return []string{o.Long(), o.Short()}
}

// CompletablePositional is a positional argument of a command
type CompletablePositional struct {
	Name            string
	CLIName         string
	Description     string
	Position        int
	Required        bool
	Variadic        bool
	ValueCompletion ValueCompletion
}

// CompletableSubcommand is a command of the extracted model
type CompletableSubcommand struct {
	Name        string
	Description string
	Options     []CompletableOption
	Positionals []CompletablePositional
	Subcommands []*CompletableSubcommand
	// Placeholder marks a command whose definition has not been loaded
	Placeholder bool
}

// Find returns the direct sub-command called name
func (c *CompletableSubcommand) Find(name string) *CompletableSubcommand {
	for _, s := range c.Subcommands {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// PositionalAt returns the positional that consumes the argument at index. A variadic last
// positional consumes every index from its own position on.
func (c *CompletableSubcommand) PositionalAt(index int) (CompletablePositional, bool) {
	return positionalAt(c.Positionals, index)
}

func positionalAt(positionals []CompletablePositional, index int) (CompletablePositional, bool) {
	for _, p := range positionals {
		if p.Position == index || (p.Variadic && index >= p.Position) {
			return p, true
		}
	}

	return CompletablePositional{}, false
}

// Model is the extracted, shell-independent view of a command tree
type Model struct {
	Root *CompletableSubcommand
	// Globals are the root's options, accepted at every depth
	Globals []CompletableOption
}

// Lookup walks path from the root and returns the command found there
func (m *Model) Lookup(path []string) *CompletableSubcommand {
	cmd := m.Root
	for _, name := range path {
		if cmd = cmd.Find(name); cmd == nil {
			return nil
		}
	}

	return cmd
}

// VisibleOptions returns the options accepted by cmd: its own, followed by the globals it does
// not shadow. The root's own options are the globals, so they are not repeated.
func (m *Model) VisibleOptions(cmd *CompletableSubcommand) []CompletableOption {
	if cmd == m.Root {
		return cmd.Options
	}

	return newOptionIndex(cmd.Options, m.Globals).list()
}

// optionIndex resolves flag spellings to options while preserving declaration order
type optionIndex struct {
	byName  *orderedmap.OrderedMap[string, CompletableOption]
	byAlias map[string]string
}

// newOptionIndex indexes the options of each set in turn. An option whose name or alias is
// already taken by an earlier set is shadowed.
func newOptionIndex(sets ...[]CompletableOption) *optionIndex {
	idx := &optionIndex{
		byName:  orderedmap.New[string, CompletableOption](),
		byAlias: make(map[string]string),
	}
	for _, set := range sets {
		for _, o := range set {
			if _, found := idx.byName.Get(o.CLIName); found {
				continue
			}
			if o.Alias != "" {
				if _, taken := idx.byAlias[o.Alias]; taken {
					o.Alias = ""
				} else {
					idx.byAlias[o.Alias] = o.CLIName
				}
			}
			idx.byName.Set(o.CLIName, o)
		}
	}

	return idx
}

// lookup resolves a spelling such as --env or -e
func (x *optionIndex) lookup(flag string) (CompletableOption, bool) {
	switch {
	case strings.HasPrefix(flag, "--"):
		return x.byName.Get(flag[2:])
	case strings.HasPrefix(flag, "-") && len(flag) > 1:
		if name, ok := x.byAlias[flag[1:]]; ok {
			return x.byName.Get(name)
		}
	}

	return CompletableOption{}, false
}

func (x *optionIndex) list() []CompletableOption {
	out := make([]CompletableOption, 0, x.byName.Len())
	for pair := x.byName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}
