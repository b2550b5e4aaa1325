package clikit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/errs"
	"github.com/napalu/clikit/i18n"
	"github.com/napalu/clikit/internal/util"
	"github.com/napalu/clikit/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/language"
)

// LangEnv selects the message language when no WithLanguage option is given
const LangEnv = "CLIKIT_LANG"

// NewParser returns a parser for the command tree rooted at root. The tree is validated: duplicate
// flags, invalid aliases or misplaced positionals are reported here rather than at parse time.
//
// Configuration example:
//
//	parser, err := NewParser(
//		NewCommand(
//			WithName("deployctl"),
//			WithFields(NewField("verbose", WithAlias("v"), WithType(types.Boolean))),
//			WithSubcommands(deploy, build)),
//		WithCompletionCommand())
func NewParser(root *Command, configs ...ConfigureParserFunc) (*Parser, error) {
	if root == nil {
		return nil, errs.ErrNilCommand
	}

	p := &Parser{
		root:      root,
		stdout:    os.Stdout,
		lang:      language.English,
		helpWidth: util.Width(util.DefaultTerminal{}, int(os.Stdout.Fd())),
		ctx:       context.Background(),
	}
	p.renderer = NewRenderer(p)
	if tag, err := language.Parse(os.Getenv(LangEnv)); err == nil {
		if matched, ok := matchLanguage(tag); ok {
			p.setLanguage(matched)
		}
	}

	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return nil, err
		}
	}

	if _, err = completion.Extract(root); err != nil {
		return nil, err
	}
	p.command = root
	p.commandPath = []string{root.Name}
	p.scope = newFieldScope(root, root)
	p.values = make(map[string][]string)

	return p, nil
}

// Parse parses args, the command line without the program name. It returns false when errors were
// found; they are available through GetErrors.
func (p *Parser) Parse(args []string) bool {
	return p.ParseContext(context.Background(), args)
}

// ParseContext is Parse with a context, passed on to deferred command loaders and callbacks
func (p *Parser) ParseContext(ctx context.Context, args []string) bool {
	p.reset(ctx)

	afterDoubleDash := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case p.command.raw || afterDoubleDash:
			p.addPositional(i, arg)
		case arg == "--":
			afterDoubleDash = true
		case isFlag(arg):
			i = p.parseFlag(args, i)
		case len(p.positionals) == 0 && p.command.effective().FindSubcommand(arg) != nil:
			if err := p.descend(arg); err != nil {
				p.addError(err)
				return false
			}
		default:
			p.addPositional(i, arg)
		}
	}

	if !p.helpRequested && !p.command.raw {
		p.checkRequired()
	}

	return len(p.errors) == 0
}

func (p *Parser) reset(ctx context.Context) {
	p.ctx = ctx
	p.command = p.root
	p.commandPath = []string{p.root.Name}
	p.values = make(map[string][]string)
	p.positionals = nil
	p.errors = nil
	p.helpRequested = false
	if err := p.root.load(ctx); err != nil {
		p.addError(errs.ErrDeferredLoad.WithArgs(p.root.Name).Wrap(err))
	}
	p.scope = newFieldScope(p.root, p.root)
}

// descend enters the sub-command called name, loading it when deferred
func (p *Parser) descend(name string) error {
	sub := p.command.effective().FindSubcommand(name)
	if err := sub.load(p.ctx); err != nil {
		return errs.ErrDeferredLoad.WithArgs(name).Wrap(err)
	}
	p.command = sub
	p.commandPath = append(p.commandPath, name)
	p.scope = newFieldScope(sub, p.root)

	return nil
}

// parseFlag consumes the flag at args[i] and its value, returning the index of the last consumed argument
func (p *Parser) parseFlag(args []string, i int) int {
	spelling, value, inline := strings.Cut(args[i], "=")
	f := p.scope.lookup(spelling)
	if f == nil {
		if spelling == "--help" && !inline {
			p.helpRequested = true
		} else {
			p.addError(errs.ErrUnknownFlag.WithArgs(spelling))
		}
		return i
	}

	name := f.cliName()
	if _, seen := p.values[name]; seen && !f.Type.Repeatable() {
		p.addError(errs.ErrFlagNotRepeatable.WithArgs(spelling))
	}

	switch {
	case inline:
	case !f.Type.TakesValue():
		value = "true"
	case i+1 < len(args):
		i++
		value = args[i]
	default:
		p.addError(errs.ErrFlagExpectsValue.WithArgs(spelling))
		return i
	}

	p.setValue(f, spelling, value)

	return i
}

func (p *Parser) addPositional(i int, value string) {
	if p.command.raw {
		p.positionals = append(p.positionals, PositionalArgument{Position: i, Value: value})
		return
	}

	fields := p.scope.positionals
	index := len(p.positionals)
	switch {
	case len(fields) == 0 && len(visibleCommands(p.command.effective().Subcommands)) > 0 && index == 0:
		p.addError(errs.ErrCommandNotFound.WithArgs(value))
		return
	case len(fields) == 0:
		p.addError(errs.ErrUnexpectedArgument.WithArgs(value))
		return
	case index >= len(fields) && !fields[len(fields)-1].Type.Repeatable():
		p.addError(errs.ErrUnexpectedArgument.WithArgs(value))
		return
	}

	f := fields[min(index, len(fields)-1)]
	p.positionals = append(p.positionals, PositionalArgument{Position: i, Value: value})
	p.setValue(f, f.cliName(), value)
}

func (p *Parser) setValue(f *Field, spelling, value string) {
	name := f.cliName()
	values := []string{value}
	if f.Type.Repeatable() && !f.Positional {
		values = strings.Split(value, ",")
	}

	for _, v := range values {
		if err := checkValue(f, spelling, v); err != nil {
			p.addError(err)
			return
		}
	}
	p.values[name] = append(p.values[name], values...)
}

func checkValue(f *Field, spelling, value string) error {
	if len(f.EnumValues) > 0 && !slices.Contains(f.EnumValues, value) {
		return errs.ErrInvalidValue.WithArgs(value, spelling, strings.Join(f.EnumValues, ", "))
	}

	switch f.Type {
	case types.Number:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return errs.ErrInvalidValue.WithArgs(value, spelling, "number")
		}
	case types.Boolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return errs.ErrInvalidValue.WithArgs(value, spelling, "true, false")
		}
	}

	return nil
}

func (p *Parser) checkRequired() {
	for _, f := range p.scope.options() {
		if !f.Required || f.DefaultValue != "" {
			continue
		}
		if _, ok := p.values[f.cliName()]; !ok {
			p.addError(errs.ErrRequiredFlag.WithArgs("--" + f.cliName()))
		}
	}

	for i, f := range p.scope.positionals {
		if f.Required && f.DefaultValue == "" && i >= len(p.positionals) {
			p.addError(errs.ErrRequiredPositional.WithArgs(f.cliName()))
		}
	}
}

func (p *Parser) addError(err error) {
	p.errors = append(p.errors, err)
}

// Execute parses args and runs the callback of the matched command. --help prints the help of the
// matched command instead, as does a command without callback that has sub-commands.
func (p *Parser) Execute(ctx context.Context, args []string) error {
	if !p.ParseContext(ctx, args) {
		return errors.Join(p.errors...)
	}

	cmd := p.command.effective()
	if p.helpRequested || (cmd.Callback == nil && len(visibleCommands(cmd.Subcommands)) > 0) {
		p.renderer.PrintHelp(p.stdout, p.commandPath, p.command)
		return nil
	}

	path := strings.Join(p.commandPath, " ")
	if cmd.Callback == nil {
		return errs.ErrCommandNoCallback.WithArgs(path)
	}
	if err := cmd.Callback(p, p.command); err != nil {
		return errs.ErrCommandCallback.WithArgs(path).Wrap(err)
	}

	return nil
}

// PrintHelp writes the help page of the command matched by the last Parse
func (p *Parser) PrintHelp() {
	p.renderer.PrintHelp(p.stdout, p.commandPath, p.command)
}

// PrintUsage writes the usage line of the command matched by the last Parse
func (p *Parser) PrintUsage() {
	fmt.Fprintln(p.stdout, p.renderer.CommandUsage(p.commandPath, p.command))
}

// Get returns the value of a flag or positional by its command-line name, falling back to its
// default value. Repeated values are joined with ",".
func (p *Parser) Get(name string) (string, bool) {
	if values, ok := p.values[name]; ok {
		return strings.Join(values, ","), true
	}
	if f := p.scope.byName(name); f != nil && f.DefaultValue != "" {
		return f.DefaultValue, true
	}

	return "", false
}

// GetOrDefault returns the value of name or defaultValue when it was not supplied
func (p *Parser) GetOrDefault(name, defaultValue string) string {
	if v, ok := p.Get(name); ok {
		return v
	}

	return defaultValue
}

// GetBool reports whether a boolean flag is set
func (p *Parser) GetBool(name string) bool {
	v, ok := p.Get(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)

	return err == nil && b
}

// GetList returns every value of a repeatable field in command-line order
func (p *Parser) GetList(name string) []string {
	if values, ok := p.values[name]; ok {
		return append([]string(nil), values...)
	}
	if f := p.scope.byName(name); f != nil && f.DefaultValue != "" {
		return strings.Split(f.DefaultValue, ",")
	}

	return nil
}

// HasFlag reports whether a field was supplied on the command line
func (p *Parser) HasFlag(name string) bool {
	_, ok := p.values[name]
	return ok
}

// GetPositionalArgs returns the arguments which were not matched as flags, flag values or commands
func (p *Parser) GetPositionalArgs() []PositionalArgument {
	return append([]PositionalArgument(nil), p.positionals...)
}

// CommandPath returns the names of the matched command and its parents, the root included
func (p *Parser) CommandPath() []string {
	return append([]string(nil), p.commandPath...)
}

// HasCommand reports whether the space-separated command path was matched by the last Parse
func (p *Parser) HasCommand(path string) bool {
	matched := strings.Join(p.commandPath[1:], " ")
	return matched == path || strings.HasPrefix(matched, path+" ")
}

// Context returns the context of the last ParseContext or Execute
func (p *Parser) Context() context.Context {
	return p.ctx
}

// Stdout returns the writer help and command output go to
func (p *Parser) Stdout() io.Writer {
	return p.stdout
}

// HelpRequested reports whether --help was given
func (p *Parser) HelpRequested() bool {
	return p.helpRequested
}

// GetErrors returns the errors of the last Parse
func (p *Parser) GetErrors() []error {
	return append([]error(nil), p.errors...)
}

// GetErrorCount returns the number of errors of the last Parse
func (p *Parser) GetErrorCount() int {
	return len(p.errors)
}

// matchLanguage returns the supported language closest to tag, provided it is the same language
func matchLanguage(tag language.Tag) (language.Tag, bool) {
	matched := i18n.Default().Match(tag)
	want, _ := tag.Base()
	got, _ := matched.Base()

	return matched, want == got
}

func (p *Parser) setLanguage(tag language.Tag) {
	p.lang = tag
	i18n.SetDefaultLanguage(tag)
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// fieldScope indexes the fields accepted while a command is active: its own, then the options of
// the root that it does not shadow.
type fieldScope struct {
	long        *orderedmap.OrderedMap[string, *Field]
	short       map[string]*Field
	positionals []*Field
}

func newFieldScope(cmd, root *Command) *fieldScope {
	s := &fieldScope{long: orderedmap.New[string, *Field](), short: make(map[string]*Field)}
	sets := [][]*Field{cmd.effective().Fields}
	if cmd != root {
		sets = append(sets, root.effective().Fields)
	}

	for n, set := range sets {
		for _, f := range set {
			switch {
			case f == nil:
			case f.Positional:
				if n == 0 {
					s.positionals = append(s.positionals, f)
				}
			default:
				if _, present := s.long.Get(f.cliName()); present {
					continue
				}
				s.long.Set(f.cliName(), f)
				if f.Alias != "" && f.Alias != "-" && s.short[f.Alias] == nil {
					s.short[f.Alias] = f
				}
			}
		}
	}

	return s
}

func (s *fieldScope) lookup(spelling string) *Field {
	switch {
	case strings.HasPrefix(spelling, "--"):
		f, _ := s.long.Get(spelling[2:])
		return f
	case strings.HasPrefix(spelling, "-"):
		return s.short[spelling[1:]]
	}

	return nil
}

func (s *fieldScope) options() []*Field {
	out := make([]*Field, 0, s.long.Len())
	for pair := s.long.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}

func (s *fieldScope) byName(name string) *Field {
	if f, ok := s.long.Get(name); ok {
		return f
	}
	for _, f := range s.positionals {
		if f.cliName() == name {
			return f
		}
	}

	return nil
}

// optionFields returns the visible options accepted by c
func (p *Parser) optionFields(c *Command) []*Field {
	scope := newFieldScope(c, p.root)
	out := make([]*Field, 0, len(scope.options()))
	for _, f := range scope.options() {
		if !f.Hidden {
			out = append(out, f)
		}
	}

	return out
}
