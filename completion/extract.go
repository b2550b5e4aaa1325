package completion

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ef-ds/deque"
	"github.com/napalu/clikit/errs"
)

// Extract builds the completion model of the tree rooted at root. Hidden commands and fields are
// left out. Deferred commands that have not been resolved become placeholders. The first
// configuration error aborts extraction and names the command it was found in.
func Extract(root Node) (*Model, error) {
	if root == nil {
		return nil, errs.ErrNilCommand
	}

	rootCmd, err := newSubcommand(root)
	if err != nil {
		return nil, inCommand(root.CompletionName(), err)
	}

	type pending struct {
		node   Node
		target *CompletableSubcommand
		path   []string
	}

	q := deque.New()
	q.PushBack(pending{node: root, target: rootCmd, path: []string{root.CompletionName()}})
	for q.Len() > 0 {
		v, _ := q.PopFront()
		p := v.(pending)
		for _, child := range p.node.CompletionChildren() {
			if child == nil || child.CompletionHidden() {
				continue
			}

			path := append(append([]string(nil), p.path...), child.CompletionName())
			if d, ok := child.(DeferredNode); ok && !d.Resolved() {
				p.target.Subcommands = append(p.target.Subcommands, &CompletableSubcommand{
					Name:        child.CompletionName(),
					Description: child.CompletionDescription(),
					Placeholder: true,
				})
				continue
			}

			sub, err := newSubcommand(child)
			if err != nil {
				return nil, inCommand(strings.Join(path, " "), err)
			}
			p.target.Subcommands = append(p.target.Subcommands, sub)
			q.PushBack(pending{node: child, target: sub, path: path})
		}
	}

	return &Model{
		Root:    rootCmd,
		Globals: append([]CompletableOption(nil), rootCmd.Options...),
	}, nil
}

// ExtractGlobals returns the options of root that are accepted at every depth
func ExtractGlobals(root Node) ([]CompletableOption, error) {
	if root == nil {
		return nil, errs.ErrNilCommand
	}

	opts, _, err := splitFields(root.CompletionFields())
	if err != nil {
		return nil, inCommand(root.CompletionName(), err)
	}

	return opts, nil
}

func inCommand(path string, err error) error {
	return errs.ErrInCommand.WithArgs(path).Wrap(err)
}

func newSubcommand(n Node) (*CompletableSubcommand, error) {
	opts, positionals, err := splitFields(n.CompletionFields())
	if err != nil {
		return nil, err
	}

	return &CompletableSubcommand{
		Name:        n.CompletionName(),
		Description: n.CompletionDescription(),
		Options:     opts,
		Positionals: positionals,
	}, nil
}

// splitFields converts the visible fields of one command into options and positionals
func splitFields(fields []FieldSpec) ([]CompletableOption, []CompletablePositional, error) {
	var (
		opts        []CompletableOption
		positionals []CompletablePositional
		fieldErrs   []error
	)

	names := make(map[string]struct{})
	aliases := make(map[string]struct{})
	for _, f := range fields {
		if f.Hidden {
			continue
		}

		if f.Positional {
			positionals = append(positionals, CompletablePositional{
				Name:            f.Name,
				CLIName:         cliNameOf(f),
				Description:     f.Description,
				Position:        len(positionals),
				Required:        f.Required,
				Variadic:        f.Type.Repeatable(),
				ValueCompletion: ResolveValueCompletion(f),
			})
			continue
		}

		opt := CompletableOption{
			Name:            f.Name,
			CLIName:         cliNameOf(f),
			Alias:           f.Alias,
			Description:     f.Description,
			TakesValue:      f.Type.TakesValue(),
			ValueType:       f.Type,
			Required:        f.Required,
			ValueCompletion: ResolveValueCompletion(f),
		}
		if err := checkOption(opt, names, aliases); err != nil {
			fieldErrs = append(fieldErrs, err)
			continue
		}
		opts = append(opts, opt)
	}

	if err := checkPositionals(positionals); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if len(fieldErrs) > 0 {
		return nil, nil, errors.Join(fieldErrs...)
	}

	return opts, positionals, nil
}

func checkOption(opt CompletableOption, names, aliases map[string]struct{}) error {
	if _, dup := names[opt.CLIName]; dup {
		return errs.ErrDuplicateOption.WithArgs(opt.CLIName)
	}
	names[opt.CLIName] = struct{}{}

	if opt.Alias != "" {
		if utf8.RuneCountInString(opt.Alias) != 1 || opt.Alias == "-" {
			return errs.ErrInvalidAlias.WithArgs(opt.CLIName, opt.Alias)
		}
		if _, dup := aliases[opt.Alias]; dup {
			return errs.ErrDuplicateAlias.WithArgs(opt.Alias)
		}
		aliases[opt.Alias] = struct{}{}
	}

	return checkMatchers(opt.ValueCompletion, opt.CLIName)
}

func checkMatchers(vc ValueCompletion, owner string) error {
	f, ok := vc.(File)
	if !ok {
		return nil
	}
	for _, m := range f.Matchers {
		if !doublestar.ValidatePattern(m) {
			return errs.ErrInvalidMatcher.WithArgs(m, owner)
		}
	}

	return nil
}

// checkPositionals enforces that nothing follows a variadic positional and that no required
// positional follows an optional one
func checkPositionals(positionals []CompletablePositional) error {
	var variadic, optional *CompletablePositional
	for i := range positionals {
		p := &positionals[i]
		if variadic != nil {
			return errs.ErrPositionalAfterVariadic.WithArgs(p.Name, variadic.Name)
		}
		if p.Required && optional != nil {
			return errs.ErrRequiredAfterOptional.WithArgs(p.Name, optional.Name)
		}
		if err := checkMatchers(p.ValueCompletion, p.Name); err != nil {
			return err
		}
		if !p.Required && optional == nil {
			optional = p
		}
		if p.Variadic {
			variadic = p
		}
	}

	return nil
}
