package completion

import (
	"context"
	"strings"

	"github.com/napalu/clikit/errs"
)

// CompletionType classifies the word under the cursor
type CompletionType int

const (
	CompleteSubcommand CompletionType = iota
	CompleteOptionName
	CompleteOptionValue
	CompletePositional
)

func (t CompletionType) String() string {
	switch t {
	case CompleteSubcommand:
		return "subcommand"
	case CompleteOptionName:
		return "option-name"
	case CompleteOptionValue:
		return "option-value"
	case CompletePositional:
		return "positional"
	default:
		return "unknown"
	}
}

// Context is what the command line up to the cursor says about the word being completed
type Context struct {
	// Path holds the sub-command names walked below the root
	Path        []string
	Command     Node
	Options     []CompletableOption
	Positionals []CompletablePositional
	// Used holds every spelling of the options already present
	Used            map[string]bool
	AfterDoubleDash bool
	// PositionalIndex counts the positional arguments before the current word
	PositionalIndex int
	CurrentWord     string
	// InlinePrefix is "--name=" when the value of an inline option is completed. CurrentWord
	// then holds only the value part.
	InlinePrefix string
	Type         CompletionType
	// Option is set when Type is CompleteOptionValue
	Option *CompletableOption
}

// Positional returns the positional the current word would fill
func (c *Context) Positional() (CompletablePositional, bool) {
	return positionalAt(c.Positionals, c.PositionalIndex)
}

// Subcommands returns the visible sub-commands of the current command
func (c *Context) Subcommands() []Node {
	return visibleChildren(c.Command)
}

// ContextParser walks partial command lines against a command tree
type ContextParser struct {
	root    Node
	globals []CompletableOption
}

// NewContextParser returns a parser for the tree rooted at root
func NewContextParser(root Node) (*ContextParser, error) {
	globals, err := ExtractGlobals(root)
	if err != nil {
		return nil, err
	}

	return &ContextParser{root: root, globals: globals}, nil
}

type level struct {
	node        Node
	options     []CompletableOption
	positionals []CompletablePositional
	index       *optionIndex
}

func (p *ContextParser) describe(n Node) (*level, error) {
	opts, positionals, err := splitFields(n.CompletionFields())
	if err != nil {
		return nil, inCommand(n.CompletionName(), err)
	}

	idx := newOptionIndex(opts)
	if n != p.root {
		idx = newOptionIndex(opts, p.globals)
	}

	return &level{node: n, options: idx.list(), positionals: positionals, index: idx}, nil
}

// Parse classifies the last element of args, the word under the cursor, given the words before
// it. args excludes the program name. Deferred commands on the path are resolved.
func (p *ContextParser) Parse(ctx context.Context, args []string) (*Context, error) {
	cur := ""
	if len(args) > 0 {
		cur = args[len(args)-1]
		args = args[:len(args)-1]
	}

	lvl, err := p.describe(p.root)
	if err != nil {
		return nil, err
	}

	c := &Context{Used: make(map[string]bool)}
	var pending *CompletableOption
	for _, w := range args {
		if pending != nil {
			pending = nil
			continue
		}
		if c.AfterDoubleDash {
			c.PositionalIndex++
			continue
		}
		if w == "--" {
			c.AfterDoubleDash = true
			continue
		}

		if isFlag(w) {
			name, _, inline := strings.Cut(w, "=")
			opt, ok := lvl.index.lookup(name)
			if !ok {
				c.Used[name] = true
				continue
			}
			for _, s := range opt.Spellings() {
				c.Used[s] = true
			}
			if opt.TakesValue && !inline {
				pending = &opt
			}
			continue
		}

		if c.PositionalIndex == 0 {
			if child := findChild(lvl.node, w); child != nil {
				resolved, err := resolveNode(ctx, child)
				if err != nil {
					return nil, err
				}
				if lvl, err = p.describe(resolved); err != nil {
					return nil, err
				}
				c.Path = append(c.Path, w)
				continue
			}
		}
		c.PositionalIndex++
	}

	c.Command = lvl.node
	c.Options = lvl.options
	c.Positionals = lvl.positionals
	c.CurrentWord = cur
	c.Option = pending

	switch {
	case pending != nil:
		c.Type = CompleteOptionValue
	case !c.AfterDoubleDash && strings.HasPrefix(cur, "--") && strings.Contains(cur, "="):
		name, value, _ := strings.Cut(cur, "=")
		if opt, ok := lvl.index.lookup(name); ok && opt.TakesValue {
			c.Type = CompleteOptionValue
			c.Option = &opt
			c.InlinePrefix = name + "="
			c.CurrentWord = value
		} else {
			c.Type = CompleteOptionName
		}
	case c.AfterDoubleDash:
		c.Type = CompletePositional
	case strings.HasPrefix(cur, "-"):
		c.Type = CompleteOptionName
	case c.PositionalIndex == 0 && len(visibleChildren(lvl.node)) > 0:
		c.Type = CompleteSubcommand
	default:
		c.Type = CompletePositional
	}

	return c, nil
}

func isFlag(w string) bool {
	return len(w) > 1 && w[0] == '-'
}

// findChild returns the direct child called name. Hidden children can be entered when typed.
func findChild(n Node, name string) Node {
	for _, child := range n.CompletionChildren() {
		if child != nil && child.CompletionName() == name {
			return child
		}
	}

	return nil
}

func visibleChildren(n Node) []Node {
	if n == nil {
		return nil
	}

	var out []Node
	for _, child := range n.CompletionChildren() {
		if child != nil && !child.CompletionHidden() {
			out = append(out, child)
		}
	}

	return out
}

func resolveNode(ctx context.Context, n Node) (Node, error) {
	d, ok := n.(DeferredNode)
	if !ok || d.Resolved() {
		return n, nil
	}

	resolved, err := d.Resolve(ctx)
	if err != nil {
		return nil, errs.ErrDeferredLoad.WithArgs(n.CompletionName()).Wrap(err)
	}
	if resolved == nil {
		return nil, errs.ErrDeferredLoad.WithArgs(n.CompletionName())
	}

	return resolved, nil
}
