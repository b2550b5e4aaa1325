package clikit

import (
	"context"

	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/errs"
)

// FindSubcommand returns the direct sub-command called name
func (c *Command) FindSubcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub != nil && sub.Name == name {
			return sub
		}
	}

	return nil
}

// AddSubcommand appends sub-commands
func (c *Command) AddSubcommand(subcommands ...*Command) {
	c.Subcommands = append(c.Subcommands, subcommands...)
}

// Visit calls fn for c and every sub-command below it, depth first. Deferred commands that have not
// been loaded are visited without their children. fn returning false skips the children of a command.
func (c *Command) Visit(fn func(path []string, cmd *Command) bool) {
	c.visit(nil, fn)
}

func (c *Command) visit(parent []string, fn func([]string, *Command) bool) {
	path := append(append([]string(nil), parent...), c.Name)
	if !fn(path, c) {
		return
	}
	for _, sub := range c.effective().Subcommands {
		if sub != nil {
			sub.visit(path, fn)
		}
	}
}

// effective returns the loaded definition of a deferred command, or c itself
func (c *Command) effective() *Command {
	if c.loaded != nil {
		return c.loaded
	}

	return c
}

// CompletionName returns the name the command is invoked by
func (c *Command) CompletionName() string {
	return c.Name
}

// CompletionDescription returns the description of the command, taken from its loaded
// definition when the command itself has none
func (c *Command) CompletionDescription() string {
	if c.Description == "" && c.loaded != nil {
		return c.loaded.Description
	}

	return c.Description
}

// CompletionHidden reports whether the command is left out of help and completion listings
func (c *Command) CompletionHidden() bool {
	return c.Hidden
}

// CompletionFields returns the completion view of the fields of the command. Deferred commands
// report the fields of their loaded definition once resolved.
func (c *Command) CompletionFields() []completion.FieldSpec {
	fields := c.effective().Fields
	specs := make([]completion.FieldSpec, 0, len(fields))
	for _, f := range fields {
		if f != nil {
			specs = append(specs, f.spec())
		}
	}

	return specs
}

// CompletionChildren returns the sub-commands of the command
func (c *Command) CompletionChildren() []completion.Node {
	subs := c.effective().Subcommands
	nodes := make([]completion.Node, 0, len(subs))
	for _, sub := range subs {
		if sub != nil {
			nodes = append(nodes, sub)
		}
	}

	return nodes
}

// Resolved reports whether the definition of the command is available
func (c *Command) Resolved() bool {
	return c.Loader == nil || c.loaded != nil
}

// Resolve loads a deferred command. The result is kept, later calls return it.
func (c *Command) Resolve(ctx context.Context) (completion.Node, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Command) load(ctx context.Context) error {
	if c.Resolved() {
		return nil
	}

	loaded, err := c.Loader(ctx)
	if err != nil {
		return err
	}
	if loaded == nil {
		return errs.ErrNilCommand
	}
	if loaded.Callback == nil {
		loaded.Callback = c.Callback
	}
	c.loaded = loaded

	return nil
}

func (f *Field) spec() completion.FieldSpec {
	return completion.FieldSpec{
		Name:        f.Name,
		CLIName:     f.cliName(),
		Alias:       f.Alias,
		Description: f.Description,
		Positional:  f.Positional,
		Required:    f.Required,
		Hidden:      f.Hidden,
		Type:        f.Type,
		EnumValues:  f.EnumValues,
		Completion:  f.Completion,
	}
}

func (f *Field) cliName() string {
	if f.CLIName != "" {
		return f.CLIName
	}

	return completion.DefaultCLIName(f.Name)
}
