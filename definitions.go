package clikit

import (
	"context"
	"io"

	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/types"
	"golang.org/x/text/language"
)

// CommandFunc callback - optionally specified as part of the Command structure gets called when matched on Parse()
type CommandFunc func(p *Parser, command *Command) error

// Loader returns the definition of a deferred command. It is called at most once, the first time the
// command is entered on the command line or during completion.
type Loader func(ctx context.Context) (*Command, error)

// ConfigureCommandFunc is used when defining Command options
type ConfigureCommandFunc func(command *Command)

// ConfigureFieldFunc is used when defining Field options
type ConfigureFieldFunc func(field *Field)

// ConfigureParserFunc is used when defining Parser options
type ConfigureParserFunc func(p *Parser, err *error)

// Command defines commands and sub-commands
type Command struct {
	Name        string
	Description string
	Fields      []*Field
	Subcommands []*Command
	Callback    CommandFunc
	// Hidden commands can be invoked but are never listed in help or completion
	Hidden bool
	// Loader makes the command deferred: Fields and Subcommands come from the loaded command
	Loader Loader

	loaded *Command
	// raw commands receive every remaining argument as a positional, flags included
	raw bool
}

// Field defines a flag or, when Positional is set, a positional argument of a command
type Field struct {
	Name         string
	CLIName      string
	Alias        string
	Description  string
	Type         types.ValueType
	Required     bool
	Positional   bool
	Hidden       bool
	DefaultValue string
	EnumValues   []string
	Completion   *completion.Hint
}

// PositionalArgument describes command-line arguments which were not matched as flags, flag values or commands
type PositionalArgument struct {
	Position int
	Value    string
}

// Parser opaque struct used to parse and execute command lines against a command tree
type Parser struct {
	root           *Command
	stdout         io.Writer
	lang           language.Tag
	helpWidth      int
	renderer       Renderer
	completionOpts []completion.Option

	ctx           context.Context
	command       *Command
	commandPath   []string
	scope         *fieldScope
	values        map[string][]string
	positionals   []PositionalArgument
	errors        []error
	helpRequested bool
}

// Renderer renders help output
type Renderer interface {
	FieldName(f *Field) string
	FieldDescription(f *Field) string
	CommandUsage(path []string, c *Command) string
	PrintHelp(w io.Writer, path []string, c *Command)
}
