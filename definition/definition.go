// Package definition loads command trees from YAML or JSON documents.
//
//	name: deployctl
//	fields:
//	  - name: config
//	    alias: c
//	    completion: {type: file, extensions: [json, yaml]}
//	commands:
//	  - name: deploy
//	    fields:
//	      - {name: env, alias: e, required: true, completion: {choices: [dev, staging, prod]}}
//	      - {name: target, positional: true}
//	  - name: plugins
//	    include: plugins.yaml
//
// A command with include is deferred: the referenced document, resolved relative to the including
// one, is loaded the first time the command is used.
package definition

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/napalu/clikit"
	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/errs"
	"github.com/napalu/clikit/types"
	"gopkg.in/yaml.v3"
)

// Command is the document form of clikit.Command
type Command struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Hidden      bool       `yaml:"hidden"`
	Include     string     `yaml:"include"`
	Fields      []Field    `yaml:"fields"`
	Commands    []*Command `yaml:"commands"`
}

// Field is the document form of clikit.Field
type Field struct {
	Name        string      `yaml:"name"`
	CLIName     string      `yaml:"cli_name"`
	Alias       string      `yaml:"alias"`
	Description string      `yaml:"description"`
	Type        string      `yaml:"type"`
	Required    bool        `yaml:"required"`
	Positional  bool        `yaml:"positional"`
	Hidden      bool        `yaml:"hidden"`
	Default     string      `yaml:"default"`
	Enum        []string    `yaml:"enum"`
	Completion  *Completion `yaml:"completion"`
}

// Completion is the document form of completion.Hint. Type is one of auto (the default), file,
// directory or none.
type Completion struct {
	Type       string   `yaml:"type"`
	Choices    []string `yaml:"choices"`
	Command    string   `yaml:"command"`
	Extensions []string `yaml:"extensions"`
	Matchers   []string `yaml:"matchers"`
}

var hintKinds = map[string]completion.HintKind{
	"":          completion.HintAuto,
	"auto":      completion.HintAuto,
	"file":      completion.HintFile,
	"directory": completion.HintDirectory,
	"dir":       completion.HintDirectory,
	"none":      completion.HintNone,
}

// Load reads and converts the document at path
func Load(path string) (*clikit.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.ErrReadDefinition.WithArgs(path).Wrap(err)
	}

	return Parse(data, path)
}

// Parse converts a document. source names the document in errors and is the base directory of
// includes; it may be empty for documents not read from a file.
func Parse(data []byte, source string) (*clikit.Command, error) {
	var doc Command
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.ErrDecodeDefinition.WithArgs(source).Wrap(err)
	}

	return doc.convert(source, doc.Name)
}

func (c *Command) convert(source, path string) (*clikit.Command, error) {
	if c.Name == "" {
		return nil, errs.ErrMissingName.WithArgs(path)
	}

	cmd := clikit.NewCommand(
		clikit.WithName(c.Name),
		clikit.WithCommandDescription(c.Description),
		clikit.SetCommandHidden(c.Hidden))

	if c.Include != "" {
		include := c.Include
		if source != "" && !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(source), include)
		}
		cmd.Loader = func(ctx context.Context) (*clikit.Command, error) {
			return Load(include)
		}
		return cmd, nil
	}

	for i := range c.Fields {
		f, err := c.Fields[i].convert(path)
		if err != nil {
			return nil, err
		}
		cmd.Fields = append(cmd.Fields, f)
	}

	for _, sub := range c.Commands {
		if sub == nil {
			continue
		}
		converted, err := sub.convert(source, path+" "+sub.Name)
		if err != nil {
			return nil, err
		}
		cmd.AddSubcommand(converted)
	}

	return cmd, nil
}

func (f *Field) convert(path string) (*clikit.Field, error) {
	if f.Name == "" {
		return nil, errs.ErrMissingName.WithArgs(path)
	}

	typ, ok := types.ParseValueType(f.Type)
	if !ok {
		return nil, errs.ErrInvalidValueType.WithArgs(f.Type, f.Name)
	}

	field := clikit.NewField(f.Name,
		clikit.WithCLIName(f.CLIName),
		clikit.WithAlias(f.Alias),
		clikit.WithDescription(f.Description),
		clikit.WithType(typ),
		clikit.SetRequired(f.Required),
		clikit.SetPositional(f.Positional),
		clikit.SetHidden(f.Hidden),
		clikit.WithDefaultValue(f.Default))
	if len(f.Enum) > 0 {
		field.Set(clikit.WithEnum(f.Enum...))
	}

	if f.Completion != nil {
		kind, ok := hintKinds[f.Completion.Type]
		if !ok {
			return nil, errs.ErrInvalidCompletion.WithArgs(f.Completion.Type, f.Name)
		}
		field.Completion = &completion.Hint{
			Kind:       kind,
			Choices:    f.Completion.Choices,
			Command:    f.Completion.Command,
			Extensions: f.Completion.Extensions,
			Matchers:   f.Completion.Matchers,
		}
	}

	return field, nil
}
