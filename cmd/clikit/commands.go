package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/napalu/clikit"
	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/definition"
	"github.com/napalu/clikit/errs"
	"github.com/napalu/clikit/types"
)

func newParser(stdout io.Writer) (*clikit.Parser, error) {
	shell := func() *clikit.Field {
		return clikit.NewField("shell",
			clikit.WithDescription("Target shell"),
			clikit.SetPositional(true),
			clikit.SetRequired(true),
			clikit.WithEnum(completion.SupportedShells()...))
	}

	root := clikit.NewCommand(
		clikit.WithName("clikit"),
		clikit.WithCommandDescription("Shell completion for programs described by a definition file"),
		clikit.WithFields(
			clikit.NewField("definition",
				clikit.WithAlias("d"),
				clikit.WithDescription("Definition file (YAML or JSON)"),
				clikit.WithFileCompletion("yaml", "yml", "json")),
			clikit.NewField("program",
				clikit.WithAlias("p"),
				clikit.WithDescription("Program name, defaults to the name of the definition root"))),
		clikit.WithSubcommands(
			clikit.NewCommand(
				clikit.WithName("generate"),
				clikit.WithCommandDescription("Print a static completion script"),
				clikit.WithFields(shell()),
				clikit.WithCallback(generate)),
			clikit.NewCommand(
				clikit.WithName("stub"),
				clikit.WithCommandDescription("Print a dynamic completion stub"),
				clikit.WithFields(shell()),
				clikit.WithCallback(stub)),
			clikit.NewCommand(
				clikit.WithName("install"),
				clikit.WithCommandDescription("Install a completion script in the user's completion directory"),
				clikit.WithFields(shell(),
					clikit.NewField("dynamic",
						clikit.WithDescription("Install the dynamic stub instead of a static script"),
						clikit.WithType(types.Boolean))),
				clikit.WithCallback(install)),
			clikit.NewCommand(
				clikit.WithName("query"),
				clikit.WithCommandDescription("Answer a completion request the way the hidden completion command does"),
				clikit.WithFields(
					clikit.NewField("dir",
						clikit.WithDescription("Directory file names are completed in"),
						clikit.WithDefaultValue("."),
						clikit.WithDirectoryCompletion()),
					clikit.NewField("timeout",
						clikit.WithDescription("Shell command timeout in seconds"),
						clikit.WithType(types.Number),
						clikit.WithDefaultValue("5"),
						clikit.WithNoCompletion()),
					clikit.NewField("words",
						clikit.WithDescription("Words after the program name, the word under the cursor last"),
						clikit.SetPositional(true),
						clikit.WithType(types.Array),
						clikit.WithNoCompletion())),
				clikit.WithCallback(query)),
			clikit.NewCommand(
				clikit.WithName("validate"),
				clikit.WithCommandDescription("Check a definition file"),
				clikit.WithCallback(validate)),
		))

	return clikit.NewParser(root, clikit.WithStdout(stdout), clikit.WithCompletionCommand())
}

// load returns the definition tree and the program name
func load(p *clikit.Parser) (*clikit.Command, string, error) {
	path, ok := p.Get("definition")
	if !ok {
		return nil, "", errs.ErrRequiredFlag.WithArgs("--definition")
	}

	root, err := definition.Load(path)
	if err != nil {
		return nil, "", err
	}

	return root, p.GetOrDefault("program", root.Name), nil
}

func generate(p *clikit.Parser, _ *clikit.Command) error {
	root, program, err := load(p)
	if err != nil {
		return err
	}
	shell, _ := p.Get("shell")

	script, err := completion.GenerateScript(shell, program, root)
	if err != nil {
		return err
	}

	return write(p, script)
}

func stub(p *clikit.Parser, _ *clikit.Command) error {
	program, ok := p.Get("program")
	if !ok {
		_, name, err := load(p)
		if err != nil {
			return err
		}
		program = name
	}
	shell, _ := p.Get("shell")

	script, err := completion.DynamicStub(shell, program)
	if err != nil {
		return err
	}

	return write(p, script)
}

func install(p *clikit.Parser, _ *clikit.Command) error {
	root, program, err := load(p)
	if err != nil {
		return err
	}
	shell, _ := p.Get("shell")

	m, err := completion.NewManager(shell, program)
	if err != nil {
		return err
	}
	if p.GetBool("dynamic") {
		err = m.AcceptDynamic()
	} else {
		var model *completion.Model
		if model, err = completion.Extract(root); err == nil {
			m.Accept(model)
		}
	}
	if err != nil {
		return err
	}

	path, err := m.Save()
	if err != nil {
		return err
	}

	return write(p, fmt.Sprintf("%s (%s)\n", path, m.Paths.Comment))
}

func query(p *clikit.Parser, _ *clikit.Command) error {
	root, _, err := load(p)
	if err != nil {
		return err
	}

	timeout, err := strconv.ParseFloat(p.GetOrDefault("timeout", "5"), 64)
	if err != nil {
		return err
	}

	words := p.GetList("words")
	if len(words) == 0 {
		words = []string{""}
	}

	h := completion.NewHandler(root,
		completion.WithDir(p.GetOrDefault("dir", ".")),
		completion.WithTimeout(time.Duration(timeout*float64(time.Second))))

	return h.Run(p.Context(), p.Stdout(), words)
}

func validate(p *clikit.Parser, _ *clikit.Command) error {
	root, program, err := load(p)
	if err != nil {
		return err
	}

	model, err := completion.Extract(root)
	if err != nil {
		return err
	}

	var commands, options, deferred int
	var walk func(c *completion.CompletableSubcommand)
	walk = func(c *completion.CompletableSubcommand) {
		commands++
		options += len(c.Options)
		for _, sub := range c.Subcommands {
			if sub.Placeholder {
				deferred++
				continue
			}
			walk(sub)
		}
	}
	walk(model.Root)

	summary := []string{
		fmt.Sprintf("%s: ok", program),
		fmt.Sprintf("commands: %d", commands),
		fmt.Sprintf("options: %d", options),
	}
	if deferred > 0 {
		summary = append(summary, fmt.Sprintf("deferred: %d", deferred))
	}

	return write(p, strings.Join(summary, "\n")+"\n")
}

func write(p *clikit.Parser, s string) error {
	_, err := io.WriteString(p.Stdout(), s)
	return err
}
