package clikit

import (
	"fmt"
	"io"

	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/errs"
	"github.com/napalu/clikit/i18n"
	"github.com/napalu/clikit/types"
	"golang.org/x/text/language"
)

// CompletionCommandName is the name of the sub-command added by WithCompletionCommand
const CompletionCommandName = "completion"

// WithStdout sets the writer used for help and command output
func WithStdout(w io.Writer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.stdout = w
	}
}

// WithHelpWidth sets the column count help output is wrapped to. By default the terminal width
// of stdout is used.
func WithHelpWidth(width int) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.helpWidth = width
	}
}

// WithRenderer replaces the help renderer
func WithRenderer(renderer Renderer) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.renderer = renderer
	}
}

// WithLanguage selects the language of help output and error messages. The language must be
// one of the embedded translations or added with i18n.Default().AddLanguage.
func WithLanguage(tag language.Tag) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		matched, ok := matchLanguage(tag)
		if !ok {
			*err = errs.ErrLanguageUnavailable.WithArgs(tag.String())
			return
		}
		p.setLanguage(matched)
	}
}

// WithCompletionOptions configures the dynamic completion engine behind the hidden completion command
func WithCompletionOptions(opts ...completion.Option) ConfigureParserFunc {
	return func(p *Parser, err *error) {
		p.completionOpts = append(p.completionOpts, opts...)
	}
}

// WithCompletionCommand adds two sub-commands to the root command: "completion <shell>", which prints
// (or installs) a static completion script or, with --dynamic, a stub delegating to the program,
// and the hidden command the dynamic stubs call.
func WithCompletionCommand() ConfigureParserFunc {
	return func(p *Parser, err *error) {
		if p.root.FindSubcommand(CompletionCommandName) == nil {
			p.root.AddSubcommand(newCompletionCommand(p.lang))
		}
		if p.root.FindSubcommand(completion.HiddenCommandName) == nil {
			p.root.AddSubcommand(&Command{
				Name:     completion.HiddenCommandName,
				Hidden:   true,
				Callback: runHiddenCompletion,
				raw:      true,
			})
		}
	}
}

func newCompletionCommand(lang language.Tag) *Command {
	t := func(key string) string {
		return i18n.Default().TL(lang, key)
	}

	return NewCommand(
		WithName(CompletionCommandName),
		WithCommandDescription(t(types.MsgCompletionCmdKey)),
		WithCallback(runCompletionCommand),
		WithFields(
			NewField("shell",
				WithDescription(t(types.MsgCompletionShellKey)),
				SetPositional(true),
				SetRequired(true),
				WithEnum(completion.SupportedShells()...),
				WithChoices(completion.SupportedShells()...)),
			NewField("dynamic",
				WithDescription(t(types.MsgCompletionDynKey)),
				WithType(types.Boolean)),
			NewField("install",
				WithDescription(t(types.MsgCompletionInstKey)),
				WithType(types.Boolean)),
		))
}

func runCompletionCommand(p *Parser, _ *Command) error {
	shell, _ := p.Get("shell")
	program := p.root.Name

	if p.GetBool("install") {
		m, err := completion.NewLocalizedManager(shell, program, p.lang)
		if err != nil {
			return err
		}
		if p.GetBool("dynamic") {
			err = m.AcceptDynamic()
		} else {
			var model *completion.Model
			if model, err = completion.Extract(p.root); err == nil {
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
		_, err = fmt.Fprintln(p.stdout, i18n.Default().TL(p.lang, types.MsgCompletionSavedKey, path))
		return err
	}

	var (
		script string
		err    error
	)
	if p.GetBool("dynamic") {
		script, err = completion.DynamicStub(shell, program)
	} else {
		script, err = completion.GenerateLocalizedScript(shell, program, p.root, p.lang)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.stdout, script)

	return err
}

func runHiddenCompletion(p *Parser, _ *Command) error {
	args := make([]string, 0, len(p.positionals))
	for _, pa := range p.positionals {
		args = append(args, pa.Value)
	}

	opts := append([]completion.Option{completion.WithLanguage(p.lang)}, p.completionOpts...)

	return completion.NewHandler(p.root, opts...).Run(p.ctx, p.stdout, args)
}
