// Package cobracomp converts cobra command trees so that programs built with cobra can use the
// clikit completion scripts and the dynamic completion engine.
package cobracomp

import (
	"strings"

	"github.com/napalu/clikit"
	"github.com/napalu/clikit/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ArgsField is the name of the positional field collecting the arguments of runnable commands
const ArgsField = "args"

// FromCobra converts the tree rooted at cmd. Flags defined on the root, persistent or not, become
// global flags. Persistent flags of other commands are only attached to the command defining them.
// The callbacks of runnable commands copy the parsed values into the cobra flag set before
// calling Run or RunE.
func FromCobra(cmd *cobra.Command) *clikit.Command {
	out := clikit.NewCommand(
		clikit.WithName(cmd.Name()),
		clikit.WithCommandDescription(cmd.Short),
		clikit.SetCommandHidden(cmd.Hidden),
		clikit.WithCallback(callback(cmd)))

	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		out.Fields = append(out.Fields, fromFlag(f))
	})

	switch {
	case len(cmd.ValidArgs) > 0:
		choices := make([]string, 0, len(cmd.ValidArgs))
		for _, arg := range cmd.ValidArgs {
			value, _, _ := strings.Cut(arg, "\t")
			choices = append(choices, value)
		}
		out.Fields = append(out.Fields, clikit.NewField(ArgsField,
			clikit.SetPositional(true),
			clikit.WithType(types.Array),
			clikit.WithChoices(choices...)))
	case cmd.Runnable() && !cmd.HasSubCommands():
		out.Fields = append(out.Fields, clikit.NewField(ArgsField,
			clikit.SetPositional(true),
			clikit.WithType(types.Array)))
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == "help" {
			continue
		}
		out.AddSubcommand(FromCobra(sub))
	}

	return out
}

func fromFlag(f *pflag.Flag) *clikit.Field {
	typ := valueType(f)
	field := clikit.NewField(f.Name,
		clikit.WithCLIName(f.Name),
		clikit.WithAlias(f.Shorthand),
		clikit.WithDescription(f.Usage),
		clikit.WithType(typ),
		clikit.SetHidden(f.Hidden))

	if typ != types.Boolean && f.DefValue != "" && f.DefValue != "[]" {
		field.Set(clikit.WithDefaultValue(strings.Trim(f.DefValue, "[]")))
	}
	if _, ok := f.Annotations[cobra.BashCompOneRequiredFlag]; ok {
		field.Set(clikit.SetRequired(true))
	}
	if exts, ok := f.Annotations[cobra.BashCompFilenameExt]; ok {
		field.Set(clikit.WithFileCompletion(exts...))
	}
	if _, ok := f.Annotations[cobra.BashCompSubdirsInDir]; ok {
		field.Set(clikit.WithDirectoryCompletion())
	}

	return field
}

func valueType(f *pflag.Flag) types.ValueType {
	name := f.Value.Type()
	switch {
	case name == "bool" || f.NoOptDefVal != "":
		return types.Boolean
	case strings.HasSuffix(name, "Slice") || strings.HasSuffix(name, "Array"):
		return types.Array
	case strings.HasPrefix(name, "int") || strings.HasPrefix(name, "uint") || strings.HasPrefix(name, "float"):
		return types.Number
	default:
		return types.String
	}
}

func callback(cmd *cobra.Command) clikit.CommandFunc {
	if cmd.Run == nil && cmd.RunE == nil {
		return nil
	}

	return func(p *clikit.Parser, _ *clikit.Command) error {
		var err error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err != nil || !p.HasFlag(f.Name) {
				return
			}
			for _, v := range p.GetList(f.Name) {
				if v == "true" && f.NoOptDefVal != "" {
					v = f.NoOptDefVal
				}
				if err = cmd.Flags().Set(f.Name, v); err != nil {
					return
				}
			}
		})
		if err != nil {
			return err
		}

		positionals := p.GetPositionalArgs()
		args := make([]string, 0, len(positionals))
		for _, pa := range positionals {
			args = append(args, pa.Value)
		}

		if cmd.RunE != nil {
			return cmd.RunE(cmd, args)
		}
		cmd.Run(cmd, args)

		return nil
	}
}
