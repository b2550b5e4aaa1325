package clikit

import (
	"context"
	"errors"

	"github.com/napalu/clikit/types"
)

var errBroken = errors.New("plugin registry unreachable")

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) callback(p *Parser, cmd *Command) error {
	r.calls = append(r.calls, cmd.Name)
	return r.err
}

// deployctl returns a small tree exercising globals, enums, arrays, positionals and deferred commands
func deployctl(rec *recorder) *Command {
	plugins := NewCommand(
		WithName("plugins"),
		WithCommandDescription("Manage plugins"),
		WithLoader(func(ctx context.Context) (*Command, error) {
			return NewCommand(
				WithName("plugins"),
				WithSubcommands(
					NewCommand(WithName("install"), WithCommandDescription("Install a plugin"), WithCallback(rec.callback),
						WithFields(NewField("name", SetPositional(true), SetRequired(true)))),
					NewCommand(WithName("remove"), WithCommandDescription("Remove a plugin"), WithCallback(rec.callback)))), nil
		}))

	broken := NewCommand(
		WithName("broken"),
		WithLoader(func(ctx context.Context) (*Command, error) {
			return nil, errBroken
		}))

	return NewCommand(
		WithName("deployctl"),
		WithFields(
			NewField("verbose", WithAlias("v"), WithType(types.Boolean), WithDescription("Verbose output")),
			NewField("config", WithAlias("c"), WithFileCompletion("json", "yaml"), WithDescription("Configuration file")),
			NewField("token", SetHidden(true))),
		WithSubcommands(
			NewCommand(
				WithName("build"),
				WithCommandDescription("Build artifacts"),
				WithCallback(rec.callback),
				WithFields(
					NewField("format", WithAlias("f"), WithEnum("json", "yaml", "xml"), WithDefaultValue("json"), WithDescription("Output format")),
					NewField("label", WithAlias("l"), WithType(types.Array)),
					NewField("jobs", WithAlias("j"), WithType(types.Number)),
					NewField("output", WithAlias("o"), WithDirectoryCompletion()))),
			NewCommand(
				WithName("deploy"),
				WithCommandDescription("Deploy a service"),
				WithCallback(rec.callback),
				WithFields(
					NewField("env", WithAlias("e"), WithChoices("dev", "staging", "prod"), SetRequired(true)),
					NewField("dryRun", WithAlias("n"), WithType(types.Boolean)),
					NewField("target", SetPositional(true), SetRequired(true), WithEnum("web", "worker"))),
				WithSubcommands(
					NewCommand(WithName("rollback"), WithCommandDescription("Roll back the last deployment")))),
			NewCommand(
				WithName("tag"),
				WithCallback(rec.callback),
				WithFields(NewField("channels", SetPositional(true), SetRequired(true), WithType(types.Array),
					WithChoices("stable", "beta", "nightly", "rc")))),
			plugins,
			broken))
}
