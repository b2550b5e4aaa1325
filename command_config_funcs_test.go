package clikit

import (
	"context"
	"strings"
	"testing"

	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_WithOverwriteSubcommands(t *testing.T) {
	cmd := NewCommand(
		WithName("parent"),
		WithSubcommands(
			NewCommand(WithName("old")),
		),
	)

	WithOverwriteSubcommands(
		NewCommand(WithName("new")),
	)(cmd)

	assert.Equal(t, 1, len(cmd.Subcommands), "should have one subcommand")
	assert.Equal(t, "new", cmd.Subcommands[0].Name, "should have overwritten subcommand")
}

func TestCommand_Set(t *testing.T) {
	cmd := NewCommand(WithName("app"))
	cmd.Set(WithCommandDescription("An app"), SetCommandHidden(true))

	assert.Equal(t, "An app", cmd.Description)
	assert.True(t, cmd.Hidden)
	assert.True(t, cmd.CompletionHidden())
}

func TestCommand_CompletionFields(t *testing.T) {
	cmd := NewCommand(WithName("app"), WithFields(
		NewField("dryRun", WithAlias("n"), WithType(types.Boolean)),
		NewField("manifest", WithCLIName("file"), WithFileMatchers("*.manifest")),
		NewField("outDir", WithDirectoryCompletion()),
		NewField("secret", WithNoCompletion(), SetHidden(true)),
		NewField("branch", WithCommandCompletion("git branch --format='%(refname:short)'")),
	))

	specs := cmd.CompletionFields()
	require.Len(t, specs, 5)
	assert.Equal(t, "dry-run", specs[0].CLIName)
	assert.Equal(t, types.Boolean, specs[0].Type)
	assert.Nil(t, specs[0].Completion)
	assert.Equal(t, "file", specs[1].CLIName)
	assert.Equal(t, &completion.Hint{Kind: completion.HintFile, Matchers: []string{"*.manifest"}}, specs[1].Completion)
	assert.Equal(t, completion.HintDirectory, specs[2].Completion.Kind)
	assert.True(t, specs[3].Hidden)
	assert.Equal(t, completion.HintNone, specs[3].Completion.Kind)
	assert.Equal(t, "git branch --format='%(refname:short)'", specs[4].Completion.Command)
}

func TestCommand_Resolve(t *testing.T) {
	calls := 0
	cmd := NewCommand(
		WithName("plugins"),
		WithLoader(func(ctx context.Context) (*Command, error) {
			calls++
			return NewCommand(
				WithCommandDescription("Loaded plugins"),
				WithSubcommands(NewCommand(WithName("install")))), nil
		}))

	assert.False(t, cmd.Resolved())
	assert.Empty(t, cmd.CompletionChildren(), "children are unknown before loading")

	node, err := cmd.Resolve(context.Background())
	require.NoError(t, err)
	_, err = cmd.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "loader runs once")
	assert.True(t, cmd.Resolved())
	assert.Equal(t, "plugins", node.CompletionName())
	assert.Equal(t, "Loaded plugins", node.CompletionDescription())
	require.Len(t, node.CompletionChildren(), 1)
	assert.Equal(t, "install", node.CompletionChildren()[0].CompletionName())
}

func TestCommand_Visit(t *testing.T) {
	root := deployctl(&recorder{})

	var paths []string
	root.Visit(func(path []string, cmd *Command) bool {
		paths = append(paths, strings.Join(path, " "))
		return cmd.Name != "deploy"
	})

	assert.Equal(t, []string{
		"deployctl",
		"deployctl build",
		"deployctl deploy",
		"deployctl tag",
		"deployctl plugins",
		"deployctl broken",
	}, paths)
}
