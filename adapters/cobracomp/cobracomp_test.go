package cobracomp

import (
	"bytes"
	"context"
	"testing"

	"github.com/napalu/clikit"
	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deployRun struct {
	env    string
	labels []string
	dryRun bool
	args   []string
}

func cobraTree(run *deployRun) *cobra.Command {
	root := &cobra.Command{Use: "deployctl", Short: "Deploy services"}
	root.PersistentFlags().StringP("config", "c", "", "Configuration file")
	_ = root.MarkPersistentFlagFilename("config", "json", "yaml")
	root.PersistentFlags().CountP("verbose", "v", "Verbosity")

	deploy := &cobra.Command{
		Use:       "deploy <target>",
		Short:     "Deploy a service",
		ValidArgs: []string{"web\tfrontend", "worker\tqueue consumer"},
		RunE: func(cmd *cobra.Command, args []string) error {
			run.env, _ = cmd.Flags().GetString("env")
			run.labels, _ = cmd.Flags().GetStringSlice("label")
			run.dryRun, _ = cmd.Flags().GetBool("dry-run")
			run.args = args
			return nil
		},
	}
	deploy.Flags().StringP("env", "e", "dev", "Target environment")
	_ = deploy.MarkFlagRequired("env")
	deploy.Flags().StringSliceP("label", "l", nil, "Labels")
	deploy.Flags().BoolP("dry-run", "n", false, "Print only")
	deploy.Flags().Int("replicas", 1, "Replica count")
	deploy.Flags().String("workdir", "", "Working directory")
	_ = deploy.MarkFlagDirname("workdir")
	deploy.Flags().String("secret", "", "Secret")
	_ = deploy.Flags().MarkHidden("secret")

	logs := &cobra.Command{Use: "logs", Short: "Show logs", Run: func(*cobra.Command, []string) {}}
	debug := &cobra.Command{Use: "debug", Hidden: true, Run: func(*cobra.Command, []string) {}}

	root.AddCommand(deploy, logs, debug)

	return root
}

func TestFromCobra(t *testing.T) {
	root := FromCobra(cobraTree(&deployRun{}))

	assert.Equal(t, "deployctl", root.Name)
	assert.Equal(t, "Deploy services", root.Description)
	assert.Nil(t, root.Callback)
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "config", root.Fields[0].Name)
	assert.Equal(t, "c", root.Fields[0].Alias)
	assert.Equal(t, []string{"json", "yaml"}, root.Fields[0].Completion.Extensions)
	assert.Equal(t, types.Boolean, root.Fields[1].Type, "count flags take no value")

	deploy := root.FindSubcommand("deploy")
	require.NotNil(t, deploy)
	assert.NotNil(t, deploy.Callback)

	fields := map[string]*clikit.Field{}
	for _, f := range deploy.Fields {
		fields[f.Name] = f
	}
	assert.True(t, fields["env"].Required)
	assert.Equal(t, "dev", fields["env"].DefaultValue)
	assert.Equal(t, types.Array, fields["label"].Type)
	assert.Equal(t, types.Boolean, fields["dry-run"].Type)
	assert.Equal(t, types.Number, fields["replicas"].Type)
	assert.Equal(t, completion.HintDirectory, fields["workdir"].Completion.Kind)
	assert.True(t, fields["secret"].Hidden)
	assert.True(t, fields[ArgsField].Positional)
	assert.Equal(t, []string{"web", "worker"}, fields[ArgsField].Completion.Choices)

	logs := root.FindSubcommand("logs")
	require.NotNil(t, logs)
	require.Len(t, logs.Fields, 1)
	assert.Nil(t, logs.Fields[0].Completion, "runnable commands accept arguments completed as files")

	assert.True(t, root.FindSubcommand("debug").Hidden)
}

func TestFromCobra_Completion(t *testing.T) {
	root := FromCobra(cobraTree(&deployRun{}))

	script, err := completion.GenerateScript("bash", "deployctl", root)
	require.NoError(t, err)
	assert.Contains(t, script, "complete -F _deployctl")

	cands, d := completion.NewHandler(root).Complete(context.Background(), []string{"deploy", ""})
	assert.Equal(t, []completion.Candidate{
		{Value: "web", Kind: completion.KindValue},
		{Value: "worker", Kind: completion.KindValue},
	}, cands)
	assert.True(t, d.KeepOrder)

	cands, _ = completion.NewHandler(root).Complete(context.Background(), []string{""})
	var names []string
	for _, c := range cands {
		names = append(names, c.Value)
	}
	assert.Equal(t, []string{"deploy", "logs"}, names)
}

func TestFromCobra_Execute(t *testing.T) {
	run := &deployRun{}
	var out bytes.Buffer
	p, err := clikit.NewParser(FromCobra(cobraTree(run)), clikit.WithStdout(&out))
	require.NoError(t, err)

	err = p.Execute(context.Background(), []string{"deploy", "-e", "prod", "-l", "a", "--label", "b", "-n", "web"})
	require.NoError(t, err)
	assert.Equal(t, "prod", run.env)
	assert.Equal(t, []string{"a", "b"}, run.labels)
	assert.True(t, run.dryRun)
	assert.Equal(t, []string{"web"}, run.args)
}
