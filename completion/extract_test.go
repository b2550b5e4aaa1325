package completion

import (
	"errors"
	"testing"

	"github.com/napalu/clikit/errs"
	"github.com/napalu/clikit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	model, err := Extract(deployctl())
	require.NoError(t, err)

	root := model.Root
	assert.Equal(t, "deployctl", root.Name)

	var names []string
	for _, s := range root.Subcommands {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"build", "deploy", "tag", "plugins", "broken"}, names, "hidden command must be skipped")

	require.Len(t, model.Globals, 2, "hidden option must be skipped")
	assert.Equal(t, "verbose", model.Globals[0].CLIName)
	assert.False(t, model.Globals[0].TakesValue)
	assert.Equal(t, File{Extensions: []string{"json", "yaml"}}, model.Globals[1].ValueCompletion)

	build := root.Find("build")
	require.NotNil(t, build)
	assert.Equal(t, Choices{Values: []string{"json", "yaml", "xml"}}, build.Options[0].ValueCompletion)
	assert.Nil(t, build.Options[1].ValueCompletion)
	assert.True(t, build.Options[2].Repeatable())
	assert.False(t, build.Options[0].Repeatable())

	deploy := model.Lookup([]string{"deploy"})
	require.NotNil(t, deploy)
	assert.Equal(t, "dry-run", deploy.Options[1].CLIName)
	require.Len(t, deploy.Positionals, 1)
	assert.True(t, deploy.Positionals[0].Required)
	assert.NotNil(t, model.Lookup([]string{"deploy", "rollback"}))
	assert.Nil(t, model.Lookup([]string{"deploy", "nope"}))

	tag := root.Find("tag")
	p, ok := tag.PositionalAt(3)
	assert.True(t, ok)
	assert.True(t, p.Variadic)

	plugins := root.Find("plugins")
	assert.True(t, plugins.Placeholder)
	assert.Empty(t, plugins.Options)
}

func TestModel_VisibleOptions(t *testing.T) {
	model, err := Extract(deployctl())
	require.NoError(t, err)

	var names []string
	for _, o := range model.VisibleOptions(model.Root.Find("deploy")) {
		names = append(names, o.CLIName)
	}
	assert.Equal(t, []string{"env", "dry-run", "workdir", "verbose", "config"}, names)
	assert.Len(t, model.VisibleOptions(model.Root), 2)
}

func TestModel_OwnOptionShadowsGlobal(t *testing.T) {
	root := &testNode{
		name:   "tool",
		fields: []FieldSpec{opt("verbose", "v", types.Boolean, "global")},
		children: []Node{&testNode{
			name:   "run",
			fields: []FieldSpec{opt("verbose", "V", types.Number, "level")},
		}},
	}

	model, err := Extract(root)
	require.NoError(t, err)

	opts := model.VisibleOptions(model.Root.Find("run"))
	require.Len(t, opts, 1)
	assert.Equal(t, "level", opts[0].Description)
	assert.Equal(t, "V", opts[0].Alias)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields []FieldSpec
		want   error
	}{
		{
			name: "positional after variadic",
			fields: []FieldSpec{
				positional("files", types.Array, true),
				positional("extra", types.String, false),
			},
			want: errs.ErrPositionalAfterVariadic,
		},
		{
			name: "required after optional",
			fields: []FieldSpec{
				positional("source", types.String, false),
				positional("dest", types.String, true),
			},
			want: errs.ErrRequiredAfterOptional,
		},
		{
			name:   "duplicate option",
			fields: []FieldSpec{opt("env", "", types.String, ""), {Name: "environment", CLIName: "env", Type: types.String}},
			want:   errs.ErrDuplicateOption,
		},
		{
			name:   "duplicate alias",
			fields: []FieldSpec{opt("env", "e", types.String, ""), opt("edit", "e", types.Boolean, "")},
			want:   errs.ErrDuplicateAlias,
		},
		{
			name:   "multi-character alias",
			fields: []FieldSpec{opt("env", "en", types.String, "")},
			want:   errs.ErrInvalidAlias,
		},
		{
			name:   "invalid matcher",
			fields: []FieldSpec{withHint(opt("file", "", types.String, ""), Hint{Kind: HintFile, Matchers: []string{"[a-"}})},
			want:   errs.ErrInvalidMatcher,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &testNode{
				name:     "tool",
				children: []Node{&testNode{name: "sub", fields: tt.fields}},
			}

			_, err := Extract(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, errs.ErrInCommand))
			assert.Contains(t, err.Error(), `"tool sub"`)
		})
	}
}

func TestExtract_ValidPositionals(t *testing.T) {
	root := &testNode{
		name: "cp",
		fields: []FieldSpec{
			positional("source", types.String, true),
			positional("dest", types.String, false),
			positional("rest", types.Array, false),
		},
	}

	model, err := Extract(root)
	require.NoError(t, err)
	require.Len(t, model.Root.Positionals, 3)
	for i, p := range model.Root.Positionals {
		assert.Equal(t, i, p.Position)
	}
}

func TestExtract_PositionalCLIName(t *testing.T) {
	dest := positional("dest", types.String, false)
	dest.CLIName = "target"
	root := &testNode{
		name:   "cp",
		fields: []FieldSpec{positional("sourceFile", types.String, true), dest},
	}

	model, err := Extract(root)
	require.NoError(t, err)
	require.Len(t, model.Root.Positionals, 2)
	assert.Equal(t, "source-file", model.Root.Positionals[0].CLIName)
	assert.Equal(t, "sourceFile", model.Root.Positionals[0].Name)
	assert.Equal(t, "target", model.Root.Positionals[1].CLIName)
}

func TestExtract_NilRoot(t *testing.T) {
	_, err := Extract(nil)
	assert.ErrorIs(t, err, errs.ErrNilCommand)
}

func TestResolveValueCompletion(t *testing.T) {
	tests := []struct {
		name  string
		field FieldSpec
		want  ValueCompletion
	}{
		{"nothing", FieldSpec{}, nil},
		{"enum", FieldSpec{EnumValues: []string{"a", "b"}}, Choices{Values: []string{"a", "b"}}},
		{
			"explicit choices beat enum",
			FieldSpec{EnumValues: []string{"a"}, Completion: &Hint{Choices: []string{"x"}}},
			Choices{Values: []string{"x"}},
		},
		{
			"command beats declared type",
			FieldSpec{Completion: &Hint{Kind: HintFile, Command: "git tag"}},
			ShellCommand{Command: "git tag"},
		},
		{
			"declared type beats enum",
			FieldSpec{EnumValues: []string{"a"}, Completion: &Hint{Kind: HintNone}},
			None{},
		},
		{"directory", FieldSpec{Completion: &Hint{Kind: HintDirectory}}, Directory{}},
		{"plain file", FieldSpec{Completion: &Hint{Kind: HintFile}}, File{}},
		{
			"extensions imply file",
			FieldSpec{Completion: &Hint{Extensions: []string{".json", "json", "yml"}}},
			File{Extensions: []string{"json", "yml"}},
		},
		{"empty hint falls through to enum", FieldSpec{EnumValues: []string{"a"}, Completion: &Hint{}}, Choices{Values: []string{"a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveValueCompletion(tt.field))
		})
	}
}

func TestDirective(t *testing.T) {
	tests := []struct {
		name string
		d    Directive
		bits int
		str  string
	}{
		{"default", Directive{}, 0, "Default"},
		{"list", Directive{FilterPrefix: true, NoFileCompletion: true}, 6, "NoFileCompletion|FilterPrefix"},
		{"files", Directive{FileCompletion: true}, 16, "FileCompletion"},
		{"dir with no space", Directive{NoSpace: true, NoFileCompletion: true}, 3, "NoSpace|NoFileCompletion"},
		{"error", Directive{Error: true}, 64, "Error"},
		{"ordered dirs", Directive{KeepOrder: true, DirectoryCompletion: true}, 40, "KeepOrder|DirectoryCompletion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bits, tt.d.Bits())
			assert.Equal(t, tt.d, ParseDirective(tt.bits))
			assert.Equal(t, tt.str, tt.d.String())
		})
	}

	assert.Equal(t, ":14", Directive{FilterPrefix: true, NoFileCompletion: true, KeepOrder: true}.Line())
	assert.Equal(t, Directive{NoSpace: true}, ParseDirective(1|128), "unknown bits are ignored")
}
