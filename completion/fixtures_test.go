package completion

import (
	"context"
	"errors"

	"github.com/napalu/clikit/types"
)

type testNode struct {
	name     string
	desc     string
	hidden   bool
	fields   []FieldSpec
	children []Node
}

func (n *testNode) CompletionName() string        { return n.name }
func (n *testNode) CompletionDescription() string { return n.desc }
func (n *testNode) CompletionHidden() bool        { return n.hidden }
func (n *testNode) CompletionFields() []FieldSpec { return n.fields }
func (n *testNode) CompletionChildren() []Node    { return n.children }

type lazyNode struct {
	testNode
	load     func() (Node, error)
	resolved Node
	calls    int
}

func (n *lazyNode) Resolved() bool { return n.resolved != nil }

func (n *lazyNode) Resolve(context.Context) (Node, error) {
	n.calls++
	r, err := n.load()
	if err != nil {
		return nil, err
	}
	n.resolved = r
	return r, nil
}

func opt(name, alias string, t types.ValueType, desc string) FieldSpec {
	return FieldSpec{Name: name, Alias: alias, Type: t, Description: desc}
}

func withHint(f FieldSpec, h Hint) FieldSpec {
	f.Completion = &h
	return f
}

func withEnum(f FieldSpec, values ...string) FieldSpec {
	f.EnumValues = values
	return f
}

func positional(name string, t types.ValueType, required bool) FieldSpec {
	return FieldSpec{Name: name, Type: t, Positional: true, Required: required}
}

// deployctl builds the command tree most tests run against
func deployctl() *testNode {
	build := &testNode{
		name: "build",
		desc: "Build the project",
		fields: []FieldSpec{
			withEnum(opt("format", "f", types.String, "Output format"), "json", "yaml", "xml"),
			opt("output", "o", types.String, "Output file"),
			opt("label", "l", types.Array, "Label to attach"),
			opt("race", "", types.Boolean, "Enable the race detector"),
		},
	}

	rollback := &testNode{
		name: "rollback",
		desc: "Roll back the last deploy",
		fields: []FieldSpec{
			withHint(positional("revision", types.String, false), Hint{Kind: HintNone}),
		},
	}

	deploy := &testNode{
		name: "deploy",
		desc: "Deploy a build",
		fields: []FieldSpec{
			withHint(opt("env", "e", types.String, "Target environment"), Hint{Choices: []string{"dev", "staging", "prod"}}),
			opt("dryRun", "n", types.Boolean, "Only print what would happen"),
			withHint(opt("workdir", "w", types.String, "Working directory"), Hint{Kind: HintDirectory}),
			withHint(positional("target", types.String, true), Hint{Choices: []string{"web", "worker"}}),
		},
		children: []Node{rollback},
	}

	tag := &testNode{
		name: "tag",
		desc: "Tag a release",
		fields: []FieldSpec{
			withHint(positional("channels", types.Array, true), Hint{Choices: []string{"stable", "beta", "nightly", "rc"}}),
		},
	}

	plugins := &lazyNode{
		testNode: testNode{name: "plugins", desc: ""},
		load: func() (Node, error) {
			return &testNode{
				name: "plugins",
				desc: "Manage plugins",
				children: []Node{
					&testNode{name: "install", desc: "Install a plugin"},
					&testNode{name: "remove", desc: "Remove a plugin"},
				},
			}, nil
		},
	}

	broken := &lazyNode{
		testNode: testNode{name: "broken", desc: "Fails to load"},
		load:     func() (Node, error) { return nil, errors.New("no such plugin") },
	}

	return &testNode{
		name: "deployctl",
		desc: "Deploy things",
		fields: []FieldSpec{
			opt("verbose", "v", types.Boolean, "Verbose output"),
			withHint(opt("config", "c", types.String, "Config file"), Hint{Kind: HintFile, Extensions: []string{"json", ".yaml"}}),
			FieldSpec{Name: "token", Type: types.String, Hidden: true},
		},
		children: []Node{
			build,
			deploy,
			tag,
			plugins,
			broken,
			&testNode{name: HiddenCommandName, hidden: true},
		},
	}
}
