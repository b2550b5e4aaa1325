package completion

import (
	"context"

	"github.com/iancoleman/strcase"
	"github.com/napalu/clikit/types"
)

// HintKind is the explicitly declared completion type of a field
type HintKind int

const (
	// HintAuto leaves the decision to choices, command, enum values or file filters
	HintAuto HintKind = iota
	// HintFile completes file names
	HintFile
	// HintDirectory completes directory names
	HintDirectory
	// HintNone suppresses completion, including the shell's file fallback
	HintNone
)

// Hint carries the completion metadata an author attached to a field
type Hint struct {
	Kind       HintKind
	Choices    []string // explicit values, highest priority
	Command    string   // shell command whose output lines are the values
	Extensions []string // file extensions (without the leading dot) for HintFile
	Matchers   []string // glob patterns matched against file base names for HintFile
}

// FieldSpec is the normalized shape of a field as supplied by the schema layer. The
// completion subsystem never looks further than this.
type FieldSpec struct {
	Name        string
	CLIName     string
	Alias       string
	Description string
	Positional  bool
	Required    bool
	Hidden      bool
	Type        types.ValueType
	EnumValues  []string
	Completion  *Hint
}

// Node is a command of the command tree, as seen by the completion subsystem
type Node interface {
	CompletionName() string
	CompletionDescription() string
	CompletionHidden() bool
	CompletionFields() []FieldSpec
	CompletionChildren() []Node
}

// DeferredNode is a Node whose definition is loaded on demand. Unresolved deferred nodes are
// rendered as placeholders in static scripts and resolved by the dynamic engine.
type DeferredNode interface {
	Node
	Resolved() bool
	Resolve(ctx context.Context) (Node, error)
}

// DefaultCLIName returns the dash-cased flag name for a field name
func DefaultCLIName(name string) string {
	return strcase.ToKebab(name)
}

func cliNameOf(f FieldSpec) string {
	if f.CLIName != "" {
		return f.CLIName
	}

	return DefaultCLIName(f.Name)
}
