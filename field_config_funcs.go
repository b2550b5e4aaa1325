package clikit

import (
	"github.com/napalu/clikit/completion"
	"github.com/napalu/clikit/types"
)

// NewField convenience initialization method to configure flags and positional arguments. Fields
// default to types.String.
func NewField(name string, configs ...ConfigureFieldFunc) *Field {
	field := &Field{Name: name, Type: types.String}
	for _, config := range configs {
		config(field)
	}

	return field
}

// Set configures the Field with the provided ConfigureFieldFunc(s)
func (f *Field) Set(configs ...ConfigureFieldFunc) {
	for _, config := range configs {
		config(f)
	}
}

// WithCLIName overrides the flag name derived from the field name (dash-case)
func WithCLIName(name string) ConfigureFieldFunc {
	return func(field *Field) {
		field.CLIName = name
	}
}

// WithAlias sets the single character short form of a flag. "-" suppresses the short form.
func WithAlias(alias string) ConfigureFieldFunc {
	return func(field *Field) {
		field.Alias = alias
	}
}

// WithDescription the description will be used in usage output and completion descriptions
func WithDescription(description string) ConfigureFieldFunc {
	return func(field *Field) {
		field.Description = description
	}
}

// WithType sets the value type of the field. types.Boolean fields take no value, types.Array
// fields may be repeated.
func WithType(typeof types.ValueType) ConfigureFieldFunc {
	return func(field *Field) {
		field.Type = typeof
	}
}

// SetRequired when true the command line is rejected when the field is missing
func SetRequired(required bool) ConfigureFieldFunc {
	return func(field *Field) {
		field.Required = required
	}
}

// SetPositional turns the field into a positional argument. Positionals are ordered by declaration.
func SetPositional(positional bool) ConfigureFieldFunc {
	return func(field *Field) {
		field.Positional = positional
	}
}

// SetHidden hides the field from help and completion
func SetHidden(hidden bool) ConfigureFieldFunc {
	return func(field *Field) {
		field.Hidden = hidden
	}
}

// WithDefaultValue is used when the field is not supplied. A field with a default is never reported missing.
func WithDefaultValue(defaultValue string) ConfigureFieldFunc {
	return func(field *Field) {
		field.DefaultValue = defaultValue
	}
}

// WithEnum restricts the accepted values. Enum values are also offered as completions unless
// a more specific completion is configured.
func WithEnum(values ...string) ConfigureFieldFunc {
	return func(field *Field) {
		field.EnumValues = values
	}
}

// WithChoices completes the field value from a fixed list, in the order given
func WithChoices(choices ...string) ConfigureFieldFunc {
	return func(field *Field) {
		hint(field).Choices = choices
	}
}

// WithFileCompletion completes file names, restricted to extensions when given
func WithFileCompletion(extensions ...string) ConfigureFieldFunc {
	return func(field *Field) {
		h := hint(field)
		h.Kind = completion.HintFile
		h.Extensions = extensions
	}
}

// WithFileMatchers completes file names matching any of the glob patterns
func WithFileMatchers(patterns ...string) ConfigureFieldFunc {
	return func(field *Field) {
		h := hint(field)
		h.Kind = completion.HintFile
		h.Matchers = patterns
	}
}

// WithDirectoryCompletion completes directory names only
func WithDirectoryCompletion() ConfigureFieldFunc {
	return func(field *Field) {
		hint(field).Kind = completion.HintDirectory
	}
}

// WithCommandCompletion completes the field value from the output lines of a shell command
func WithCommandCompletion(command string) ConfigureFieldFunc {
	return func(field *Field) {
		hint(field).Command = command
	}
}

// WithNoCompletion suppresses completion of the field value, file names included
func WithNoCompletion() ConfigureFieldFunc {
	return func(field *Field) {
		hint(field).Kind = completion.HintNone
	}
}

func hint(field *Field) *completion.Hint {
	if field.Completion == nil {
		field.Completion = &completion.Hint{}
	}

	return field.Completion
}
