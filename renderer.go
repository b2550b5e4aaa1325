package clikit

import (
	"fmt"
	"io"
	"strings"

	"github.com/napalu/clikit/i18n"
	"github.com/napalu/clikit/internal/util"
	"github.com/napalu/clikit/types"
)

type DefaultRenderer struct {
	parser *Parser
}

func NewRenderer(parser *Parser) *DefaultRenderer {
	return &DefaultRenderer{parser: parser}
}

func (r *DefaultRenderer) t(key string, args ...interface{}) string {
	return i18n.Default().TL(r.parser.lang, key, args...)
}

// FieldName returns the spellings of a field as shown in help messages: "-a, --name <value>" for
// flags and "<name>" for positionals.
func (r *DefaultRenderer) FieldName(f *Field) string {
	if f.Positional {
		name := "<" + f.cliName() + ">"
		if f.Type.Repeatable() {
			name += "..."
		}
		return name
	}

	name := "--" + f.cliName()
	if f.Alias != "" && f.Alias != "-" {
		name = "-" + f.Alias + ", " + name
	}
	if f.Type.TakesValue() {
		name += " <" + f.Type.String() + ">"
	}

	return name
}

// FieldDescription returns the description of the given field followed by its accepted values,
// default value and whether it is required.
func (r *DefaultRenderer) FieldDescription(f *Field) string {
	parts := make([]string, 0, 4)
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	if len(f.EnumValues) > 0 {
		parts = append(parts, "["+strings.Join(f.EnumValues, "|")+"]")
	}
	if f.DefaultValue != "" {
		parts = append(parts, "("+r.t(types.MsgDefaultsToKey, f.DefaultValue)+")")
	}
	if f.Required {
		parts = append(parts, "("+r.t(types.MsgRequiredKey)+")")
	}

	return strings.Join(parts, " ")
}

// CommandUsage generates the usage line of a command: its path, then options, sub-commands
// and positional arguments placeholders.
func (r *DefaultRenderer) CommandUsage(path []string, c *Command) string {
	def := c.effective()
	usage := strings.Join(path, " ") + " [options]"
	if len(visibleCommands(def.Subcommands)) > 0 {
		usage += " <command>"
	}
	for _, f := range visibleFields(def.Fields, true) {
		if f.Required {
			usage += " " + r.FieldName(f)
		} else {
			usage += " [" + r.FieldName(f) + "]"
		}
	}

	return usage
}

// PrintHelp writes the help page of c. Hidden commands and fields are left out.
func (r *DefaultRenderer) PrintHelp(w io.Writer, path []string, c *Command) {
	def := c.effective()
	fmt.Fprintf(w, "%s: %s\n", r.t(types.MsgUsageKey), r.CommandUsage(path, c))
	if desc := c.CompletionDescription(); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}

	var rows []types.KeyValue[string, string]
	for _, sub := range visibleCommands(def.Subcommands) {
		rows = append(rows, types.KeyValue[string, string]{Key: sub.Name, Value: sub.CompletionDescription()})
	}
	r.section(w, r.t(types.MsgCommandsKey), rows)

	rows = rows[:0]
	for _, f := range visibleFields(def.Fields, true) {
		rows = append(rows, types.KeyValue[string, string]{Key: r.FieldName(f), Value: r.FieldDescription(f)})
	}
	r.section(w, r.t(types.MsgArgumentsKey), rows)

	rows = rows[:0]
	help := true
	for _, f := range r.parser.optionFields(c) {
		if f.cliName() == "help" {
			help = false
		}
		rows = append(rows, types.KeyValue[string, string]{Key: r.FieldName(f), Value: r.FieldDescription(f)})
	}
	if help {
		rows = append(rows, types.KeyValue[string, string]{Key: "--help", Value: r.t(types.MsgHelpFlagKey)})
	}
	r.section(w, r.t(types.MsgOptionsKey), rows)
}

func (r *DefaultRenderer) section(w io.Writer, title string, rows []types.KeyValue[string, string]) {
	if len(rows) == 0 {
		return
	}

	left := 0
	for _, row := range rows {
		left = max(left, len(row.Key))
	}

	fmt.Fprintf(w, "\n%s:\n", title)
	pad := strings.Repeat(" ", left+4)
	for _, row := range rows {
		lines := util.Wrap(row.Value, r.parser.helpWidth-left-4)
		fmt.Fprintf(w, "  %-*s  %s\n", left, row.Key, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(w, "%s%s\n", pad, line)
		}
	}
}

func visibleCommands(commands []*Command) []*Command {
	out := make([]*Command, 0, len(commands))
	for _, c := range commands {
		if c != nil && !c.Hidden {
			out = append(out, c)
		}
	}

	return out
}

func visibleFields(fields []*Field, positional bool) []*Field {
	out := make([]*Field, 0, len(fields))
	for _, f := range fields {
		if f != nil && !f.Hidden && f.Positional == positional {
			out = append(out, f)
		}
	}

	return out
}
