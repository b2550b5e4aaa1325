package completion

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// ZshGenerator renders zsh completion functions for the compsys framework
type ZshGenerator struct {
	// Timeout bounds completion shell commands; zero means DefaultTimeout
	Timeout time.Duration
	// Lang selects the language of built-in descriptions; zero means English
	Lang language.Tag
}

func (g *ZshGenerator) Generate(programName string, model *Model) string {
	plan := newScriptPlan(programName, model, g.Timeout, g.Lang)
	b := zshBackend{ident: plan.ident}

	var script strings.Builder
	script.WriteString(plan.expand(zshPreamble))

	writePosixFunc(&script, b.fn("spellings"), `"$1|$2"`, spellingArms(plan, quotePosix, `'%s '`), []string{`printf '%s ' "$2"`})
	writePosixFunc(&script, b.fn("takes_value"), `"$1|$2"`, takesValueArms(plan), []string{"return 1"})
	writePosixFunc(&script, b.fn("is_subcommand"), `"$1|$2"`, isSubcommandArms(plan), []string{"return 1"})
	writePosixFunc(&script, b.fn("has_subcommands"), `"$1"`, hasSubcommandArms(plan), []string{"return 1"})

	var subs []caseArm
	for _, c := range plan.commands {
		if len(c.cmd.Subcommands) == 0 {
			continue
		}
		entries := make([]string, len(c.cmd.Subcommands))
		for i, s := range c.cmd.Subcommands {
			entries[i] = describeEntry(s.Name, subcommandDescription(s, plan.lang))
		}
		subs = append(subs, caseArm{
			patterns: []string{c.key},
			body:     []string{"subs=(" + quoteAll(entries, quotePosix) + ")"},
		})
	}
	script.WriteString(b.fn("subcommands") + "() {\n    local -a subs\n")
	writePosixCase(&script, "    ", `"$1"`, subs)
	script.WriteString("    _describe -t commands 'command' subs\n}\n\n")

	var opts []caseArm
	for _, c := range plan.commands {
		arm := caseArm{patterns: []string{c.key}}
		for _, o := range offeredOptions(c, plan.lang) {
			arm.body = append(arm.body, fmt.Sprintf("%s %s %s %d %s",
				b.fn("offer"), quotePosix(o.Long()), quotePosix(o.Short()), boolInt(o.Repeatable()),
				quotePosix(singleLine(o.Description))))
		}
		opts = append(opts, arm)
	}
	script.WriteString(b.fn("options") + "() {\n    local -a opts\n")
	writePosixCase(&script, "    ", `"$1"`, opts)
	script.WriteString("    _describe -t options 'option' opts\n}\n\n")

	writePosixFunc(&script, b.fn("option_value"), `"$1|$2"`, optionValueArms(plan, b), nil)
	writePosixFunc(&script, b.fn("positional"), `"$1"`, positionalArms(plan, b, "$2"), nil)

	script.WriteString(plan.expand(zshMain))

	return script.String()
}

// describeEntry renders a name:description pair for _describe
func describeEntry(name, desc string) string {
	desc = singleLine(desc)
	if desc == "" {
		return escapeDescribe(name)
	}

	return escapeDescribe(name) + ":" + desc
}

// zshGlob combines extensions and matchers into one glob pattern
func zshGlob(f File) string {
	parts := make([]string, 0, len(f.Extensions)+len(f.Matchers))
	for _, e := range f.Extensions {
		parts = append(parts, "*."+e)
	}
	parts = append(parts, f.Matchers...)
	if len(parts) == 1 {
		return parts[0]
	}

	return "(" + strings.Join(parts, "|") + ")"
}

type zshBackend struct {
	ident string
}

func (b zshBackend) fn(name string) string {
	return "__" + b.ident + "_" + name
}

func (b zshBackend) choices(values []string) string {
	return "compadd -- " + quoteAll(values, quotePosix)
}

func (b zshBackend) files(f File) string {
	if !f.Filtered() {
		return "_files"
	}

	return "_files -g " + quotePosix(zshGlob(f))
}

func (b zshBackend) directories() string {
	return "_files -/"
}

func (b zshBackend) shellCommand(command string) string {
	return b.fn("cmd_values") + " " + quotePosix(command)
}

func (b zshBackend) none() string {
	return ":"
}

const zshPreamble = `#compdef {{prog}}
# zsh completion for {{prog}}
# Generated by clikit. Do not edit.

__{{id}}_run_cmd() {
    if (( $+commands[timeout] )); then
        timeout {{timeout}} sh -c "$1" 2>/dev/null
    else
        sh -c "$1" 2>/dev/null
    fi
}

__{{id}}_offer() {
    if [[ "$3" == 0 ]]; then
        [[ "$used" == *" $1 "* ]] && return
        [[ -n "$2" && "$used" == *" $2 "* ]] && return
    fi
    opts+=("$1${4:+:$4}")
    if [[ -n "$2" && "$cur" != --* ]]; then
        opts+=("$2${4:+:$4}")
    fi
}

__{{id}}_cmd_values() {
    setopt localoptions extendedglob
    local line
    local -a vals
    for line in "${(@f)$(__{{id}}_run_cmd "$1")}"; do
        line="${${line##[[:space:]]#}%%[[:space:]]#}"
        [[ -n "$line" ]] && vals+=("$line")
    done
    compadd -a vals
}

`

const zshMain = `_{{id}}() {
    local cur="${words[CURRENT]}"
    local cmd_path="" pending="" used=" " value_opt="" w name
    local -i npos=0 after_dd=0 i

    for ((i = 2; i < CURRENT; i++)); do
        w="${words[i]}"
        if [[ -n "$pending" ]]; then
            pending=""
            continue
        fi
        if ((after_dd)); then
            npos=$((npos + 1))
            continue
        fi
        case "$w" in
            --)
                after_dd=1
                ;;
            -?*)
                name="${w%%=*}"
                used+="$(__{{id}}_spellings "$cmd_path" "$name") "
                if [[ "$w" != *=* ]] && __{{id}}_takes_value "$cmd_path" "$name"; then
                    pending="$name"
                fi
                ;;
            *)
                if ((npos == 0)) && __{{id}}_is_subcommand "$cmd_path" "$w"; then
                    cmd_path="${cmd_path:+$cmd_path }$w"
                else
                    npos=$((npos + 1))
                fi
                ;;
        esac
    done

    if [[ -n "$pending" ]]; then
        value_opt="$pending"
    elif ((!after_dd)) && [[ "$cur" == --*=* ]]; then
        name="${cur%%=*}"
        if __{{id}}_takes_value "$cmd_path" "$name"; then
            value_opt="$name"
            compset -P "${(b)name}="
            cur="${cur#*=}"
        fi
    fi

    if [[ -n "$value_opt" ]]; then
        __{{id}}_option_value "$cmd_path" "$value_opt"
    elif ((after_dd)); then
        __{{id}}_positional "$cmd_path" "$npos"
    elif [[ "$cur" == -* ]]; then
        __{{id}}_options "$cmd_path"
    elif ((npos == 0)) && __{{id}}_has_subcommands "$cmd_path"; then
        __{{id}}_subcommands "$cmd_path"
    else
        __{{id}}_positional "$cmd_path" "$npos"
    fi
}

if [[ "$funcstack[1]" == {{qzfile}} ]]; then
    _{{id}} "$@"
else
    compdef _{{id}} {{qprog}}
fi
`
