package completion

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// FishGenerator renders fish completion scripts
type FishGenerator struct {
	// Timeout bounds completion shell commands; zero means DefaultTimeout
	Timeout time.Duration
	// Lang selects the language of built-in descriptions; zero means English
	Lang language.Tag
}

func (g *FishGenerator) Generate(programName string, model *Model) string {
	plan := newScriptPlan(programName, model, g.Timeout, g.Lang)
	b := fishBackend{ident: plan.ident}

	var script strings.Builder
	script.WriteString(plan.expand(fishPreamble))

	writeFishFunc(&script, b.fn("spellings"), `"$argv[1]|$argv[2]"`, spellingArms(plan, quoteFish, `'%s\n'`), []string{`printf '%s\n' $argv[2]`})
	writeFishFunc(&script, b.fn("takes_value"), `"$argv[1]|$argv[2]"`, takesValueArms(plan), []string{"return 1"})
	writeFishFunc(&script, b.fn("is_subcommand"), `"$argv[1]|$argv[2]"`, isSubcommandArms(plan), []string{"return 1"})
	writeFishFunc(&script, b.fn("has_subcommands"), `"$argv[1]"`, hasSubcommandArms(plan), []string{"return 1"})

	var subs []caseArm
	for _, c := range plan.commands {
		if len(c.cmd.Subcommands) == 0 {
			continue
		}
		pairs := make([]string, 0, 2*len(c.cmd.Subcommands))
		for _, s := range c.cmd.Subcommands {
			pairs = append(pairs, s.Name, singleLine(subcommandDescription(s, plan.lang)))
		}
		subs = append(subs, caseArm{
			patterns: []string{c.key},
			body:     []string{`printf '%s\t%s\n' ` + quoteAll(pairs, quoteFish)},
		})
	}
	writeFishFunc(&script, b.fn("subcommands"), `"$argv[1]"`, subs, nil)

	var opts []caseArm
	for _, c := range plan.commands {
		arm := caseArm{patterns: []string{c.key}}
		for _, o := range offeredOptions(c, plan.lang) {
			arm.body = append(arm.body, fmt.Sprintf("%s %s %s %d %s",
				b.fn("offer"), quoteFish(o.Long()), quoteFish(o.Short()), boolInt(o.Repeatable()),
				quoteFish(singleLine(o.Description))))
		}
		opts = append(opts, arm)
	}
	writeFishFunc(&script, b.fn("options"), `"$argv[1]"`, opts, nil)

	writeFishFunc(&script, b.fn("option_value"), `"$argv[1]|$argv[2]"`, optionValueArms(plan, b), nil)
	writeFishFunc(&script, b.fn("positional"), `"$argv[1]"`, fishPositionalArms(plan, b), nil)

	script.WriteString(plan.expand(fishMain))

	return script.String()
}

func writeFishFunc(sb *strings.Builder, name, subject string, arms []caseArm, after []string) {
	sb.WriteString("function " + name + "\n")
	if len(arms) > 0 {
		sb.WriteString("    switch " + subject + "\n")
		for _, arm := range arms {
			sb.WriteString("        case " + quoteAll(arm.patterns, quoteFish) + "\n")
			for _, line := range arm.body {
				sb.WriteString("            " + line + "\n")
			}
		}
		sb.WriteString("    end\n")
	}
	for _, line := range after {
		sb.WriteString("    " + line + "\n")
	}
	sb.WriteString("end\n\n")
}

func fishPositionalArms(plan *scriptPlan, b valueBackend) []caseArm {
	var arms []caseArm
	for _, c := range plan.commands {
		if len(c.cmd.Positionals) == 0 {
			continue
		}
		arm := caseArm{patterns: []string{c.key}}
		for i, p := range c.cmd.Positionals {
			keyword := "else if"
			if i == 0 {
				keyword = "if"
			}
			op := "-eq"
			if p.Variadic {
				op = "-ge"
			}
			arm.body = append(arm.body,
				fmt.Sprintf("%s test $argv[2] %s %d", keyword, op, p.Position),
				"    "+renderValue(b, p.ValueCompletion))
		}
		arm.body = append(arm.body, "end")
		arms = append(arms, arm)
	}

	return arms
}

type fishBackend struct {
	ident string
}

func (b fishBackend) fn(name string) string {
	return "__" + b.ident + "_" + name
}

func (b fishBackend) choices(values []string) string {
	return `printf '%s\n' ` + quoteAll(values, quoteFish)
}

func (b fishBackend) files(f File) string {
	if !f.Filtered() {
		return "__fish_complete_path $__" + b.ident + "_cur"
	}

	var sb strings.Builder
	sb.WriteString(b.fn("files"))
	for _, e := range f.Extensions {
		sb.WriteString(" -e " + quoteFish(e))
	}
	for _, m := range f.Matchers {
		sb.WriteString(" -m " + quoteFish(m))
	}

	return sb.String()
}

func (b fishBackend) directories() string {
	return "__fish_complete_directories $__" + b.ident + "_cur"
}

func (b fishBackend) shellCommand(command string) string {
	return b.fn("run_cmd") + " " + quoteFish(command) + ` | string trim | string match -v -r '^$'`
}

func (b fishBackend) none() string {
	return "true"
}

const fishPreamble = `# fish completion for {{prog}}
# Generated by clikit. Do not edit.

function __{{id}}_run_cmd
    if command -q timeout
        timeout {{timeout}} sh -c $argv[1] 2>/dev/null
    else
        sh -c $argv[1] 2>/dev/null
    end
end

function __{{id}}_offer --argument-names long short repeatable desc
    if test "$repeatable" = 0
        if contains -- $long $__{{id}}_used
            return
        end
        if test -n "$short"; and contains -- $short $__{{id}}_used
            return
        end
    end
    printf '%s\t%s\n' $long $desc
    if test -n "$short"; and not string match -q -- '--*' $__{{id}}_cur
        printf '%s\t%s\n' $short $desc
    end
end

function __{{id}}_files
    argparse 'e/ext=+' 'm/match=+' -- $argv
    or return
    for f in $__{{id}}_cur*
        if test -d $f
            printf '%s/\n' $f
            continue
        end
        set -l base (string replace -r '.*/' '' -- $f)
        set -l ok 0
        for e in $_flag_e
            string match -q -- "*.$e" $base; and set ok 1
        end
        for p in $_flag_m
            string match -q -- $p $base; and set ok 1
        end
        test $ok -eq 1; and printf '%s\n' $f
    end
end

`

const fishMain = `function __{{id}}_scan --description 'Track the command line position for {{prog}}'
    set -l tokens (commandline -opc)
    set -e tokens[1]
    set -g __{{id}}_cur (commandline -ct)
    set -g __{{id}}_path ''
    set -g __{{id}}_pending ''
    set -g __{{id}}_npos 0
    set -g __{{id}}_after_dd 0
    set -g __{{id}}_used
    for w in $tokens
        if test -n "$__{{id}}_pending"
            set __{{id}}_pending ''
            continue
        end
        if test $__{{id}}_after_dd -eq 1
            set __{{id}}_npos (math $__{{id}}_npos + 1)
            continue
        end
        switch $w
            case '--'
                set __{{id}}_after_dd 1
            case '-?*'
                set -l name (string split -m 1 = -- $w)[1]
                set -a __{{id}}_used (__{{id}}_spellings "$__{{id}}_path" $name)
                if not string match -q -- '*=*' $w; and __{{id}}_takes_value "$__{{id}}_path" $name
                    set __{{id}}_pending $name
                end
            case '*'
                if test $__{{id}}_npos -eq 0; and __{{id}}_is_subcommand "$__{{id}}_path" $w
                    if test -z "$__{{id}}_path"
                        set __{{id}}_path $w
                    else
                        set __{{id}}_path "$__{{id}}_path $w"
                    end
                else
                    set __{{id}}_npos (math $__{{id}}_npos + 1)
                end
        end
    end
end

function __{{id}}_complete
    __{{id}}_scan
    set -l path "$__{{id}}_path"
    set -l value_opt ''
    set -l prefix ''
    if test -n "$__{{id}}_pending"
        set value_opt $__{{id}}_pending
    else if test $__{{id}}_after_dd -eq 0; and string match -q -- '--*=*' $__{{id}}_cur
        set -l parts (string split -m 1 = -- $__{{id}}_cur)
        if __{{id}}_takes_value "$path" $parts[1]
            set value_opt $parts[1]
            set prefix "$parts[1]="
            set __{{id}}_cur $parts[2]
        end
    end

    if test -n "$value_opt"
        __{{id}}_option_value "$path" $value_opt | string replace -r -- '^' "$prefix"
    else if test $__{{id}}_after_dd -eq 1
        __{{id}}_positional "$path" $__{{id}}_npos
    else if string match -q -- '-*' $__{{id}}_cur
        __{{id}}_options "$path"
    else if test $__{{id}}_npos -eq 0; and __{{id}}_has_subcommands "$path"
        __{{id}}_subcommands "$path"
    else
        __{{id}}_positional "$path" $__{{id}}_npos
    end
end

complete -c {{prog}} -e
complete -c {{prog}} -f -a '(__{{id}}_complete)'
`
