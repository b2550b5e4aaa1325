package completion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// BashGenerator renders bash completion scripts. The script needs no bash-completion helpers.
type BashGenerator struct {
	// Timeout bounds completion shell commands; zero means DefaultTimeout
	Timeout time.Duration
	// Lang selects the language of built-in descriptions; zero means English
	Lang language.Tag
}

func (g *BashGenerator) Generate(programName string, model *Model) string {
	plan := newScriptPlan(programName, model, g.Timeout, g.Lang)
	b := bashBackend{ident: plan.ident}

	var script strings.Builder
	script.WriteString(plan.expand(bashPreamble))

	writePosixFunc(&script, b.fn("spellings"), `"$1|$2"`, spellingArms(plan, quotePosix, `'%s '`), []string{`printf '%s ' "$2"`})
	writePosixFunc(&script, b.fn("takes_value"), `"$1|$2"`, takesValueArms(plan), []string{"return 1"})
	writePosixFunc(&script, b.fn("is_subcommand"), `"$1|$2"`, isSubcommandArms(plan), []string{"return 1"})
	writePosixFunc(&script, b.fn("has_subcommands"), `"$1"`, hasSubcommandArms(plan), []string{"return 1"})

	var subs []caseArm
	for _, c := range plan.commands {
		if len(c.cmd.Subcommands) == 0 {
			continue
		}
		names := make([]string, len(c.cmd.Subcommands))
		for i, s := range c.cmd.Subcommands {
			names[i] = s.Name
		}
		subs = append(subs, caseArm{
			patterns: []string{c.key},
			body:     []string{b.fn("filter") + " " + quoteAll(names, quotePosix)},
		})
	}
	writePosixFunc(&script, b.fn("subcommands"), `"$1"`, subs, nil)

	var opts []caseArm
	for _, c := range plan.commands {
		arm := caseArm{patterns: []string{c.key}}
		for _, o := range offeredOptions(c, plan.lang) {
			arm.body = append(arm.body, fmt.Sprintf("%s %s %s %d",
				b.fn("offer"), quotePosix(o.Long()), quotePosix(o.Short()), boolInt(o.Repeatable())))
		}
		opts = append(opts, arm)
	}
	script.WriteString(b.fn("options") + "() {\n    local -a opts=()\n")
	writePosixCase(&script, "    ", `"$1"`, opts)
	script.WriteString("    " + b.fn("filter") + " \"${opts[@]}\"\n}\n\n")

	writePosixFunc(&script, b.fn("option_value"), `"$1|$2"`, optionValueArms(plan, b), nil)
	writePosixFunc(&script, b.fn("positional"), `"$1"`, positionalArms(plan, b, "$2"), nil)

	script.WriteString(plan.expand(bashMain))

	return script.String()
}

type bashBackend struct {
	ident string
}

func (b bashBackend) fn(name string) string {
	return "__" + b.ident + "_" + name
}

func (b bashBackend) choices(values []string) string {
	return b.fn("filter") + " " + quoteAll(values, quotePosix)
}

func (b bashBackend) files(f File) string {
	var sb strings.Builder
	sb.WriteString(b.fn("files"))
	for _, e := range f.Extensions {
		sb.WriteString(" -e " + quotePosix(e))
	}
	for _, m := range f.Matchers {
		sb.WriteString(" -m " + quotePosix(m))
	}

	return sb.String()
}

func (b bashBackend) directories() string {
	return b.fn("dirs")
}

func (b bashBackend) shellCommand(command string) string {
	return b.fn("cmd_values") + " " + quotePosix(command)
}

func (b bashBackend) none() string {
	return "COMPREPLY=()"
}

func boolInt(v bool) int {
	if v {
		return 1
	}

	return 0
}

func (p *scriptPlan) expand(tmpl string) string {
	return strings.NewReplacer(
		"{{prog}}", p.program,
		"{{qprog}}", quotePosix(p.program),
		"{{qzfile}}", quotePosix("_"+p.program),
		"{{id}}", p.ident,
		"{{timeout}}", strconv.Itoa(p.timeoutSeconds()),
	).Replace(tmpl)
}

const bashPreamble = `# bash completion for {{prog}}
# Generated by clikit. Do not edit.

__{{id}}_run_cmd() {
    if command -v timeout >/dev/null 2>&1; then
        timeout {{timeout}} sh -c "$1" 2>/dev/null
    else
        sh -c "$1" 2>/dev/null
    fi
}

# Rejoins "--opt", "=", "value" into one word when "=" is a word break
__{{id}}_join_words() {
    local i n
    words=()
    cword=0
    for ((i = 0; i < ${#COMP_WORDS[@]}; i++)); do
        n=${#words[@]}
        if [[ "${COMP_WORDS[i]}" == "=" ]] && ((n > 1)) && [[ "${words[n-1]}" == --* ]]; then
            words[n-1]+="="
            if ((i < COMP_CWORD && i + 1 < ${#COMP_WORDS[@]})); then
                i=$((i + 1))
                words[n-1]+="${COMP_WORDS[i]}"
            fi
        else
            words+=("${COMP_WORDS[i]}")
        fi
        if ((i <= COMP_CWORD)); then
            cword=$((${#words[@]} - 1))
        fi
    done
}

__{{id}}_filter() {
    local v
    for v in "$@"; do
        [[ "$v" == "$cur"* ]] && COMPREPLY+=("$v")
    done
}

__{{id}}_offer() {
    if [[ "$3" == 0 ]]; then
        [[ "$used" == *" $1 "* ]] && return
        [[ -n "$2" && "$used" == *" $2 "* ]] && return
    fi
    opts+=("$1")
    if [[ -n "$2" && "$cur" != --* ]]; then
        opts+=("$2")
    fi
}

__{{id}}_files() {
    local -a exts=() pats=()
    while (($#)); do
        case "$1" in
            -e) exts+=("$2"); shift 2 ;;
            -m) pats+=("$2"); shift 2 ;;
            *) shift ;;
        esac
    done
    compopt -o filenames 2>/dev/null
    local f base e p ok
    while IFS= read -r f; do
        if [[ -d "$f" ]] || ((${#exts[@]} + ${#pats[@]} == 0)); then
            COMPREPLY+=("$f")
            continue
        fi
        base="${f##*/}"
        ok=0
        for e in "${exts[@]}"; do
            [[ "$base" == *."$e" ]] && ok=1
        done
        for p in "${pats[@]}"; do
            [[ "$base" == $p ]] && ok=1
        done
        ((ok)) && COMPREPLY+=("$f")
    done < <(compgen -f -- "$cur")
}

__{{id}}_dirs() {
    compopt -o filenames 2>/dev/null
    local d
    while IFS= read -r d; do
        COMPREPLY+=("$d")
    done < <(compgen -d -- "$cur")
}

__{{id}}_cmd_values() {
    local line
    while IFS= read -r line; do
        line="${line#"${line%%[![:space:]]*}"}"
        line="${line%"${line##*[![:space:]]}"}"
        [[ -n "$line" && "$line" == "$cur"* ]] && COMPREPLY+=("$line")
    done < <(__{{id}}_run_cmd "$1")
}

`

const bashMain = `_{{id}}() {
    local words cword
    __{{id}}_join_words
    local cur="${words[cword]}"
    local cmd_path="" pending="" used=" " prefix="" value_opt="" w name i
    local npos=0 after_dd=0
    COMPREPLY=()

    for ((i = 1; i < cword; i++)); do
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
            prefix="$name="
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

    if [[ -n "$prefix" && "$COMP_WORDBREAKS" != *=* ]]; then
        COMPREPLY=("${COMPREPLY[@]/#/$prefix}")
    fi
    return 0
}

complete -F _{{id}} {{qprog}}
`
