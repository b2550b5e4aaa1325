package completion

import (
	"path/filepath"
	"strings"

	"github.com/napalu/clikit/errs"
)

// DynamicStub returns the small script that makes shell forward completion requests to the
// hidden completion command of programName. Stubs never change when the command tree does.
func DynamicStub(shell, programName string) (string, error) {
	var tmpl string
	switch strings.ToLower(shell) {
	case "bash":
		tmpl = bashStub
	case "zsh":
		tmpl = zshStub
	case "fish":
		tmpl = fishStub
	default:
		return "", errs.ErrUnsupportedShell.WithArgs(shell)
	}

	plan := &scriptPlan{program: filepath.Base(programName), timeout: DefaultTimeout}
	plan.ident = shellIdent(plan.program)

	return strings.NewReplacer("{{complete}}", HiddenCommandName, "{{line}}", LineEnv).
		Replace(plan.expand(tmpl)), nil
}

const bashStub = `# bash dynamic completion for {{prog}}
# Generated by clikit. Do not edit.

_{{id}}_dynamic() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    local out directive line value prefix=""
    COMPREPLY=()

    out=$({{line}}="${COMP_LINE:0:COMP_POINT}" {{qprog}} {{complete}} 2>/dev/null) || return 0
    directive="${out##*:}"
    [[ "$directive" =~ ^[0-9]+$ ]] || directive=0
    if [[ "$out" == *$'\n'* ]]; then
        out="${out%$'\n'*}"
    else
        out=""
    fi
    ((directive & 64)) && return 0

    [[ "$cur" == "=" ]] && cur=""
    if [[ "$cur" == --*=* ]]; then
        prefix="${cur%%=*}="
        cur="${cur#*=}"
    fi

    if ((directive & 16)); then
        compopt -o filenames 2>/dev/null
        while IFS= read -r value; do
            COMPREPLY+=("$prefix$value")
        done < <(compgen -f -- "$cur")
        return 0
    fi
    if ((directive & 32)); then
        compopt -o filenames 2>/dev/null
        while IFS= read -r value; do
            COMPREPLY+=("$prefix$value")
        done < <(compgen -d -- "$cur")
        return 0
    fi

    while IFS= read -r line; do
        [[ -z "$line" ]] && continue
        value="${line%%$'\t'*}"
        if ! ((directive & 4)) || [[ "$value" == "$cur"* ]]; then
            COMPREPLY+=("$prefix$value")
        fi
    done <<<"$out"

    ((directive & 1)) && compopt -o nospace 2>/dev/null
    ((directive & 8)) && compopt -o nosort 2>/dev/null
    return 0
}

complete -F _{{id}}_dynamic {{qprog}}
`

const zshStub = `#compdef {{prog}}
# zsh dynamic completion for {{prog}}
# Generated by clikit. Do not edit.

_{{id}}_dynamic() {
    local out directive line
    local -a lines entries extra

    out="$({{qprog}} {{complete}} "${(@)words[2,CURRENT]}" 2>/dev/null)" || return 1
    lines=("${(@f)out}")
    directive="${lines[-1]#:}"
    [[ "$directive" == <-> ]] || directive=0
    lines=("${(@)lines[1,-2]}")
    ((directive & 64)) && return 1

    [[ "${words[CURRENT]}" == --*=* ]] && compset -P 1 '*='

    if ((directive & 16)); then
        _files
        return
    fi
    if ((directive & 32)); then
        _files -/
        return
    fi

    for line in "${lines[@]}"; do
        [[ -z "$line" ]] && continue
        if [[ "$line" == *$'\t'* ]]; then
            entries+=("${${line%%$'\t'*}//:/\\:}:${line#*$'\t'}")
        else
            entries+=("${line//:/\\:}")
        fi
    done

    ((directive & 1)) && extra+=(-S '')
    if ((directive & 8)); then
        _describe -V 'completions' entries "${extra[@]}"
    else
        _describe 'completions' entries "${extra[@]}"
    fi
}

if [[ "$funcstack[1]" == {{qzfile}} ]]; then
    _{{id}}_dynamic "$@"
else
    compdef _{{id}}_dynamic {{qprog}}
fi
`

const fishStub = `# fish dynamic completion for {{prog}}
# Generated by clikit. Do not edit.

function __{{id}}_dynamic
    set -l tokens (commandline -opc)
    set -e tokens[1]
    set -l cur (commandline -ct)
    set -l out ({{prog}} {{complete}} $tokens "$cur" 2>/dev/null)
    or return
    test (count $out) -gt 0; or return

    set -l directive (string replace -r '^:' '' -- $out[-1])
    set -e out[-1]
    string match -qr '^[0-9]+$' -- $directive; or set directive 0
    test (math "bitand($directive, 64)") -ne 0; and return

    set -l prefix ''
    if string match -q -- '--*=*' "$cur"
        set -l parts (string split -m 1 = -- "$cur")
        set prefix "$parts[1]="
        set cur $parts[2]
    end

    if test (math "bitand($directive, 16)") -ne 0
        __fish_complete_path "$cur" | string replace -r -- '^' "$prefix"
        return
    end
    if test (math "bitand($directive, 32)") -ne 0
        __fish_complete_directories "$cur" | string replace -r -- '^' "$prefix"
        return
    end

    for line in $out
        test -n "$line"; and printf '%s%s\n' "$prefix" "$line"
    end
end

complete -c {{prog}} -e
complete -c {{prog}} -k -f -a '(__{{id}}_dynamic)'
`
