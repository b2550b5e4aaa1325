package completion

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/napalu/clikit/errs"
	"github.com/napalu/clikit/i18n"
	"github.com/napalu/clikit/types"
	"golang.org/x/text/language"
)

// DefaultTimeout bounds how long a completion shell command may run
const DefaultTimeout = 5 * time.Second

// Generator renders a static completion script for one shell. The output is a pure function of
// the program name and the model.
type Generator interface {
	Generate(programName string, model *Model) string
}

// SupportedShells lists the shells scripts can be generated for
func SupportedShells() []string {
	return []string{"bash", "zsh", "fish"}
}

// GetGenerator returns the static script generator of shell. Scripts are rendered in English.
func GetGenerator(shell string) (Generator, error) {
	return GetLocalizedGenerator(shell, language.English)
}

// GetLocalizedGenerator returns the static script generator of shell rendering its built-in
// descriptions in lang
func GetLocalizedGenerator(shell string, lang language.Tag) (Generator, error) {
	switch strings.ToLower(shell) {
	case "bash":
		return &BashGenerator{Lang: lang}, nil
	case "zsh":
		return &ZshGenerator{Lang: lang}, nil
	case "fish":
		return &FishGenerator{Lang: lang}, nil
	default:
		return nil, errs.ErrUnsupportedShell.WithArgs(shell)
	}
}

// GenerateScript extracts the model of root and renders the static script of shell
func GenerateScript(shell, programName string, root Node) (string, error) {
	return GenerateLocalizedScript(shell, programName, root, language.English)
}

// GenerateLocalizedScript is GenerateScript with the built-in descriptions rendered in lang
func GenerateLocalizedScript(shell, programName string, root Node, lang language.Tag) (string, error) {
	g, err := GetLocalizedGenerator(shell, lang)
	if err != nil {
		return "", err
	}

	model, err := Extract(root)
	if err != nil {
		return "", err
	}

	return g.Generate(programName, model), nil
}

// valueBackend renders the value completion strategies in one shell's syntax. Each method
// returns a single line of script.
type valueBackend interface {
	choices(values []string) string
	files(f File) string
	directories() string
	shellCommand(command string) string
	none() string
}

func renderValue(b valueBackend, vc ValueCompletion) string {
	switch v := vc.(type) {
	case Choices:
		return b.choices(v.Values)
	case File:
		return b.files(v)
	case Directory:
		return b.directories()
	case ShellCommand:
		return b.shellCommand(v.Command)
	case None:
		return b.none()
	default:
		return b.files(File{})
	}
}

// scriptCommand is one command of the flattened tree. key is the space separated path of
// sub-command names below the program; the root's key is empty.
type scriptCommand struct {
	key     string
	cmd     *CompletableSubcommand
	options []CompletableOption
}

// subKey returns the key of the direct sub-command name
func (c scriptCommand) subKey(name string) string {
	if c.key == "" {
		return name
	}

	return c.key + " " + name
}

func (c scriptCommand) valueOptions() []CompletableOption {
	var out []CompletableOption
	for _, o := range c.options {
		if o.TakesValue {
			out = append(out, o)
		}
	}

	return out
}

// scriptPlan is the shared state machine data every static script is rendered from. All
// generators walk it in the same deterministic order.
type scriptPlan struct {
	program  string
	ident    string
	commands []scriptCommand
	timeout  time.Duration
	lang     language.Tag
}

func newScriptPlan(programName string, model *Model, timeout time.Duration, lang language.Tag) *scriptPlan {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	plan := &scriptPlan{
		program: filepath.Base(programName),
		timeout: timeout,
		lang:    scriptLanguage(lang),
	}
	plan.ident = shellIdent(plan.program)

	var walk func(key string, cmd *CompletableSubcommand)
	walk = func(key string, cmd *CompletableSubcommand) {
		plan.commands = append(plan.commands, scriptCommand{
			key:     key,
			cmd:     cmd,
			options: model.VisibleOptions(cmd),
		})
		for _, sub := range cmd.Subcommands {
			walk(scriptCommand{key: key}.subKey(sub.Name), sub)
		}
	}
	walk("", model.Root)

	return plan
}

func (p *scriptPlan) timeoutSeconds() int {
	secs := int(p.timeout / time.Second)
	if secs < 1 {
		return 1
	}

	return secs
}

// scriptLanguage maps the zero tag to English
func scriptLanguage(lang language.Tag) language.Tag {
	if lang == language.Und {
		return language.English
	}

	return lang
}

// subcommandDescription is the text shown next to a sub-command name
func subcommandDescription(sub *CompletableSubcommand, lang language.Tag) string {
	if sub.Description == "" && sub.Placeholder {
		return i18n.Default().TL(lang, types.MsgPlaceholderKey)
	}

	return sub.Description
}

func helpDescription(lang language.Tag) string {
	return i18n.Default().TL(lang, types.MsgHelpFlagKey)
}

// shellIdent turns a program name into a string usable in shell function names
func shellIdent(program string) string {
	snake := strcase.ToSnake(program)
	var b strings.Builder
	for _, r := range snake {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "prog"
	}

	return b.String()
}

// caseArm is one branch of a generated case statement. Patterns are matched literally.
type caseArm struct {
	patterns []string
	body     []string
}

func writePosixCase(sb *strings.Builder, indent, subject string, arms []caseArm) {
	if len(arms) == 0 {
		return
	}

	sb.WriteString(indent + "case " + subject + " in\n")
	for _, arm := range arms {
		sb.WriteString(indent + "    " + casePatterns(arm.patterns, quotePosix) + ")\n")
		for _, line := range arm.body {
			sb.WriteString(indent + "        " + line + "\n")
		}
		sb.WriteString(indent + "        ;;\n")
	}
	sb.WriteString(indent + "esac\n")
}

// writePosixFunc writes a bash/zsh function made of one case statement followed by after
func writePosixFunc(sb *strings.Builder, name, subject string, arms []caseArm, after []string) {
	sb.WriteString(name + "() {\n")
	writePosixCase(sb, "    ", subject, arms)
	for _, line := range after {
		sb.WriteString("    " + line + "\n")
	}
	if len(arms) == 0 && len(after) == 0 {
		sb.WriteString("    :\n")
	}
	sb.WriteString("}\n\n")
}

// offeredOptions returns the options listed when completing an option name, with the
// implicit --help last unless the command defines its own
func offeredOptions(c scriptCommand, lang language.Tag) []CompletableOption {
	opts := append([]CompletableOption(nil), c.options...)
	for _, o := range opts {
		if o.CLIName == "help" {
			return opts
		}
	}

	return append(opts, CompletableOption{CLIName: "help", Description: helpDescription(lang), ValueType: types.Boolean})
}

func spellingPatterns(c scriptCommand, o CompletableOption) []string {
	spellings := o.Spellings()
	patterns := make([]string, len(spellings))
	for i, s := range spellings {
		patterns[i] = pathPattern(c.key, s)
	}

	return patterns
}

// spellingArms map a spelling to all spellings of the same option, each printed with format
func spellingArms(plan *scriptPlan, quote func(string) string, format string) []caseArm {
	var arms []caseArm
	for _, c := range plan.commands {
		for _, o := range c.options {
			if o.Alias == "" {
				continue
			}
			arms = append(arms, caseArm{
				patterns: spellingPatterns(c, o),
				body:     []string{"printf " + format + " " + quoteAll(o.Spellings(), quote)},
			})
		}
	}

	return arms
}

func takesValueArms(plan *scriptPlan) []caseArm {
	var patterns []string
	for _, c := range plan.commands {
		for _, o := range c.valueOptions() {
			patterns = append(patterns, spellingPatterns(c, o)...)
		}
	}
	if len(patterns) == 0 {
		return nil
	}

	return []caseArm{{patterns: patterns, body: []string{"return 0"}}}
}

func isSubcommandArms(plan *scriptPlan) []caseArm {
	var patterns []string
	for _, c := range plan.commands {
		for _, s := range c.cmd.Subcommands {
			patterns = append(patterns, pathPattern(c.key, s.Name))
		}
	}
	if len(patterns) == 0 {
		return nil
	}

	return []caseArm{{patterns: patterns, body: []string{"return 0"}}}
}

func hasSubcommandArms(plan *scriptPlan) []caseArm {
	var patterns []string
	for _, c := range plan.commands {
		if len(c.cmd.Subcommands) > 0 {
			patterns = append(patterns, c.key)
		}
	}
	if len(patterns) == 0 {
		return nil
	}

	return []caseArm{{patterns: patterns, body: []string{"return 0"}}}
}

func optionValueArms(plan *scriptPlan, b valueBackend) []caseArm {
	var arms []caseArm
	for _, c := range plan.commands {
		for _, o := range c.valueOptions() {
			arms = append(arms, caseArm{
				patterns: spellingPatterns(c, o),
				body:     []string{renderValue(b, o.ValueCompletion)},
			})
		}
	}

	return arms
}

// positionalArms select the positional strategy by index with an if chain in bash/zsh syntax
func positionalArms(plan *scriptPlan, b valueBackend, index string) []caseArm {
	var arms []caseArm
	for _, c := range plan.commands {
		if len(c.cmd.Positionals) == 0 {
			continue
		}
		arm := caseArm{patterns: []string{c.key}}
		for i, p := range c.cmd.Positionals {
			keyword := "elif"
			if i == 0 {
				keyword = "if"
			}
			op := "=="
			if p.Variadic {
				op = ">="
			}
			arm.body = append(arm.body,
				fmt.Sprintf("%s ((%s %s %d)); then", keyword, index, op, p.Position),
				"    "+renderValue(b, p.ValueCompletion))
		}
		arm.body = append(arm.body, "fi")
		arms = append(arms, arm)
	}

	return arms
}
