package completion

import (
	"strings"
)

// ValueCompletion is the strategy used to suggest values for an option or positional. The set
// of implementations is closed: Choices, File, Directory, ShellCommand and None.
type ValueCompletion interface {
	isValueCompletion()
}

// Choices completes a fixed, ordered list of values
type Choices struct {
	Values []string
}

// File completes file names, optionally restricted by extension or glob matchers. Directories
// are always offered for navigation.
type File struct {
	Extensions []string
	Matchers   []string
}

// Directory completes directory names
type Directory struct{}

// ShellCommand completes the non-empty, trimmed output lines of a command run by the host shell
type ShellCommand struct {
	Command string
}

// None offers nothing and suppresses the shell's file name fallback
type None struct{}

func (Choices) isValueCompletion()      {}
func (File) isValueCompletion()         {}
func (Directory) isValueCompletion()    {}
func (ShellCommand) isValueCompletion() {}
func (None) isValueCompletion()         {}

// Filtered reports whether file names are restricted and must be resolved by the completer
// rather than by the shell's native file completion
func (f File) Filtered() bool {
	return len(f.Extensions) > 0 || len(f.Matchers) > 0
}

// ResolveValueCompletion picks the completion strategy for a field. Explicit choices or a shell
// command win over an explicitly declared type (file, directory, none), which wins over
// auto-detected enum values. Nil means no strategy.
func ResolveValueCompletion(f FieldSpec) ValueCompletion {
	if h := f.Completion; h != nil {
		switch {
		case len(h.Choices) > 0:
			return Choices{Values: append([]string(nil), h.Choices...)}
		case h.Command != "":
			return ShellCommand{Command: h.Command}
		}

		switch h.Kind {
		case HintFile:
			return newFile(h)
		case HintDirectory:
			return Directory{}
		case HintNone:
			return None{}
		case HintAuto:
			if len(h.Extensions) > 0 || len(h.Matchers) > 0 {
				return newFile(h)
			}
		}
	}

	if len(f.EnumValues) > 0 {
		return Choices{Values: append([]string(nil), f.EnumValues...)}
	}

	return nil
}

func newFile(h *Hint) File {
	return File{
		Extensions: normalizeExtensions(h.Extensions),
		Matchers:   unique(h.Matchers),
	}
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, strings.TrimPrefix(strings.TrimSpace(e), "."))
	}

	return unique(out)
}

func unique(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
