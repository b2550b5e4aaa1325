package completion

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/napalu/clikit/errs"
)

// Paths are the per-user directories a shell loads completion scripts from
type Paths struct {
	Primary   string
	Fallback  string
	Extension string
	Comment   string
}

// FileConventions describe how a shell expects completion files to be named
type FileConventions struct {
	Prefix    string
	Extension string
}

func fileConventions(shell string) FileConventions {
	switch shell {
	case "zsh":
		return FileConventions{Prefix: "_"}
	case "fish":
		return FileConventions{Extension: ".fish"}
	default:
		return FileConventions{}
	}
}

// FileName returns the completion file name of programName for shell, e.g. _tool for zsh
func FileName(shell, programName string) string {
	c := fileConventions(shell)
	return c.Prefix + filepath.Base(programName) + c.Extension
}

func ensurePermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	if info.Mode().Perm() != perm {
		return os.Chmod(path, perm)
	}

	return nil
}

// completionPaths resolves the install directories of shell for an operating system
func completionPaths(goos, home, shell string, getenv func(string) string) (Paths, error) {
	switch shell {
	case "bash":
		dataHome := filepath.Join(home, ".local", "share")
		comment := "XDG-compatible user-local bash completions directory"
		switch goos {
		case "windows":
			comment = "Git Bash user completions directory"
		case "darwin":
			comment = "User-local bash completions, compatible with bash-completion@2"
		default:
			if xdg := getenv("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
				dataHome = xdg
			}
		}
		return Paths{
			Primary:  filepath.Join(dataHome, "bash-completion", "completions"),
			Fallback: filepath.Join(home, ".bash_completion.d"),
			Comment:  comment,
		}, nil

	case "zsh":
		comment := "User-local zsh completions directory"
		if goos == "windows" {
			comment = "Zsh user completions directory (WSL/Cygwin)"
		}
		return Paths{
			Primary:  filepath.Join(home, ".zsh", "completion"),
			Fallback: filepath.Join(home, ".zfunc"),
			Comment:  comment,
		}, nil

	case "fish":
		configHome := filepath.Join(home, ".config")
		if xdg := getenv("XDG_CONFIG_HOME"); goos != "windows" && xdg != "" && filepath.IsAbs(xdg) {
			configHome = xdg
		}
		return Paths{
			Primary:   filepath.Join(configHome, "fish", "completions"),
			Fallback:  filepath.Join(home, ".local", "share", "fish", "completions"),
			Extension: ".fish",
			Comment:   "Fish user completions directory",
		}, nil

	default:
		return Paths{}, errs.ErrUnsupportedShell.WithArgs(shell)
	}
}

func getCompletionPaths(shell string) (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, errs.ErrCompletionPath.WithArgs("~").Wrap(err)
	}

	return completionPaths(runtime.GOOS, home, shell, os.Getenv)
}
