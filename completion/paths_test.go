package completion

import (
	"path/filepath"
	"testing"

	"github.com/napalu/clikit/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionPaths(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "ada")
	xdg := filepath.Join(string(filepath.Separator), "xdg")

	tests := []struct {
		name        string
		goos        string
		shell       string
		env         map[string]string
		wantPrimary string
		wantExt     string
	}{
		{
			name:        "bash on linux",
			goos:        "linux",
			shell:       "bash",
			wantPrimary: filepath.Join(home, ".local", "share", "bash-completion", "completions"),
		},
		{
			name:        "bash honours XDG_DATA_HOME",
			goos:        "linux",
			shell:       "bash",
			env:         map[string]string{"XDG_DATA_HOME": xdg},
			wantPrimary: filepath.Join(xdg, "bash-completion", "completions"),
		},
		{
			name:        "relative XDG_DATA_HOME is ignored",
			goos:        "linux",
			shell:       "bash",
			env:         map[string]string{"XDG_DATA_HOME": "data"},
			wantPrimary: filepath.Join(home, ".local", "share", "bash-completion", "completions"),
		},
		{
			name:        "zsh on darwin",
			goos:        "darwin",
			shell:       "zsh",
			wantPrimary: filepath.Join(home, ".zsh", "completion"),
		},
		{
			name:        "fish honours XDG_CONFIG_HOME",
			goos:        "linux",
			shell:       "fish",
			env:         map[string]string{"XDG_CONFIG_HOME": xdg},
			wantPrimary: filepath.Join(xdg, "fish", "completions"),
			wantExt:     ".fish",
		},
		{
			name:        "fish on windows",
			goos:        "windows",
			shell:       "fish",
			env:         map[string]string{"XDG_CONFIG_HOME": xdg},
			wantPrimary: filepath.Join(home, ".config", "fish", "completions"),
			wantExt:     ".fish",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := completionPaths(tt.goos, home, tt.shell, func(k string) string { return tt.env[k] })
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrimary, paths.Primary)
			assert.Equal(t, tt.wantExt, paths.Extension)
			assert.NotEmpty(t, paths.Fallback)
			assert.NotEmpty(t, paths.Comment)
		})
	}
}

func TestCompletionPaths_Unsupported(t *testing.T) {
	_, err := completionPaths("linux", "/home/ada", "powershell", func(string) string { return "" })
	assert.ErrorIs(t, err, errs.ErrUnsupportedShell)
}
