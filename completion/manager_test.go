package completion

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/napalu/clikit/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, err := NewManager("Fish", "/opt/tools/deployctl")
	require.NoError(t, err)
	assert.Equal(t, "fish", m.Shell)
	assert.Equal(t, "deployctl", m.ProgramName)
	assert.Equal(t, ".fish", m.Paths.Extension)

	_, err = NewManager("powershell", "deployctl")
	assert.ErrorIs(t, err, errs.ErrUnsupportedShell)
}

func TestManager_Save(t *testing.T) {
	model, err := Extract(deployctl())
	require.NoError(t, err)

	tests := []struct {
		shell    string
		wantFile string
	}{
		{"bash", "deployctl"},
		{"zsh", "_deployctl"},
		{"fish", "deployctl.fish"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			m, err := NewManager(tt.shell, "deployctl")
			require.NoError(t, err)
			m.Paths.Primary = filepath.Join(t.TempDir(), "completions")

			_, err = m.Save()
			assert.ErrorIs(t, err, errs.ErrNoScript)

			m.Accept(model)
			path, err := m.Save()
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(m.Paths.Primary, tt.wantFile), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, m.Script(), string(content))

			if runtime.GOOS != "windows" {
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
			}
		})
	}
}

func TestManager_SaveFallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	m, err := NewManager("bash", "deployctl")
	require.NoError(t, err)
	m.Paths.Primary = filepath.Join(blocker, "completions")
	m.Paths.Fallback = filepath.Join(dir, "fallback")
	require.NoError(t, m.AcceptDynamic())

	path, err := m.Save()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fallback", "deployctl"), path)

	m.Paths.Fallback = ""
	_, err = m.Save()
	assert.ErrorIs(t, err, errs.ErrCompletionPath)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "tool", FileName("bash", "/usr/bin/tool"))
	assert.Equal(t, "_tool", FileName("zsh", "tool"))
	assert.Equal(t, "tool.fish", FileName("fish", "tool"))
}
