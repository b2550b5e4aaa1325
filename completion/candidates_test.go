package completion

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/napalu/clikit/i18n"
	"github.com/napalu/clikit/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func values(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Value
	}
	return out
}

func complete(t *testing.T, root Node, args []string, opts ...Option) ([]Candidate, Directive) {
	t.Helper()
	opts = append([]Option{WithEnv(func(string) string { return "" })}, opts...)
	return NewHandler(root, opts...).Complete(context.Background(), args)
}

func TestCandidateGenerator_Choices(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"enum in declared order", []string{"build", "--format", ""}, []string{"json", "yaml", "xml"}},
		{"enum by prefix", []string{"build", "--format", "y"}, []string{"yaml"}},
		{"inline enum", []string{"build", "--format=x"}, []string{"xml"}},
		{"explicit choices", []string{"deploy", "--env", ""}, []string{"dev", "staging", "prod"}},
		{"short spelling", []string{"deploy", "-e", "st"}, []string{"staging"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, d := complete(t, deployctl(), tt.args)
			assert.Equal(t, tt.want, values(cands))
			assert.True(t, d.FilterPrefix)
			assert.True(t, d.NoFileCompletion)
			assert.True(t, d.KeepOrder)
			assert.False(t, d.FileCompletion)
			for _, c := range cands {
				assert.Equal(t, KindValue, c.Kind)
			}
		})
	}
}

func TestCandidateGenerator_Variadic(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"first value", []string{"tag", ""}, []string{"stable", "beta", "nightly", "rc"}},
		{"values repeat", []string{"tag", "stable", ""}, []string{"stable", "beta", "nightly", "rc"}},
		{"prefix", []string{"tag", "stable", "b"}, []string{"beta"}},
		{"after double dash", []string{"tag", "--", "rc", "n"}, []string{"nightly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, _ := complete(t, deployctl(), tt.args)
			assert.Equal(t, tt.want, values(cands))
		})
	}
}

func TestCandidateGenerator_Options(t *testing.T) {
	t.Run("unused options and help", func(t *testing.T) {
		cands, d := complete(t, deployctl(), []string{"deploy", "--"})
		assert.Equal(t, []string{"--env", "--dry-run", "--workdir", "--verbose", "--config", "--help"}, values(cands))
		assert.Equal(t, Directive{FilterPrefix: true, NoFileCompletion: true}, d)
		for _, c := range cands {
			assert.Equal(t, KindOption, c.Kind)
		}
		assert.Equal(t, "Target environment", cands[0].Description)
	})

	t.Run("used options disappear", func(t *testing.T) {
		cands, _ := complete(t, deployctl(), []string{"deploy", "-e", "prod", "--verbose", "--"})
		assert.Equal(t, []string{"--dry-run", "--workdir", "--config", "--help"}, values(cands))
	})

	t.Run("array options stay available", func(t *testing.T) {
		cands, _ := complete(t, deployctl(), []string{"build", "--label", "a", "--format", "json", "--"})
		assert.Contains(t, values(cands), "--label")
		assert.NotContains(t, values(cands), "--format")
	})

	t.Run("single dash adds short forms", func(t *testing.T) {
		cands, _ := complete(t, deployctl(), []string{"build", "-"})
		assert.Equal(t, []string{
			"--format", "-f", "--output", "-o", "--label", "-l", "--race", "--verbose", "-v", "--config", "-c", "--help",
		}, values(cands))
	})

	t.Run("help once given is gone", func(t *testing.T) {
		cands, _ := complete(t, deployctl(), []string{"tag", "--help", "--h"})
		assert.Empty(t, cands)
	})
}

func TestCandidateGenerator_Subcommands(t *testing.T) {
	cands, d := complete(t, deployctl(), []string{""})
	assert.Equal(t, []string{"build", "deploy", "tag", "plugins", "broken"}, values(cands))
	assert.Equal(t, Directive{FilterPrefix: true, NoFileCompletion: true}, d)
	assert.Equal(t, "(more commands)", cands[3].Description)
	assert.Equal(t, KindSubcommand, cands[0].Kind)

	cands, _ = complete(t, deployctl(), []string{"deploy", ""})
	assert.Equal(t, []string{"rollback"}, values(cands))

	cands, _ = complete(t, deployctl(), []string{"plugins", "i"})
	assert.Equal(t, []string{"install"}, values(cands))

	cands, d = complete(t, deployctl(), []string{"broken", ""})
	assert.Empty(t, cands)
	assert.Equal(t, Directive{Error: true}, d)
}

func TestCandidateGenerator_Language(t *testing.T) {
	t.Cleanup(func() { i18n.SetDefaultLanguage(language.English) })
	i18n.SetDefaultLanguage(language.German)

	cands, _ := complete(t, deployctl(), []string{"p"})
	require.Len(t, cands, 1)
	assert.Equal(t, "(more commands)", cands[0].Description)

	cands, _ = complete(t, deployctl(), []string{"p"}, WithLanguage(language.German))
	require.Len(t, cands, 1)
	assert.Equal(t, "(weitere Befehle)", cands[0].Description)

	cands, _ = complete(t, deployctl(), []string{"tag", "--h"}, WithLanguage(language.German))
	require.Len(t, cands, 1)
	assert.Equal(t, "Hilfe anzeigen", cands[0].Description)
}

func TestCandidateGenerator_Delegation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Directive
	}{
		{"value without completion", []string{"build", "--output", ""}, Directive{FileCompletion: true}},
		{"directory", []string{"deploy", "--workdir", ""}, Directive{DirectoryCompletion: true}},
		{"none", []string{"deploy", "rollback", ""}, Directive{NoFileCompletion: true}},
		{"no positional left", []string{"deploy", "rollback", "r1", ""}, Directive{NoFileCompletion: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, d := complete(t, deployctl(), tt.args)
			assert.Empty(t, cands)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestCandidateGenerator_Files(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"config.json", "data.yaml", "readme.md", ".hidden.json", filepath.Join("docs", "guide.json"), filepath.Join("docs", "notes.txt")} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	tests := []struct {
		name        string
		word        string
		want        []string
		wantNoSpace bool
	}{
		{"extensions and directories", "", []string{"config.json", "data.yaml", "docs/"}, false},
		{"single directory", "do", []string{"docs/"}, true},
		{"inside directory", "docs/", []string{"docs/guide.json"}, false},
		{"hidden files need a dot", ".", []string{".hidden.json"}, false},
		{"no match", "zz", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, d := complete(t, deployctl(), []string{"--config", tt.word}, WithDir(dir))
			assert.ElementsMatch(t, tt.want, values(cands))
			assert.True(t, d.NoFileCompletion)
			assert.False(t, d.FileCompletion)
			assert.Equal(t, tt.wantNoSpace, d.NoSpace)
		})
	}
}

func TestFile_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		file  File
		value string
		want  bool
	}{
		{"no filter", File{}, "any.bin", true},
		{"extension", File{Extensions: []string{"json"}}, "a.json", true},
		{"extension case", File{Extensions: []string{"json"}}, "A.JSON", true},
		{"multi-part extension", File{Extensions: []string{"tar.gz"}}, "x.tar.gz", true},
		{"wrong extension", File{Extensions: []string{"json"}}, "a.jsonl", false},
		{"base name matcher", File{Matchers: []string{"Makefile*"}}, "sub/Makefile.am", true},
		{"path matcher", File{Matchers: []string{"cfg/**/*.toml"}}, "cfg/a/b.toml", true},
		{"path matcher miss", File{Matchers: []string{"cfg/**/*.toml"}}, "other/b.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.file.accepts(filepath.Base(tt.value), tt.value))
		})
	}
}

func TestCandidateGenerator_ShellCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	root := &testNode{
		name: "git-helper",
		fields: []FieldSpec{
			withHint(opt("branch", "b", types.String, ""), Hint{Command: `printf 'main\n\n  beta  \nbugfix\n'`}),
			withHint(opt("broken", "", types.String, ""), Hint{Command: "echo nope; exit 3"}),
			withHint(opt("slow", "", types.String, ""), Hint{Command: "sleep 10; echo late"}),
		},
	}

	cands, d := complete(t, root, []string{"--branch", ""})
	assert.Equal(t, []string{"main", "beta", "bugfix"}, values(cands))
	assert.True(t, d.FilterPrefix)

	cands, _ = complete(t, root, []string{"-b", "b"})
	assert.Equal(t, []string{"beta", "bugfix"}, values(cands))

	cands, _ = complete(t, root, []string{"--broken", ""})
	assert.Empty(t, cands)

	start := time.Now()
	cands, _ = complete(t, root, []string{"--slow", ""}, WithTimeout(100*time.Millisecond))
	assert.Empty(t, cands)
	assert.Less(t, time.Since(start), 5*time.Second)
}
