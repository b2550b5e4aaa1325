package completion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/napalu/clikit/errs"
	"golang.org/x/text/language"
)

// Manager generates completion scripts for one shell and installs them in the user's
// completion directory
type Manager struct {
	Shell       string
	ProgramName string
	Paths       Paths
	generator   Generator
	script      string
}

// NewManager creates a manager for shell. Unsupported shells are rejected.
func NewManager(shell, programName string) (*Manager, error) {
	return NewLocalizedManager(shell, programName, language.English)
}

// NewLocalizedManager is NewManager with static scripts rendered in lang
func NewLocalizedManager(shell, programName string, lang language.Tag) (*Manager, error) {
	shell = strings.ToLower(shell)
	generator, err := GetLocalizedGenerator(shell, lang)
	if err != nil {
		return nil, err
	}

	paths, err := getCompletionPaths(shell)
	if err != nil {
		return nil, err
	}

	return &Manager{
		Shell:       shell,
		ProgramName: filepath.Base(programName),
		Paths:       paths,
		generator:   generator,
	}, nil
}

// Accept renders and keeps the static script of model
func (m *Manager) Accept(model *Model) {
	m.script = m.generator.Generate(m.ProgramName, model)
}

// AcceptDynamic keeps the dynamic stub of the program
func (m *Manager) AcceptDynamic() error {
	stub, err := DynamicStub(m.Shell, m.ProgramName)
	if err != nil {
		return err
	}
	m.script = stub

	return nil
}

// Script returns the script kept by the last Accept or AcceptDynamic
func (m *Manager) Script() string {
	return m.script
}

// Save writes the kept script into the completion directory and returns the file written
func (m *Manager) Save() (string, error) {
	if m.script == "" {
		return "", errs.ErrNoScript
	}

	dir, err := m.ensureCompletionPath()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(m.Shell, m.ProgramName))
	if err := os.WriteFile(path, []byte(m.script), 0o644); err != nil {
		return "", errs.ErrWriteScript.WithArgs(path).Wrap(err)
	}
	if err := ensurePermission(path, 0o644); err != nil {
		return "", errs.ErrWriteScript.WithArgs(path).Wrap(err)
	}

	return path, nil
}

// ensureCompletionPath creates the primary directory, or the fallback when the primary cannot
// be used
func (m *Manager) ensureCompletionPath() (string, error) {
	const perm = os.FileMode(0o755)

	err := os.MkdirAll(m.Paths.Primary, perm)
	if err == nil {
		if err = ensurePermission(m.Paths.Primary, perm); err == nil {
			return m.Paths.Primary, nil
		}
	}

	if m.Paths.Fallback == "" {
		return "", errs.ErrCompletionPath.WithArgs(m.Paths.Primary).Wrap(err)
	}
	if err := os.MkdirAll(m.Paths.Fallback, perm); err != nil {
		return "", errs.ErrCompletionPath.WithArgs(m.Paths.Fallback).Wrap(err)
	}
	if err := ensurePermission(m.Paths.Fallback, perm); err != nil {
		return "", errs.ErrCompletionPath.WithArgs(m.Paths.Fallback).Wrap(err)
	}

	return m.Paths.Fallback, nil
}
