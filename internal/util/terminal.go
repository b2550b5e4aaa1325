package util

import (
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal
const DefaultWidth = 80

// Terminal abstracts the terminal queries made by the help renderer so that tests can
// substitute a fake
type Terminal interface {
	IsTerminal(fd int) bool
	GetSize(fd int) (width, height int, err error)
}

// DefaultTerminal uses golang.org/x/term
type DefaultTerminal struct{}

func (DefaultTerminal) IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func (DefaultTerminal) GetSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}

// Width returns the column count of the terminal attached to fd, or DefaultWidth when fd is
// not a terminal or its size cannot be determined
func Width(t Terminal, fd int) int {
	if t == nil || !t.IsTerminal(fd) {
		return DefaultWidth
	}

	w, _, err := t.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}

	return w
}

// Wrap breaks text into lines of at most width runes, splitting on spaces. Words longer than
// width are kept whole.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var (
		lines   []string
		current []rune
	)
	for _, word := range splitWords(text) {
		w := []rune(word)
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, string(current))
	}

	return lines
}

func splitWords(s string) []string {
	var (
		words []string
		start = -1
	)
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}

	return words
}
