package parse

import (
	"strings"

	"github.com/google/shlex"
)

// Split splits a command string into arguments using POSIX shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}

// SplitCompletionLine splits an in-progress command line (everything up to the cursor) into
// words. The last element is the word under completion and is empty when the line ends in
// unescaped whitespace. An unterminated quote in the last word does not fail the split.
func SplitCompletionLine(line string) []string {
	words, err := Split(line)
	if err != nil {
		words = strings.Fields(line)
		if n := len(words); n > 0 {
			words[n-1] = strings.TrimLeft(words[n-1], `"'`)
		}
		return words
	}

	if endsInSeparator(line) {
		words = append(words, "")
	}

	return words
}

func endsInSeparator(line string) bool {
	if line == "" {
		return true
	}

	last := line[len(line)-1]
	if last != ' ' && last != '\t' && last != '\n' {
		return false
	}

	backslashes := 0
	for i := len(line) - 2; i >= 0 && line[i] == '\\'; i-- {
		backslashes++
	}

	return backslashes%2 == 0
}
