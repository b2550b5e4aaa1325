package completion

import (
	"strings"
)

// quotePosix single-quotes s for bash and zsh
func quotePosix(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// quoteFish single-quotes s for fish, where only backslash and quote are special
func quoteFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

// escapeDescribe escapes the name part of a zsh _describe entry
func escapeDescribe(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, ":", `\:`)
}

// singleLine flattens a description so it can be embedded in one script line
func singleLine(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// quoteAll quotes every element with quote and joins them with spaces
func quoteAll(values []string, quote func(string) string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}

	return strings.Join(quoted, " ")
}

// casePatterns renders the alternatives of a case arm, e.g. 'a'|'b'
func casePatterns(values []string, quote func(string) string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}

	return strings.Join(quoted, "|")
}

func pathPattern(key, word string) string {
	return key + "|" + word
}
