package completion

import (
	"bufio"
	"io"
)

// ShellFormatter writes completion responses in the line protocol read by the dynamic stubs:
// one "value" or "value<TAB>description" line per candidate, then ":<directive bits>".
type ShellFormatter struct {
	w io.Writer
}

// NewShellFormatter returns a formatter writing to w
func NewShellFormatter(w io.Writer) *ShellFormatter {
	return &ShellFormatter{w: w}
}

// Write writes one complete response
func (f *ShellFormatter) Write(cands []Candidate, d Directive) error {
	bw := bufio.NewWriter(f.w)
	for _, c := range cands {
		value := singleLine(c.Value)
		if value == "" {
			continue
		}
		bw.WriteString(value)
		if desc := singleLine(c.Description); desc != "" {
			bw.WriteString("\t" + desc)
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(d.Line() + "\n")

	return bw.Flush()
}
