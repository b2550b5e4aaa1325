package completion

import (
	"strconv"
	"strings"
)

// Wire bits of a Directive. The values are part of the protocol between the dynamic shell stubs
// and the hidden completion command and must never change.
const (
	BitNoSpace             = 1
	BitNoFileCompletion    = 2
	BitFilterPrefix        = 4
	BitKeepOrder           = 8
	BitFileCompletion      = 16
	BitDirectoryCompletion = 32
	BitError               = 64
)

// Directive tells the shell how to treat a candidate list
type Directive struct {
	NoSpace             bool // do not append a space after the inserted candidate
	NoFileCompletion    bool // never fall back to file names
	FilterPrefix        bool // candidates may be filtered against the current word
	KeepOrder           bool // keep candidate order, do not sort
	FileCompletion      bool // let the shell complete file names
	DirectoryCompletion bool // let the shell complete directory names
	Error               bool // completion failed, offer nothing
}

// Bits returns the integer encoding of d
func (d Directive) Bits() int {
	bits := 0
	for _, f := range d.flags() {
		if *f.set {
			bits |= f.bit
		}
	}

	return bits
}

// ParseDirective decodes the integer encoding of a directive. Unknown bits are ignored.
func ParseDirective(bits int) Directive {
	var d Directive
	for _, f := range d.flags() {
		*f.set = bits&f.bit != 0
	}

	return d
}

func (d Directive) String() string {
	names := make([]string, 0, 7)
	for _, f := range d.flags() {
		if *f.set {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "Default"
	}

	return strings.Join(names, "|")
}

// Line renders the terminating line of a completion response
func (d Directive) Line() string {
	return ":" + strconv.Itoa(d.Bits())
}

type directiveFlag struct {
	name string
	bit  int
	set  *bool
}

func (d *Directive) flags() []directiveFlag {
	return []directiveFlag{
		{"NoSpace", BitNoSpace, &d.NoSpace},
		{"NoFileCompletion", BitNoFileCompletion, &d.NoFileCompletion},
		{"FilterPrefix", BitFilterPrefix, &d.FilterPrefix},
		{"KeepOrder", BitKeepOrder, &d.KeepOrder},
		{"FileCompletion", BitFileCompletion, &d.FileCompletion},
		{"DirectoryCompletion", BitDirectoryCompletion, &d.DirectoryCompletion},
		{"Error", BitError, &d.Error},
	}
}
