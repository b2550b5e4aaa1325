package completion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// listFiles resolves word against the file system the way a shell would, keeping directories
// and the files f accepts. Relative words are resolved against base. Unreadable directories
// yield no candidates.
func listFiles(base, word string, f File) []Candidate {
	dirPart, namePrefix := "", word
	if i := strings.LastIndex(word, "/"); i >= 0 {
		dirPart, namePrefix = word[:i+1], word[i+1:]
	}

	entries, err := os.ReadDir(searchDir(base, dirPart))
	if err != nil {
		return nil
	}

	var cands []Candidate
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, namePrefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(namePrefix, ".") {
			continue
		}

		value := dirPart + name
		if isDir(e, filepath.Join(searchDir(base, dirPart), name)) {
			cands = append(cands, Candidate{Value: value + "/", Kind: KindDirectory})
			continue
		}
		if f.accepts(name, value) {
			cands = append(cands, Candidate{Value: value, Kind: KindFile})
		}
	}

	return cands
}

func searchDir(base, dirPart string) string {
	switch {
	case dirPart == "":
		if base == "" {
			return "."
		}
		return base
	case strings.HasPrefix(dirPart, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, filepath.FromSlash(dirPart[2:]))
		}
		return filepath.FromSlash(dirPart)
	case filepath.IsAbs(filepath.FromSlash(dirPart)):
		return filepath.FromSlash(dirPart)
	default:
		return filepath.Join(base, filepath.FromSlash(dirPart))
	}
}

func isDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			return info.IsDir()
		}
	}

	return false
}

// accepts reports whether a file passes the extension and matcher filters. Matchers containing
// a slash are matched against the path as typed, others against the base name.
func (f File) accepts(name, value string) bool {
	if !f.Filtered() {
		return true
	}

	lower := strings.ToLower(name)
	for _, e := range f.Extensions {
		if strings.HasSuffix(lower, "."+strings.ToLower(e)) {
			return true
		}
	}
	for _, m := range f.Matchers {
		target := name
		if strings.Contains(m, "/") {
			target = value
		}
		if ok, _ := doublestar.Match(m, target); ok {
			return true
		}
	}

	return false
}
