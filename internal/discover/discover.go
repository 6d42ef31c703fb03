// Package discover locates included headers under the base directory.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile is read from the base directory when present. It uses
// .gitignore syntax and matches include names relative to the base.
const IgnoreFile = ".hlgenignore"

// Resolver maps include names to paths under a base directory.
type Resolver struct {
	Base string
	gi   *ignore.GitIgnore
}

// NewResolver returns a Resolver rooted at base. Extra patterns are applied
// on top of the base directory's ignore file.
func NewResolver(base string, patterns []string) *Resolver {
	return &Resolver{Base: base, gi: loadIgnore(base, patterns)}
}

// Path returns the filesystem path for an include name. It reports false
// when the include is excluded by an ignore rule or names a file outside
// the base directory.
func (r *Resolver) Path(name string) (string, bool) {
	rel, ok := local(name)
	if !ok || r.Ignored(name) {
		return "", false
	}
	return filepath.Join(r.Base, rel), true
}

// local cleans an include name and rejects absolute names and names that
// climb out of the base directory.
func local(name string) (string, bool) {
	p := filepath.FromSlash(name)
	if p == "" || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return "", false
	}
	p = filepath.Clean(p)
	if p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator)) {
		return "", false
	}
	return p, true
}

// Ignored reports whether name matches an ignore rule.
func (r *Resolver) Ignored(name string) bool {
	if r.gi == nil {
		return false
	}
	return r.gi.MatchesPath(filepath.ToSlash(filepath.Clean(name)))
}

func loadIgnore(base string, patterns []string) *ignore.GitIgnore {
	path := filepath.Join(base, IgnoreFile)
	if _, err := os.Stat(path); err == nil {
		gi, err := ignore.CompileIgnoreFileAndLines(path, patterns...)
		if err == nil {
			return gi
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(patterns...)
}
