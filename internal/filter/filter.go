// Package filter narrows a model to the classes and functions a caller asked for.
package filter

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/phobologic/hlgen/internal/graph"
	"github.com/phobologic/hlgen/internal/model"
)

// Options selects parts of a model. Patterns use doublestar glob syntax.
// An empty pattern list keeps everything of that kind.
type Options struct {
	Classes   []string
	Functions []string

	// Subclasses also keeps every class below a matched class.
	Subclasses bool
}

// Select returns a model with only the matching classes, their methods, the
// unresolved diagnostics for matching class names, and the matching
// functions. When opts selects nothing specific, m is returned unchanged.
func Select(m *model.Model, opts Options) (*model.Model, error) {
	if len(opts.Classes) == 0 && len(opts.Functions) == 0 {
		return m, nil
	}
	for _, p := range append(append([]string{}, opts.Classes...), opts.Functions...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	out := &model.Model{Files: m.Files, Missing: m.Missing}

	if len(opts.Classes) == 0 {
		out.Classes = m.Classes
		out.Methods = m.Methods
		out.Unresolved = m.Unresolved
	} else {
		keep := make(map[string]struct{})
		for i := range m.Classes {
			name := m.Classes[i].Name
			if !matchAny(opts.Classes, name) {
				continue
			}
			keep[name] = struct{}{}
			if opts.Subclasses {
				for _, sub := range graph.Descendants(m.Classes, name) {
					keep[sub] = struct{}{}
				}
			}
		}

		for i := range m.Classes {
			if _, ok := keep[m.Classes[i].Name]; ok {
				out.Classes = append(out.Classes, m.Classes[i])
			}
		}
		for i := range m.Methods {
			if _, ok := keep[m.Methods[i].ClassName]; ok {
				out.Methods = append(out.Methods, m.Methods[i])
			}
		}
		for i := range m.Unresolved {
			if matchAny(opts.Classes, m.Unresolved[i].ClassName) {
				out.Unresolved = append(out.Unresolved, m.Unresolved[i])
			}
		}
	}

	if len(opts.Functions) == 0 {
		out.Functions = m.Functions
	} else {
		for i := range m.Functions {
			if matchAny(opts.Functions, m.Functions[i].CSymbol) {
				out.Functions = append(out.Functions, m.Functions[i])
			}
		}
	}

	return out, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
