// Package resolve attaches parsed methods to their owning classes.
package resolve

import "github.com/phobologic/hlgen/internal/model"

// Resolve assigns every method in m to the class named by its ClassName and
// returns the methods that had no matching class. When two classes share a
// name the later one receives the methods. Method lists are rebuilt from
// scratch, so calling Resolve again yields the same assignment.
func Resolve(m *model.Model) []model.Unresolved {
	byName := make(map[string]int, len(m.Classes))
	for i := range m.Classes {
		m.Classes[i].Methods = nil
		byName[m.Classes[i].Name] = i
	}

	var unresolved []model.Unresolved
	for _, meth := range m.Methods {
		idx, ok := byName[meth.ClassName]
		if !ok || meth.ClassName == "" {
			unresolved = append(unresolved, model.Unresolved{
				CSymbol:   meth.CSymbol,
				ClassName: meth.ClassName,
				File:      meth.File,
				Line:      meth.Line,
			})
			continue
		}
		m.Classes[idx].Methods = append(m.Classes[idx].Methods, meth)
	}

	m.Unresolved = unresolved
	return unresolved
}
