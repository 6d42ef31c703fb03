// Package graph builds the class inheritance graph from a model.
package graph

import (
	"sort"

	"github.com/phobologic/hlgen/internal/model"
)

// Ancestors returns the parent chain of every class, nearest parent first.
// A parent that is not declared in classes ends its chain but is still
// listed. Chains stop before repeating a class, so cycles terminate.
// Duplicate names use the last declaration.
func Ancestors(classes []model.ClassDef) map[string][]string {
	parents := parentIndex(classes)

	out := make(map[string][]string, len(parents))
	for name := range parents {
		var chain []string
		seen := map[string]struct{}{name: {}}
		for cur := parents[name]; cur != ""; cur = parents[cur] {
			if _, dup := seen[cur]; dup {
				break
			}
			seen[cur] = struct{}{}
			chain = append(chain, cur)
		}
		out[name] = chain
	}
	return out
}

// Subclasses returns the direct subclasses of each class, sorted by name.
func Subclasses(classes []model.ClassDef) map[string][]string {
	children := make(map[string]map[string]struct{})
	for name, parent := range parentIndex(classes) {
		if parent == "" {
			continue
		}
		if children[parent] == nil {
			children[parent] = make(map[string]struct{})
		}
		children[parent][name] = struct{}{}
	}

	out := make(map[string][]string, len(children))
	for parent, set := range children {
		out[parent] = sortedKeys(set)
	}
	return out
}

// Descendants returns every class reachable below root through Subclasses,
// in breadth-first order. root itself is not included.
func Descendants(classes []model.ClassDef, root string) []string {
	subs := Subclasses(classes)
	seen := map[string]struct{}{root: {}}

	var out []string
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range subs[cur] {
			if _, dup := seen[child]; dup {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

func parentIndex(classes []model.ClassDef) map[string]string {
	parents := make(map[string]string, len(classes))
	for i := range classes {
		parents[classes[i].Name] = classes[i].Parent
	}
	return parents
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
