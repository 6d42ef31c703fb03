// Package verify cross-checks extracted declaration symbols against the
// tree-sitter C grammar.
package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/phobologic/hlgen/internal/model"
)

// Mismatch is a declaration whose extracted symbol differs from the one the
// C grammar finds on the same line.
type Mismatch struct {
	File    string
	Line    int
	Symbol  string
	Grammar string
}

// Report summarizes one verification run. Lines the grammar cannot parse
// cleanly, such as those using wxc type macros, count as unchecked.
type Report struct {
	Checked    int
	Unchecked  int
	Mismatches []Mismatch
}

// Checker owns a tree-sitter parser. It is not safe for concurrent use.
type Checker struct {
	parser *sitter.Parser
}

// New returns a Checker configured for C.
func New() *Checker {
	p := sitter.NewParser()
	p.SetLanguage(c.GetLanguage())
	return &Checker{parser: p}
}

// Symbol returns the name of the first function declarator on line. It
// reports false when the line does not parse as clean C.
func (ck *Checker) Symbol(line string) (string, bool) {
	src := []byte(line)
	tree, err := ck.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return "", false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return "", false
	}

	fd := findFirst(root, "function_declarator")
	if fd == nil {
		return "", false
	}
	id := fd.ChildByFieldName("declarator")
	if id == nil || id.Type() != "identifier" {
		return "", false
	}
	return nodeText(id, src), true
}

// Run re-reads the headers in m, relative to base, and checks every method
// and function against the line it was read from.
func (ck *Checker) Run(base string, m *model.Model) (Report, error) {
	lines := make(map[string][]string, len(m.Files))
	for _, f := range m.Files {
		path := filepath.FromSlash(f)
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Report{}, fmt.Errorf("reading %s: %w", f, err)
		}
		lines[f] = strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	}

	var r Report
	check := func(file string, n int, sym string) {
		src := lines[file]
		if n < 1 || n > len(src) {
			r.Unchecked++
			return
		}
		got, ok := ck.Symbol(src[n-1])
		if !ok {
			r.Unchecked++
			return
		}
		r.Checked++
		if got != sym {
			r.Mismatches = append(r.Mismatches, Mismatch{File: file, Line: n, Symbol: sym, Grammar: got})
		}
	}

	for i := range m.Methods {
		check(m.Methods[i].File, m.Methods[i].Line, m.Methods[i].CSymbol)
	}
	for i := range m.Functions {
		check(m.Functions[i].File, m.Functions[i].Line, m.Functions[i].CSymbol)
	}
	return r, nil
}

func findFirst(n *sitter.Node, typ string) *sitter.Node {
	if n.Type() == typ {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := findFirst(n.NamedChild(i), typ); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}
